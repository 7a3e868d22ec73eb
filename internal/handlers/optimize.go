package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanmorph/dispatch-service/internal/database"
	"github.com/urbanmorph/dispatch-service/internal/optimizer"
)

// ============================================================================
// Job Suggestion Endpoints
// ============================================================================

// PickupDTO represents a pickup in requests and responses
type PickupDTO struct {
	ID           string   `json:"id"`
	PickupNumber string   `json:"pickupNumber"`
	OrgName      string   `json:"orgName"`
	WeightKg     *float64 `json:"weightKg,omitempty"`
	VolumeM3     *float64 `json:"volumeM3,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// FarmerDTO represents a farmer destination
type FarmerDTO struct {
	ID   string   `json:"id"`
	Name *string  `json:"name,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// RateDTO represents a rate-card entry for one vehicle type
type RateDTO struct {
	VehicleType string  `json:"vehicleType" binding:"required"`
	BaseFareRs  float64 `json:"baseFareRs"`
	PerKmRs     float64 `json:"perKmRs"`
}

// VehicleDTO represents one fleet vehicle
type VehicleDTO struct {
	ID          string   `json:"id"`
	VehicleType string   `json:"vehicleType" binding:"required"`
	CapacityKg  float64  `json:"capacityKg"`
	CapacityM3  *float64 `json:"capacityM3,omitempty"`
}

// JobSuggestionDTO represents one proposed dispatch
type JobSuggestionDTO struct {
	PickupIDs       []string    `json:"pickupIds"`
	Pickups         []PickupDTO `json:"pickups"`
	FarmerID        string      `json:"farmerId"`
	FarmerName      string      `json:"farmerName"`
	VehicleType     string      `json:"vehicleType"`
	VehicleIDs      []string    `json:"vehicleIds"`
	Trips           int         `json:"trips"`
	RouteKm         float64     `json:"routeKm"`
	EstimatedCostRs float64     `json:"estimatedCostRs"`
	TotalWeightKg   float64     `json:"totalWeightKg"`
	TotalVolumeM3   float64     `json:"totalVolumeM3"`
}

// SuggestRequest carries optional tuning overrides for snapshot-based runs
type SuggestRequest struct {
	EpsKm          float64 `json:"epsKm,omitempty"`
	DensityKgPerM3 float64 `json:"densityKgPerM3,omitempty"`
}

// PreviewRequest carries a full inline snapshot, bypassing the database.
// Used by the manual job wizard to re-rank ad-hoc selections.
type PreviewRequest struct {
	Pickups        []PickupDTO  `json:"pickups" binding:"required"`
	Farmers        []FarmerDTO  `json:"farmers"`
	Rates          []RateDTO    `json:"rates"`
	Vehicles       []VehicleDTO `json:"vehicles"`
	EpsKm          float64      `json:"epsKm,omitempty"`
	DensityKgPerM3 float64      `json:"densityKgPerM3,omitempty"`
}

// OptimizeResponse is the suggestion envelope. UnplacedCount reports pickups
// whose cluster matched no farmer or vehicle type and which therefore appear
// in neither list.
type OptimizeResponse struct {
	Suggestions    []JobSuggestionDTO `json:"suggestions"`
	SkippedPickups []PickupDTO        `json:"skippedPickups"`
	Total          int                `json:"total"`
	UnplacedCount  int                `json:"unplacedCount"`
}

// Global optimizer instance (initialized by the application)
var jobOptimizer *optimizer.JobOptimizer

// InitOptimizer initializes the optimizer instance.
// This should be called during application startup.
func InitOptimizer(config *optimizer.Config, metrics *optimizer.MetricsRecorder) {
	jobOptimizer = optimizer.NewJobOptimizer(config, metrics)
}

// SuggestJobs runs the job-batching optimizer over the current database
// snapshot of verified pickups, farmers, rates and active vehicles.
// POST /internal/dispatch/suggestions
func SuggestJobs(c *gin.Context) {
	var req SuggestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if jobOptimizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Optimizer not initialized"})
		return
	}
	pool := database.Pool()
	if pool == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not initialized"})
		return
	}

	ctx := c.Request.Context()
	snap, err := database.LoadSnapshot(ctx, pool)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dispatch snapshot"})
		return
	}

	result, err := jobOptimizer.Optimize(ctx, &optimizer.OptimizeRequest{
		Pickups:        snap.Pickups,
		Farmers:        snap.Farmers,
		Rates:          snap.Rates,
		Vehicles:       snap.Vehicles,
		EpsKm:          req.EpsKm,
		DensityKgPerM3: req.DensityKgPerM3,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toOptimizeResponse(result, snap.Pickups))
}

// PreviewSuggestions runs the optimizer over an inline snapshot without
// touching the database.
// POST /internal/dispatch/suggestions/preview
func PreviewSuggestions(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if jobOptimizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Optimizer not initialized"})
		return
	}

	pickups := make([]optimizer.Pickup, len(req.Pickups))
	for i, p := range req.Pickups {
		pickups[i] = optimizer.Pickup{
			ID:           p.ID,
			PickupNumber: p.PickupNumber,
			OrgName:      p.OrgName,
			WeightKg:     p.WeightKg,
			VolumeM3:     p.VolumeM3,
			Lat:          p.Lat,
			Lng:          p.Lng,
		}
	}
	farmers := make([]optimizer.Farmer, len(req.Farmers))
	for i, f := range req.Farmers {
		farmers[i] = optimizer.Farmer{ID: f.ID, Name: f.Name, Lat: f.Lat, Lng: f.Lng}
	}
	rates := make([]optimizer.Rate, len(req.Rates))
	for i, r := range req.Rates {
		rates[i] = optimizer.Rate{VehicleType: r.VehicleType, BaseFareRs: r.BaseFareRs, PerKmRs: r.PerKmRs}
	}
	vehicles := make([]optimizer.Vehicle, len(req.Vehicles))
	for i, v := range req.Vehicles {
		vehicles[i] = optimizer.Vehicle{ID: v.ID, VehicleType: v.VehicleType, CapacityKg: v.CapacityKg, CapacityM3: v.CapacityM3}
	}

	result, err := jobOptimizer.Optimize(c.Request.Context(), &optimizer.OptimizeRequest{
		Pickups:        pickups,
		Farmers:        farmers,
		Rates:          rates,
		Vehicles:       vehicles,
		EpsKm:          req.EpsKm,
		DensityKgPerM3: req.DensityKgPerM3,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toOptimizeResponse(result, pickups))
}

func toPickupDTO(p optimizer.Pickup) PickupDTO {
	return PickupDTO{
		ID:           p.ID,
		PickupNumber: p.PickupNumber,
		OrgName:      p.OrgName,
		WeightKg:     p.WeightKg,
		VolumeM3:     p.VolumeM3,
		Lat:          p.Lat,
		Lng:          p.Lng,
	}
}

func toOptimizeResponse(result *optimizer.OptimizeResult, input []optimizer.Pickup) OptimizeResponse {
	suggestions := make([]JobSuggestionDTO, len(result.Suggestions))
	for i, s := range result.Suggestions {
		pickups := make([]PickupDTO, len(s.Pickups))
		for j, p := range s.Pickups {
			pickups[j] = toPickupDTO(p)
		}
		suggestions[i] = JobSuggestionDTO{
			PickupIDs:       s.PickupIDs,
			Pickups:         pickups,
			FarmerID:        s.FarmerID,
			FarmerName:      s.FarmerName,
			VehicleType:     s.VehicleType,
			VehicleIDs:      s.VehicleIDs,
			Trips:           s.Trips,
			RouteKm:         s.RouteKm,
			EstimatedCostRs: s.EstimatedCostRs,
			TotalWeightKg:   s.TotalWeightKg,
			TotalVolumeM3:   s.TotalVolumeM3,
		}
	}

	skipped := make([]PickupDTO, len(result.SkippedPickups))
	for i, p := range result.SkippedPickups {
		skipped[i] = toPickupDTO(p)
	}

	return OptimizeResponse{
		Suggestions:    suggestions,
		SkippedPickups: skipped,
		Total:          len(suggestions),
		UnplacedCount:  result.UnplacedCount(input),
	}
}
