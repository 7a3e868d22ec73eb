package optimizer

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultMinPts is what the orchestrator always clusters with. Higher values
// are only reachable through ClusterIndices directly.
const defaultMinPts = 1

// OptimizeJobs proposes which pending pickups should be dispatched together,
// to which farmer, with which vehicle type, and at what estimated cost.
//
// It is a pure function of its inputs: no I/O, no shared state, safe to call
// concurrently. Degenerate inputs never produce an error — pickups without
// coordinates land in SkippedPickups, and clusters that match no farmer or
// no rateable vehicle type are silently dropped from the output.
func OptimizeJobs(pickups []Pickup, farmers []Farmer, rates []Rate, vehicles []Vehicle, densityKgPerM3, epsKm float64) *OptimizeResult {
	return optimizeJobs(pickups, farmers, rates, vehicles, densityKgPerM3, epsKm, defaultMinPts)
}

func optimizeJobs(pickups []Pickup, farmers []Farmer, rates []Rate, vehicles []Vehicle, densityKgPerM3, epsKm float64, minPts int) *OptimizeResult {
	result := &OptimizeResult{
		Suggestions:    []JobSuggestion{},
		SkippedPickups: []Pickup{},
	}

	eligible := make([]Pickup, 0, len(pickups))
	for _, p := range pickups {
		if p.HasCoords() {
			eligible = append(eligible, p)
		} else {
			result.SkippedPickups = append(result.SkippedPickups, p)
		}
	}
	if len(eligible) == 0 {
		return result
	}

	caps := buildTypeCapacities(vehicles)

	located := make([]Farmer, 0, len(farmers))
	for _, f := range farmers {
		if f.HasCoords() {
			located = append(located, f)
		}
	}

	points := make([]Location, len(eligible))
	for i, p := range eligible {
		points[i] = Location{Latitude: *p.Lat, Longitude: *p.Lng}
	}

	for _, group := range ClusterIndices(points, epsKm, minPts) {
		members := make([]Pickup, len(group))
		for i, idx := range group {
			members[i] = eligible[idx]
		}

		plan, ok := resolveCluster(members, located, densityKgPerM3)
		if !ok {
			continue
		}
		choice, ok := evaluateVehicleChoice(rates, caps, plan.weightKg, plan.volumeM3, plan.routeKm)
		if !ok {
			continue
		}

		ids := make([]string, len(members))
		for i, p := range members {
			ids[i] = p.ID
		}
		farmerName := ""
		if plan.farmer.Name != nil {
			farmerName = *plan.farmer.Name
		}

		result.Suggestions = append(result.Suggestions, JobSuggestion{
			PickupIDs:       ids,
			Pickups:         members,
			FarmerID:        plan.farmer.ID,
			FarmerName:      farmerName,
			VehicleType:     choice.vehicleType,
			VehicleIDs:      choice.vehicleIDs,
			Trips:           choice.trips,
			RouteKm:         plan.routeKm,
			EstimatedCostRs: choice.costRs,
			TotalWeightKg:   plan.weightKg,
			TotalVolumeM3:   plan.volumeM3,
		})
	}

	// Stable sort keeps cluster-discovery order on equal costs.
	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].EstimatedCostRs < result.Suggestions[j].EstimatedCostRs
	})

	return result
}

// JobOptimizer wraps OptimizeJobs with configuration, metrics and logging
// for service callers. The core computation stays pure; only request
// validation produces errors here.
type JobOptimizer struct {
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewJobOptimizer creates a job optimizer with the given configuration.
func NewJobOptimizer(config *Config, metrics *MetricsRecorder) *JobOptimizer {
	return &JobOptimizer{
		config:  config,
		metrics: metrics,
		logger:  log.With().Str("component", "job_optimizer").Logger(),
	}
}

// Optimize runs the job-batching optimizer over one snapshot of dispatch
// data. Zero-valued EpsKm and DensityKgPerM3 on the request fall back to
// the configured defaults.
func (o *JobOptimizer) Optimize(ctx context.Context, req *OptimizeRequest) (*OptimizeResult, error) {
	startTime := time.Now()
	defer func() {
		o.metrics.RecordOptimizationDuration(time.Since(startTime))
	}()

	if err := o.validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	epsKm := req.EpsKm
	if epsKm == 0 {
		epsKm = o.config.EpsKm
	}
	density := req.DensityKgPerM3
	if density == 0 {
		density = o.config.DensityKgPerM3
	}

	o.metrics.RecordBatchSize(len(req.Pickups))

	result := optimizeJobs(req.Pickups, req.Farmers, req.Rates, req.Vehicles, density, epsKm, o.config.MinPts)

	unplaced := result.UnplacedCount(req.Pickups)
	o.metrics.RecordSuggestionCount(len(result.Suggestions))
	o.metrics.RecordSkippedPickups(len(result.SkippedPickups))
	o.metrics.RecordUnplacedPickups(unplaced)

	o.logger.Info().
		Int("pickups", len(req.Pickups)).
		Int("suggestions", len(result.Suggestions)).
		Int("skipped", len(result.SkippedPickups)).
		Int("unplaced", unplaced).
		Float64("epsKm", epsKm).
		Msg("Optimization completed")

	return result, nil
}

func (o *JobOptimizer) validate(req *OptimizeRequest) error {
	if req == nil {
		return ErrInvalidRequest{Field: "request", Reason: "must not be nil"}
	}
	if len(req.Pickups) > o.config.MaxPickups {
		return ErrInvalidRequest{Field: "pickups", Reason: "exceeds max_pickups limit"}
	}
	if req.EpsKm < 0 {
		return ErrInvalidRequest{Field: "epsKm", Reason: "must not be negative"}
	}
	if req.DensityKgPerM3 < 0 {
		return ErrInvalidRequest{Field: "densityKgPerM3", Reason: "must not be negative"}
	}
	return nil
}

// ErrInvalidRequest is returned when an optimization request is rejected
// before the core computation runs.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}
