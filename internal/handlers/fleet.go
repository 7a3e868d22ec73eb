package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanmorph/dispatch-service/internal/database"
)

// ListVehiclesResponse represents the fleet listing response
type ListVehiclesResponse struct {
	Vehicles []database.VehicleRow `json:"vehicles"`
	Total    int                   `json:"total"`
}

// ListVehicles returns the vehicle fleet, optionally filtered to active ones
// GET /internal/fleet/vehicles?active=true
func ListVehicles(c *gin.Context) {
	pool := database.Pool()
	if pool == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not initialized"})
		return
	}
	ctx := c.Request.Context()

	query := `
		SELECT id, vehicle_type, registration, capacity_kg, capacity_m3, active, created_at
		FROM vehicles
	`
	args := []interface{}{}
	if c.Query("active") == "true" {
		query += " WHERE active = true"
	}
	query += " ORDER BY vehicle_type, created_at"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	defer rows.Close()

	vehicles := []database.VehicleRow{}
	for rows.Next() {
		var v database.VehicleRow
		if err := rows.Scan(&v.ID, &v.VehicleType, &v.Registration, &v.CapacityKg, &v.CapacityM3, &v.Active, &v.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan vehicle"})
			return
		}
		vehicles = append(vehicles, v)
	}
	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating vehicles"})
		return
	}

	c.JSON(http.StatusOK, ListVehiclesResponse{Vehicles: vehicles, Total: len(vehicles)})
}

// ListRatesResponse represents the rate card response
type ListRatesResponse struct {
	Rates []database.RateRow `json:"rates"`
	Total int                `json:"total"`
}

// ListRates returns the published per-vehicle-type rate card
// GET /internal/fleet/rates
func ListRates(c *gin.Context) {
	pool := database.Pool()
	if pool == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not initialized"})
		return
	}
	ctx := c.Request.Context()

	rows, err := pool.Query(ctx, `
		SELECT vehicle_type, base_fare_rs, per_km_rs, updated_at
		FROM vehicle_rates
		ORDER BY vehicle_type
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rates"})
		return
	}
	defer rows.Close()

	rates := []database.RateRow{}
	for rows.Next() {
		var r database.RateRow
		if err := rows.Scan(&r.VehicleType, &r.BaseFareRs, &r.PerKmRs, &r.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan rate"})
			return
		}
		rates = append(rates, r)
	}
	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating rates"})
		return
	}

	c.JSON(http.StatusOK, ListRatesResponse{Rates: rates, Total: len(rates)})
}

// ListFarmersResponse represents the farmer directory response
type ListFarmersResponse struct {
	Farmers []database.FarmerRow `json:"farmers"`
	Total   int                  `json:"total"`
}

// ListFarmers returns the farmer directory
// GET /internal/farmers
func ListFarmers(c *gin.Context) {
	pool := database.Pool()
	if pool == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not initialized"})
		return
	}
	ctx := c.Request.Context()

	rows, err := pool.Query(ctx, `
		SELECT id, name, village, latitude, longitude, created_at
		FROM farmers
		ORDER BY created_at, id
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch farmers"})
		return
	}
	defer rows.Close()

	farmers := []database.FarmerRow{}
	for rows.Next() {
		var f database.FarmerRow
		if err := rows.Scan(&f.ID, &f.Name, &f.Village, &f.Latitude, &f.Longitude, &f.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan farmer"})
			return
		}
		farmers = append(farmers, f)
	}
	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating farmers"})
		return
	}

	c.JSON(http.StatusOK, ListFarmersResponse{Farmers: farmers, Total: len(farmers)})
}
