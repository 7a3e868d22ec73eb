package database

import "time"

// PickupRow is a waste-pickup request as stored. Weight, volume and
// coordinates are operator-entered and nullable.
type PickupRow struct {
	ID           string     `json:"id"`            // CUID2
	PickupNumber string     `json:"pickup_number"` // Human-readable number
	OrgName      string     `json:"org_name"`      // Waste-generating organization
	Status       string     `json:"status"`        // 'new' | 'verified' | 'scheduled' | 'completed'
	EstWeightKg  *float64   `json:"est_weight_kg"`
	EstVolumeM3  *float64   `json:"est_volume_m3"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	RequestedAt  *time.Time `json:"requested_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FarmerRow is a registered compost destination.
type FarmerRow struct {
	ID        string    `json:"id"`   // CUID2
	Name      *string   `json:"name"` // Display name
	Village   *string   `json:"village"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// VehicleRow is one vehicle in the fleet.
type VehicleRow struct {
	ID           string    `json:"id"`           // CUID2
	VehicleType  string    `json:"vehicle_type"` // 'auto', 'tempo', 'truck', ...
	Registration *string   `json:"registration"` // License plate
	CapacityKg   float64   `json:"capacity_kg"`
	CapacityM3   *float64  `json:"capacity_m3"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// RateRow is the published rate-card entry for a vehicle type.
type RateRow struct {
	VehicleType string    `json:"vehicle_type"`
	BaseFareRs  float64   `json:"base_fare_rs"`
	PerKmRs     float64   `json:"per_km_rs"`
	UpdatedAt   time.Time `json:"updated_at"`
}
