package optimizer

// Config holds the tunables for the job-batching optimizer.
// It is loaded from the service config file or environment variables.
type Config struct {
	// Clustering
	EpsKm  float64 `mapstructure:"eps_km"`  // Neighborhood radius for density clustering
	MinPts int     `mapstructure:"min_pts"` // Minimum neighbors (self included) to seed a cluster

	// Volume derivation for pickups that report weight only
	DensityKgPerM3 float64 `mapstructure:"density_kg_per_m3"`

	// Validation limits
	MaxPickups int `mapstructure:"max_pickups"` // Maximum pickups per optimization request
}

// DefaultConfig returns the default optimizer configuration.
func DefaultConfig() *Config {
	return &Config{
		EpsKm:          3.0,
		MinPts:         1,
		DensityKgPerM3: 300.0,
		MaxPickups:     500,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.EpsKm <= 0 {
		return ErrInvalidConfig{Field: "eps_km", Reason: "must be positive"}
	}
	if c.MinPts < 1 {
		return ErrInvalidConfig{Field: "min_pts", Reason: "must be at least 1"}
	}
	if c.DensityKgPerM3 <= 0 {
		return ErrInvalidConfig{Field: "density_kg_per_m3", Reason: "must be positive"}
	}
	if c.MaxPickups < 1 {
		return ErrInvalidConfig{Field: "max_pickups", Reason: "must be at least 1"}
	}
	return nil
}

// ErrInvalidConfig is returned when the configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
