package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/urbanmorph/dispatch-service/internal/optimizer"
)

// Snapshot is one consistent-enough read of everything the optimizer needs:
// dispatch-ready pickups, the farmer directory, the rate card and the active
// fleet. The optimizer itself never touches the pool.
type Snapshot struct {
	Pickups  []optimizer.Pickup
	Farmers  []optimizer.Farmer
	Rates    []optimizer.Rate
	Vehicles []optimizer.Vehicle
}

// LoadSnapshot reads the four dispatch collections concurrently. Pickups are
// filtered to status 'verified' — the dispatch-ready set.
func LoadSnapshot(ctx context.Context, pool *pgxpool.Pool) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Pickups, err = LoadVerifiedPickups(gctx, pool)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Farmers, err = LoadFarmers(gctx, pool)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Rates, err = LoadRates(gctx, pool)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Vehicles, err = LoadActiveVehicles(gctx, pool)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dispatch snapshot: %w", err)
	}
	return snap, nil
}

// LoadVerifiedPickups returns pickups ready for dispatch, oldest request
// first so cluster and route-leg ordering stays stable between runs.
func LoadVerifiedPickups(ctx context.Context, pool *pgxpool.Pool) ([]optimizer.Pickup, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, pickup_number, org_name, est_weight_kg, est_volume_m3, latitude, longitude
		FROM pickups
		WHERE status = 'verified'
		ORDER BY requested_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query verified pickups: %w", err)
	}
	defer rows.Close()

	pickups := []optimizer.Pickup{}
	for rows.Next() {
		var p optimizer.Pickup
		if err := rows.Scan(&p.ID, &p.PickupNumber, &p.OrgName, &p.WeightKg, &p.VolumeM3, &p.Lat, &p.Lng); err != nil {
			return nil, fmt.Errorf("scan pickup: %w", err)
		}
		pickups = append(pickups, p)
	}
	return pickups, rows.Err()
}

// LoadFarmers returns the full farmer directory. Farmers without coordinates
// are included; the optimizer excludes them from matching itself.
func LoadFarmers(ctx context.Context, pool *pgxpool.Pool) ([]optimizer.Farmer, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, name, latitude, longitude
		FROM farmers
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query farmers: %w", err)
	}
	defer rows.Close()

	farmers := []optimizer.Farmer{}
	for rows.Next() {
		var f optimizer.Farmer
		if err := rows.Scan(&f.ID, &f.Name, &f.Lat, &f.Lng); err != nil {
			return nil, fmt.Errorf("scan farmer: %w", err)
		}
		farmers = append(farmers, f)
	}
	return farmers, rows.Err()
}

// LoadRates returns the published rate card, one row per vehicle type.
func LoadRates(ctx context.Context, pool *pgxpool.Pool) ([]optimizer.Rate, error) {
	rows, err := pool.Query(ctx, `
		SELECT vehicle_type, base_fare_rs, per_km_rs
		FROM vehicle_rates
		ORDER BY vehicle_type
	`)
	if err != nil {
		return nil, fmt.Errorf("query vehicle rates: %w", err)
	}
	defer rows.Close()

	rates := []optimizer.Rate{}
	for rows.Next() {
		var r optimizer.Rate
		if err := rows.Scan(&r.VehicleType, &r.BaseFareRs, &r.PerKmRs); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// LoadActiveVehicles returns the active fleet.
func LoadActiveVehicles(ctx context.Context, pool *pgxpool.Pool) ([]optimizer.Vehicle, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, vehicle_type, capacity_kg, capacity_m3
		FROM vehicles
		WHERE active = true
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []optimizer.Vehicle{}
	for rows.Next() {
		var v optimizer.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleType, &v.CapacityKg, &v.CapacityM3); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
