package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/urbanmorph/dispatch-service/internal/database"
	"github.com/urbanmorph/dispatch-service/internal/optimizer"
)

var (
	optimizeEpsKm   float64
	optimizeDensity float64
	optimizeJSON    bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Batch verified pickups into job suggestions",
	Long: `Loads verified pickups, farmers, vehicles, and rate cards from the
database, runs the job-batching optimizer, and prints the suggested jobs
ordered by estimated cost.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().Float64Var(&optimizeEpsKm, "eps-km", 0, "clustering radius in km (default from config)")
	optimizeCmd.Flags().Float64Var(&optimizeDensity, "density", 0, "waste density in kg/m3 for volume derivation (default from config)")
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "print the full result as JSON")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.Close()

	snap, err := database.LoadSnapshot(ctx, database.Pool())
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	logger.Info().
		Int("pickups", len(snap.Pickups)).
		Int("farmers", len(snap.Farmers)).
		Int("rates", len(snap.Rates)).
		Int("vehicles", len(snap.Vehicles)).
		Msg("Snapshot loaded")

	jobOptimizer := optimizer.NewJobOptimizer(&cfg.Optimizer, optimizer.NewMetricsRecorder())

	result, err := jobOptimizer.Optimize(ctx, &optimizer.OptimizeRequest{
		Pickups:        snap.Pickups,
		Farmers:        snap.Farmers,
		Rates:          snap.Rates,
		Vehicles:       snap.Vehicles,
		EpsKm:          optimizeEpsKm,
		DensityKgPerM3: optimizeDensity,
	})
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	if optimizeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for i, s := range result.Suggestions {
		fmt.Printf("#%d  %s -> %s (%s)\n", i+1, strings.Join(s.PickupIDs, ", "), s.FarmerName, s.FarmerID)
		fmt.Printf("    vehicle=%s trips=%d route=%.2fkm weight=%.1fkg volume=%.2fm3 cost=Rs%.2f\n",
			s.VehicleType, s.Trips, s.RouteKm, s.TotalWeightKg, s.TotalVolumeM3, s.EstimatedCostRs)
	}

	fmt.Printf("\n%d suggestions, %d pickups skipped (missing coordinates), %d unplaced\n",
		len(result.Suggestions), len(result.SkippedPickups), result.UnplacedCount(snap.Pickups))

	return nil
}
