package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"driftline/internal/config"
	"driftline/internal/track"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the generated arena layout for a seed",
	Long: `Generate the arena layout for a seed and print every placed
obstacle, checkpoint and turret without starting a race. Useful for
checking what a seed produces before racing it, or for tuning the
generation parameters in a custom config.

Examples:
  driftline layout --seed 42
  driftline layout --seed 42 --config ./my-tuning.yaml`,
	Run: runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
}

func runLayout(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	spawns := track.StartPositions(cfg.World)
	layout := track.Generate(cfg, spawns, rng)

	fmt.Printf("Arena layout for seed %d (%gx%g world)\n", seed, cfg.World.Width, cfg.World.Height)
	fmt.Println()

	fmt.Printf("Obstacles (%d, %s):\n", len(layout.Obstacles), outcomeLabel(layout.ObstacleOutcome))
	for i, o := range layout.Obstacles {
		fmt.Printf("  %2d  center=(%6.1f, %6.1f)  size=%gx%g  angle=%.2f\n", i, o.Center.X, o.Center.Y, o.W, o.H, o.Angle)
	}
	fmt.Println()

	fmt.Printf("Checkpoints (%d, %s):\n", len(layout.Checkpoints), outcomeLabel(layout.CheckpointOutcome))
	for _, c := range layout.Checkpoints {
		fmt.Printf("  %2d  center=(%6.1f, %6.1f)  radius=%g\n", c.Index, c.Center.X, c.Center.Y, c.Radius)
	}
	fmt.Println()

	fmt.Printf("Turrets (%d, %s):\n", len(layout.Turrets), outcomeLabel(layout.TurretOutcome))
	for i, t := range layout.Turrets {
		fmt.Printf("  %2d  center=(%6.1f, %6.1f)  trigger=%g  force=%g\n", i, t.Center.X, t.Center.Y, t.TriggerRadius, t.ForceRadius)
	}
	fmt.Println()

	fmt.Printf("Spawns (%d):\n", len(spawns))
	for i, s := range spawns {
		fmt.Printf("  %2d  pos=(%6.1f, %6.1f)  heading=%.2f\n", i, s.Pos.X, s.Pos.Y, s.Heading)
	}
	fmt.Println()
	fmt.Printf("Race this layout with: driftline play %s --seed %d\n", "race", seed)
}

func outcomeLabel(o track.Outcome) string {
	if o == track.OutcomeFallback {
		return "fixed fallback set"
	}
	return "generated"
}
