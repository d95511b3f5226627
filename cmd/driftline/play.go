package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"driftline/internal/core"
	"driftline/internal/game"
	"driftline/internal/platform/tui"
	"driftline/internal/registry"
	"driftline/internal/storage"
	"driftline/internal/track"
)

var (
	flagConfig     string
	flagDifficulty string
	flagArena      string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  W/Up       - Throttle
  S/Down     - Brake / Reverse
  A/D        - Steer
  Space      - Handbrake (drift)
  P/Esc      - Pause
  R          - Restart (after the race ends)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  driftline play race
  driftline play race --difficulty hard
  driftline play race --seed 42
  driftline play race --config ./my-tuning.yaml
  driftline play race --arena ./arenas/figure8.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagArena, "arena", "", "Path to a hand-authored arena YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'driftline list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Configure the mode before creation
	game.SetConfigPath(flagConfig)
	game.SetDifficultyPreset(flagDifficulty)
	if flagArena != "" {
		ov, ovErr := track.LoadOverride(flagArena)
		if ovErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading arena: %v\n", ovErr)
			os.Exit(1)
		}
		game.SetArenaOverride(ov)
	}

	// Create mode instance
	g, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}

	// Open lap storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open laps database: %v\n", err)
		// Continue without storage - the race still works
		store = nil
	}

	// Run the race
	runErr := tui.Run(g, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running mode: %v\n", runErr)
		os.Exit(1)
	}
}
