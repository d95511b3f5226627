package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"driftline/internal/core"
	"driftline/internal/game"
	"driftline/internal/platform/tui"
	"driftline/internal/registry"
	"driftline/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start driftline with a mode picker menu",
	Long: `Start driftline in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for the
best-laps board. After a race ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Best laps
  Q            - Quit

Examples:
  driftline menu
  driftline menu --fps 30
  driftline menu --db ./laps.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open lap storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open laps database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the best-laps board
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from the board
		}

		modeID := menuResult.ModeID
		if modeID == "" {
			break
		}

		// Apply CLI tuning before creation
		game.SetConfigPath(flagConfig)
		game.SetDifficultyPreset(flagDifficulty)

		// Create mode instance
		g, err := registry.Create(modeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
			continue
		}

		// Fresh layout for each race
		cfg.Seed = time.Now().UnixNano()

		// Run the race
		if err := tui.Run(g, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running mode: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
