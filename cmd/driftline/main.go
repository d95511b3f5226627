// driftline is a top-down drift-racing game played in the terminal.
//
// Usage:
//
//	driftline list              - List available modes
//	driftline play <mode>       - Play a mode
//	driftline menu              - Start menu to pick modes interactively
//	driftline serve             - Start SSH server for remote play
//	driftline scores <mode>     - Show best laps for a mode
//	driftline layout            - Print the generated layout for a seed
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible layouts
//	--db <path>     - Set database path (default: ~/.driftline/laps.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "driftline/internal/game"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "driftline",
	Short: "Driftline - Top-down drift racing in your terminal",
	Long: `Driftline is a terminal drift-racing game: slide a car around a
procedurally generated arena, clip every checkpoint in order, and set
the best lap before the CPU rival does.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View best laps
  layout   - Inspect the generated layout for a seed

Examples:
  driftline list
  driftline play race
  driftline menu
  driftline serve --ssh :2222
  driftline scores race
  driftline layout --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.driftline/laps.db", "Path to laps database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(layoutCmd)
}
