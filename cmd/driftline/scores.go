package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"driftline/internal/registry"
	"driftline/internal/storage"
)

var flagRaces bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show best laps for a mode",
	Long: `Display the top 10 best laps for the specified mode.

Examples:
  driftline scores race
  driftline scores race --races`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRaces, "races", false, "Show recent race results instead of best laps")
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'driftline list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	g, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}
	title := g.Title()

	// Open lap storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening laps database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRaces {
		printRaces(store, modeID, title)
		return
	}
	printLaps(store, modeID, title)
}

func printLaps(store *storage.Store, modeID, title string) {
	laps, err := store.TopLaps(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving laps: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Laps - %s\n", title)
	fmt.Println()

	if len(laps) == 0 {
		fmt.Println("No laps recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'driftline play %s' to set the first lap time!\n", modeID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Lap", "Seed", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "---", "----", "----")

	// Print laps
	for i, entry := range laps {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-12d  %s\n", i+1, fmt.Sprintf("%.2fs", entry.LapSeconds), entry.Seed, dateStr)
	}

	// Show best lap
	fmt.Println()
	best, err := store.BestLap(modeID)
	if err == nil && best > 0 {
		fmt.Printf("Best: %.2fs\n", best)
	}
}

func printRaces(store *storage.Store, modeID, title string) {
	races, err := store.RecentRaces(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving races: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recent Races - %s\n", title)
	fmt.Println()

	if len(races) == 0 {
		fmt.Println("No races recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-6s  %-6s  %-10s  %s\n", "Winner", "You", "CPU", "Duration", "Date")
	fmt.Printf("  %-8s  %-6s  %-6s  %-10s  %s\n", "------", "---", "---", "--------", "----")

	for _, r := range races {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		who := "you"
		if r.Winner != 0 {
			who = "cpu"
		}
		fmt.Printf("  %-8s  %-6d  %-6d  %-10s  %s\n", who, r.PlayerLaps, r.BotLaps, fmt.Sprintf("%ds", r.DurationSecs), dateStr)
	}
}
