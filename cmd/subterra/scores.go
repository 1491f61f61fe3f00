package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/subterra/internal/storage"
)

var (
	flagPlayer string
	flagReset  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs recorded in the database.

With --reset, the run history, the high score and the unlocked levels are
cleared instead.

Examples:
  subterra scores
  subterra scores --player ada
  subterra scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show runs of this pilot")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the run history and saved progress")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fail("%v", err)
		}
		if err := storage.NewPrefs(store, "", nil).Reset(); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Println("Run history and progress cleared.")
		return
	}

	runs, err := store.TopRuns(flagPlayer, flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	title := "All pilots"
	if flagPlayer != "" {
		title = flagPlayer
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'subterra play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %-12s  %s\n", "Rank", "Score", "Cave", "Result", "Pilot", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %-12s  %s\n", "----", "-----", "----", "------", "-----", "----")

	for i, run := range runs {
		fmt.Printf("  %-4d  %-8d  %-5s  %-10s  %-12s  %s\n",
			i+1,
			run.Score,
			fmt.Sprintf("%d-%d", run.Level, run.Cave),
			run.Outcome,
			run.Player,
			run.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if stats, err := store.Stats(flagPlayer); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Completed: %d   Average: %.0f\n",
			stats.HighScore, stats.Runs, stats.Completed, stats.AvgScore)
	}
}
