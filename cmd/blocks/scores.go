package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocks/internal/registry"
	"github.com/vovakirdan/blocks/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a mode, or for every mode when
none is given.

Examples:
  blocks scores
  blocks scores blocks_endless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	games := registry.List()
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available modes.")
			os.Exit(1)
		}
		games = []registry.GameInfo{{ID: args[0]}}
		if g, err := registry.Create(args[0]); err == nil {
			games[0].Title = g.Title()
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, g); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			return
		}
	}
}

func printScores(store *storage.Store, g registry.GameInfo) error {
	scores, err := store.TopScores(g.ID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'blocks play %s' to set the first high score!\n", g.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(g.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	return nil
}
