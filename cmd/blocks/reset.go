package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocks/internal/registry"
	"github.com/vovakirdan/blocks/internal/storage"
)

var flagKeepScores bool

var resetCmd = &cobra.Command{
	Use:   "reset [mode]",
	Short: "Delete saved games and scores",
	Long: `Delete the saved game and the high scores of a mode, or of every mode
when none is given.

Examples:
  blocks reset
  blocks reset blocks --keep-scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagKeepScores, "keep-scores", false, "Only delete saved games")
}

func runReset(_ *cobra.Command, args []string) {
	games := registry.List()
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			os.Exit(1)
		}
		games = []registry.GameInfo{{ID: args[0]}}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	for _, g := range games {
		if err := resetMode(store, g.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting %s: %v\n", g.ID, err)
			return
		}
		log.Info("reset mode", "mode", g.ID, "keepScores", flagKeepScores)
		fmt.Printf("Reset %s\n", g.ID)
	}
}

func resetMode(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if p, ok := game.(registry.Persistent); ok {
		if err := store.DeleteState(p.SaveKey()); err != nil {
			return err
		}
	}
	if flagKeepScores {
		return nil
	}
	return store.ClearScores(gameID)
}
