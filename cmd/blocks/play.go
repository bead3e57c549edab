package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocks/internal/platform/tui"
	"github.com/vovakirdan/blocks/internal/registry"
)

const defaultMode = "blocks"

var flagNewGame bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode, or the timed mode when none is given.
A game left with Q is saved and continues next time.

Controls:
  Mouse click  - Clear the group under the pointer
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot to ~/.blocks/screenshots
  Q/Ctrl+C     - Save and quit

Difficulty options:
  easy   - 3 colors, 90s countdown, slow progression
  normal - Config defaults
  hard   - 4 colors, 45s countdown, starts further along
  fixed  - No progression and no countdown

Examples:
  blocks play
  blocks play blocks_endless
  blocks play --difficulty hard
  blocks play --new`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Discard the saved game and start fresh")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultMode
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if flagNewGame && store != nil {
		if p, ok := game.(registry.Persistent); ok {
			if err := store.DeleteState(p.SaveKey()); err != nil {
				log.Error("could not discard saved game", "err", err)
			}
		}
	}
	player := newPlayer()

	log.Info("starting game", "mode", gameID)
	runErr := tui.Run(game, store, player, runtimeConfig())

	cleanup(store, player)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
