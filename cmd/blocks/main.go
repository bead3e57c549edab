// blocks is a tile-matching puzzle for the terminal: click a group of two
// or more same-colored blocks to clear it and watch the rest fall into place.
//
// Usage:
//
//	blocks                  - Start the menu
//	blocks play [mode]      - Play directly (mode: blocks, blocks_endless)
//	blocks list             - List game modes
//	blocks scores [mode]    - Show high scores
//	blocks reset            - Delete saved games and scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.blocks/blocks.db)
//	--config <path>       - Load a custom blocks.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--sound               - Enable sound effects
//	--log <path>          - Log file ("-" for stderr)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - clear groups of colored blocks in your terminal",
	Long: `Blocks is a tile-matching puzzle played with the mouse.

Click a group of two or more adjacent blocks of the same color to clear
it. Blocks above fall into the gaps and empty columns close up to the
left. Bigger groups score more: a group of n blocks is worth n*n points.
Reach the target score before the countdown runs out to refill the clock.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker (default)
  list     - Show all game modes
  scores   - View high scores
  reset    - Delete saved games and scores

Examples:
  blocks
  blocks play
  blocks play blocks_endless --difficulty fixed
  blocks scores
  blocks --config ./my-blocks.yaml --sound`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run:               runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/blocks.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blocks.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Enable sound effects")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file (default ~/.blocks/blocks.log, \"-\" for stderr)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
}
