package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blocks/internal/audio"
	"github.com/vovakirdan/blocks/internal/config"
	"github.com/vovakirdan/blocks/internal/core"
	"github.com/vovakirdan/blocks/internal/games/blocks"
	"github.com/vovakirdan/blocks/internal/storage"
)

// logCloser closes the log file opened by setup, if any.
var logCloser io.Closer

// setup installs the logger and the game config before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(flagLogPath, flagLogLevel)
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	blocks.SetLogger(logger)

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyBlocksPreset(&cfg, preset)
	}
	blocks.Configure(cfg)

	logger.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Columns, cfg.Board.Rows),
		"colors", cfg.Board.Colors,
		"countdown", cfg.Timing.Countdown(),
		"difficulty", cfg.Difficulty.Enabled)
	return nil
}

// newLogger writes to the log file, or stderr for "-". The game owns the
// terminal while it runs, so the default is a file under the data dir.
func newLogger(path, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	if path != "-" {
		if path == "" {
			path = filepath.Join(config.DataDir(), "blocks.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logCloser = f
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database. The game still runs without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open database, scores and saves are disabled", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// newPlayer returns the sound player selected by --sound.
func newPlayer() audio.Player {
	if !flagSound {
		return audio.Nop{}
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		log.Warn("sound disabled", "err", err)
		return audio.Nop{}
	}
	return sm
}

// cleanup releases what setup and the command opened.
func cleanup(store *storage.Store, player audio.Player) {
	if player != nil {
		player.Close()
	}
	if store != nil {
		if err := store.Close(); err != nil {
			log.Error("could not close database", "err", err)
		}
	}
	if logCloser != nil {
		logCloser.Close()
	}
}
