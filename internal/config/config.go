// Package config provides YAML-based game configuration loading and
// difficulty management for the blocks game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// MaxColors is the number of block colors the game can draw.
const MaxColors = 5

// BlocksConfig contains all configuration for the blocks game.
type BlocksConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Cell       CellConfig       `yaml:"cell"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the size and contents of a fresh board.
type BoardConfig struct {
	Columns   int  `yaml:"columns"`
	Rows      int  `yaml:"rows"`
	Colors    int  `yaml:"colors"`     // Distinct block colors, 1..5
	CarryOver bool `yaml:"carry_over"` // Keep leftover blocks when a board is finished
}

// CellConfig defines how many terminal columns/rows one block occupies.
type CellConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines animation and countdown timing, in milliseconds.
type TimingConfig struct {
	StepMS        int `yaml:"step_ms"`         // Animation time per cell travelled
	MaxFrameMS    int `yaml:"max_frame_ms"`    // Upper bound on one frame's delta
	CountdownMS   int `yaml:"countdown_ms"`    // 0 disables the countdown (endless)
	LevelFinishMS int `yaml:"level_finish_ms"` // Pause before the next board appears
}

// Step returns the per-cell animation time.
func (t TimingConfig) Step() time.Duration {
	return time.Duration(t.StepMS) * time.Millisecond
}

// MaxFrame returns the frame delta clamp.
func (t TimingConfig) MaxFrame() time.Duration {
	return time.Duration(t.MaxFrameMS) * time.Millisecond
}

// Countdown returns the countdown length, 0 for endless play.
func (t TimingConfig) Countdown() time.Duration {
	return time.Duration(t.CountdownMS) * time.Millisecond
}

// LevelFinish returns the pause shown after a finished board.
func (t TimingConfig) LevelFinish() time.Duration {
	return time.Duration(t.LevelFinishMS) * time.Millisecond
}

// ScoringConfig defines score targets.
type ScoringConfig struct {
	TargetBase int `yaml:"target_base"` // Points added to the target each time it is reached
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "levels", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Boards/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraColors        int `yaml:"extra_colors"`        // Colors added at max difficulty
	CountdownReduction int `yaml:"countdown_reduction"` // Milliseconds taken off the refill at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the configuration describes a playable game.
func (c BlocksConfig) Validate() error {
	var errs []error
	if c.Board.Columns <= 0 || c.Board.Rows <= 0 {
		errs = append(errs, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Board.Columns, c.Board.Rows))
	}
	if c.Board.Colors < 1 || c.Board.Colors > MaxColors {
		errs = append(errs, fmt.Errorf("board colors must be between 1 and %d, got %d", MaxColors, c.Board.Colors))
	}
	if c.Cell.Width <= 0 || c.Cell.Height <= 0 {
		errs = append(errs, fmt.Errorf("cell must be at least 1x1, got %dx%d", c.Cell.Width, c.Cell.Height))
	}
	if c.Timing.StepMS <= 0 {
		errs = append(errs, fmt.Errorf("timing step_ms must be positive, got %d", c.Timing.StepMS))
	}
	if c.Timing.MaxFrameMS <= 0 {
		errs = append(errs, fmt.Errorf("timing max_frame_ms must be positive, got %d", c.Timing.MaxFrameMS))
	}
	if c.Timing.CountdownMS < 0 || c.Timing.LevelFinishMS < 0 {
		errs = append(errs, errors.New("timing countdown_ms and level_finish_ms must not be negative"))
	}
	if c.Scoring.TargetBase <= 0 {
		errs = append(errs, fmt.Errorf("scoring target_base must be positive, got %d", c.Scoring.TargetBase))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid blocks config: %w", errors.Join(errs...))
	}
	return nil
}
