package config

import "math"

// DifficultyManager calculates dynamic game parameters from progress through a game.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on the
// number of boards finished or the score, depending on the progression type.
func (d *DifficultyManager) Level(levels int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "levels":
		progress = float64(levels) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Colors returns the number of block colors for the next board.
func (d *DifficultyManager) Colors(baseColors int, levels int, score int) int {
	if !d.IsEnabled() {
		return baseColors
	}
	level := d.Level(levels, score)
	// Colors increase from base to base + extraColors
	result := baseColors + int(level*float64(d.cfg.Scaling.ExtraColors))
	if result > MaxColors {
		result = MaxColors
	}
	return result
}

// CountdownMS returns the countdown refill in milliseconds.
func (d *DifficultyManager) CountdownMS(baseMS int, levels int, score int) int {
	if !d.IsEnabled() || baseMS <= 0 {
		return baseMS
	}
	level := d.Level(levels, score)
	// Refill shrinks as difficulty increases
	result := baseMS - int(level*float64(d.cfg.Scaling.CountdownReduction))
	if result < baseMS/4 { // Minimum playable countdown
		result = baseMS / 4
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
