package blocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StorageKey is the save slot the game state is stored under.
const StorageKey = "blocks-state"

// savedGame is the persisted form of a game in progress.
type savedGame struct {
	Score          int        `json:"score"`
	TargetScore    int        `json:"targetScore"`
	TargetSetCount int        `json:"targetSetCount"`
	CountdownMS    int64      `json:"countdownMs"`
	Levels         int        `json:"levels"`
	Level          LevelState `json:"level"`
}

// SaveKey returns the save slot for this game's mode.
func (g *Game) SaveKey() string {
	if g.mode == ModeEndless {
		return StorageKey + "-endless"
	}
	return StorageKey
}

// SaveState encodes the game for a later LoadState. Any running animation
// is finished first so the saved board is compacted and has no offsets.
func (g *Game) SaveState() ([]byte, error) {
	if g.level == nil {
		return nil, errors.New("blocks: no game to save")
	}
	g.level.Settle()
	g.anim = g.level.Animation()

	data, err := json.Marshal(savedGame{
		Score:          g.score,
		TargetScore:    g.targetScore,
		TargetSetCount: g.targetSetCount,
		CountdownMS:    g.countdown.Milliseconds(),
		Levels:         g.levels,
		Level:          g.level.Serialize(),
	})
	if err != nil {
		return nil, fmt.Errorf("blocks: encode state: %w", err)
	}
	return data, nil
}

// LoadState replaces the current game with one produced by SaveState.
// Reset must have been called first so the screen size and RNG are set.
func (g *Game) LoadState(data []byte) error {
	var state savedGame
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("blocks: decode state: %w", err)
	}

	level, err := RestoreLevel(state.Level, g.levelOptions())
	if err != nil {
		return fmt.Errorf("blocks: restore level: %w", err)
	}

	g.level = level
	g.anim = level.Animation()
	g.score = state.Score
	g.targetScore = state.TargetScore
	g.targetSetCount = max(state.TargetSetCount, 1)
	g.countdown = time.Duration(state.CountdownMS) * time.Millisecond
	g.levels = state.Levels
	g.gameOver = false
	g.levelDone = false
	g.levelDoneAt = 0

	if g.mode == ModeTimed && g.countdown <= 0 {
		g.countdown = g.cfg.Timing.Countdown()
	}

	g.Resize(g.screenW, g.screenH)
	g.logger.Debug("game restored", "score", g.score, "levels", g.levels)
	return nil
}
