package blocks

import "time"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateLevelDone   GameStateType = "level_done"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and rendering.
type Snapshot struct {
	Tick           uint64
	Mode           string
	Score          int
	TargetScore    int
	TargetSetCount int
	Countdown      time.Duration
	Levels         int
	Board          string // Rows of block characters, top row first
	Level          LevelSnapshot
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.levelDone:
		state = StateLevelDone
	case g.level.IsAnimating():
		state = StateAnimating
	}

	return Snapshot{
		Tick:           g.tick,
		Mode:           string(g.mode),
		Score:          g.score,
		TargetScore:    g.targetScore,
		TargetSetCount: g.targetSetCount,
		Countdown:      g.countdown,
		Levels:         g.levels,
		Board:          g.level.Grid().String(),
		Level:          g.level.Snapshot(),
		State:          state,
	}
}
