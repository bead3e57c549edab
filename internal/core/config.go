package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	EventCleared       EventKind = iota // Blocks were cleared; Value holds the count
	EventLevelAdvanced                  // A fresh board replaced a finished one
	EventGameOver                       // The countdown ran out
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCleared:
		return "Cleared"
	case EventLevelAdvanced:
		return "LevelAdvanced"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is emitted by a game step for the platform to react to
// (sound cues, persistence).
type Event struct {
	Kind  EventKind
	Value int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind occurred.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
