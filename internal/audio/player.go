// Package audio plays the game's sound cues. Sound is optional: the game
// runs with Nop when no audio device is available or sound is disabled.
package audio

// Player reacts to game events with sound.
type Player interface {
	// Clear plays the pop for a cleared group of count blocks.
	Clear(count int)
	// LevelDone plays the chime when a board is finished.
	LevelDone()
	// GameOver plays the buzz when the countdown runs out.
	GameOver()
	// Close stops all sound.
	Close()
}

// Nop is a Player that plays nothing.
type Nop struct{}

func (Nop) Clear(int)  {}
func (Nop) LevelDone() {}
func (Nop) GameOver()  {}
func (Nop) Close()     {}
