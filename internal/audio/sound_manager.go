package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager plays sound cues through the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize before use;
// an uninitialized manager silently drops every cue.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// 100ms buffer keeps latency low enough for click feedback
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Clear plays a pop whose pitch rises with the size of the cleared group.
func (sm *SoundManager) Clear(count int) {
	sm.play(beep.Take(sampleRate.N(popDuration), NewPopGenerator(sampleRate, PopFrequency(count))))
}

// LevelDone plays a rising three-note chime.
func (sm *SoundManager) LevelDone() {
	sm.play(beep.Take(sampleRate.N(chimeDuration), NewChimeGenerator(sampleRate)))
}

// GameOver plays a low buzz.
func (sm *SoundManager) GameOver() {
	sm.play(beep.Take(sampleRate.N(buzzDuration), NewBuzzGenerator(sampleRate, 110)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

var _ Player = (*SoundManager)(nil)
