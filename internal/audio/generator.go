package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	popDuration   = 120 * time.Millisecond
	chimeDuration = 600 * time.Millisecond
	buzzDuration  = 700 * time.Millisecond
)

// PopFrequency maps the size of a cleared group to a pop pitch:
// a semitone up per extra block, capped two octaves above the base.
func PopFrequency(count int) float64 {
	const base = 440.0
	steps := math.Min(math.Max(float64(count-2), 0), 24)
	return base * math.Pow(2, steps/12)
}

// PopGenerator generates a short sine blip with a fast decay.
type PopGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewPopGenerator creates a pop generator at freq Hz.
func NewPopGenerator(sr beep.SampleRate, freq float64) *PopGenerator {
	return &PopGenerator{sr: sr, freq: freq}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 30)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}

// chimeNotes is a major arpeggio (C5, E5, G5).
var chimeNotes = [3]float64{523.25, 659.25, 783.99}

// ChimeGenerator plays chimeNotes one after another.
type ChimeGenerator struct {
	sr      beep.SampleRate
	pos     int
	perNote int
}

// NewChimeGenerator creates a chime generator.
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{
		sr:      sr,
		perNote: sr.N(chimeDuration / time.Duration(len(chimeNotes))),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := min(g.pos/g.perNote, len(chimeNotes)-1)
		notePos := g.pos - note*g.perNote
		t := float64(notePos) / float64(g.sr)

		envelope := math.Exp(-t * 6)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*chimeNotes[note]*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator.
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Odd harmonics for a square-ish tone
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample += 0.06 * math.Sin(2*math.Pi*g.freq*5*t)

		// 20ms fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
