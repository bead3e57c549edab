package blocks

import (
	"math/rand"
	"testing"
	"time"
)

var unitCells = LevelOptions{CellWidth: 1, CellHeight: 1, Step: DefaultStep}

func newTestLevel(t *testing.T, opts LevelOptions, board ...string) *Level {
	t.Helper()
	l, err := RestoreLevel(LevelState{Grid: mustParse(t, board...).Serialize()}, opts)
	if err != nil {
		t.Fatalf("RestoreLevel: %v", err)
	}
	return l
}

func TestLevelOnClickScoresSquare(t *testing.T) {
	region := [][2]int{{1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}}

	for _, p := range region {
		l := newTestLevel(t, unitCells, "GRB", "RRR", "BRG")
		if got := l.OnClick(p[0], p[1]); got != 25 {
			t.Errorf("OnClick%v = %d, want 25", p, got)
		}
		if got := l.LastCleared(); got != 5 {
			t.Errorf("LastCleared() = %d, want 5", got)
		}
	}
}

func TestLevelOnClickMapsCellSize(t *testing.T) {
	opts := LevelOptions{CellWidth: 4, CellHeight: 2}
	tests := []struct {
		name   string
		x, y   int
		scored bool
	}{
		{"inside pair", 5, 3, true},
		{"last canvas unit of pair", 7, 1, true},
		{"isolated block", 9, 5, false},
		{"negative x", -1, 0, false},
		{"negative y", 0, -2, false},
		{"beyond board", 40, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLevel(t, opts,
				"GRB",
				"GRY",
				"BYG",
			)
			got := l.OnClick(tt.x, tt.y)
			if (got > 0) != tt.scored {
				t.Errorf("OnClick(%d,%d) = %d, scored want %v", tt.x, tt.y, got, tt.scored)
			}
		})
	}
}

func TestLevelOnClickIsolatedBlockNoop(t *testing.T) {
	l := newTestLevel(t, unitCells, "RG", "GR")
	before := l.Grid().String()

	if got := l.OnClick(0, 0); got != 0 {
		t.Errorf("OnClick on isolated block = %d, want 0", got)
	}
	if l.Grid().String() != before {
		t.Error("isolated click changed the board")
	}
	if l.IsAnimating() {
		t.Error("isolated click started an animation")
	}
}

func TestLevelAnimationSequence(t *testing.T) {
	l := newTestLevel(t, unitCells, "GRB", "RRR", "BRG")

	l.OnClick(1, 1)
	anim := l.Animation()
	if anim.Phase != PhaseFallingDown {
		t.Fatalf("phase after click = %v, want falling_down", anim.Phase)
	}
	if anim.FallRatio != 1 {
		t.Errorf("FallRatio = %v, want 1", anim.FallRatio)
	}
	if l.IsFinished() {
		t.Error("IsFinished() = true while falling")
	}
	if got := l.OnClick(0, 2); got != 0 {
		t.Errorf("click while animating = %d, want 0", got)
	}

	anim = l.Update(50 * time.Millisecond)
	if anim.Phase != PhaseFallingDown || anim.FallRatio != 0.5 {
		t.Errorf("halfway = %+v, want falling_down at 0.5", anim)
	}

	// Fall ends, the empty middle column starts shifting.
	anim = l.Update(50 * time.Millisecond)
	if anim.Phase != PhaseShiftingLeft {
		t.Fatalf("phase after fall = %v, want shifting_left", anim.Phase)
	}
	if anim.ShiftRatio != 1 || anim.FallRatio != 0 {
		t.Errorf("shift start = %+v, want ShiftRatio 1, FallRatio 0", anim)
	}
	if got := l.Grid().At(1, 1).HorizontalOffset; got != 1 {
		t.Errorf("shifted block offset = %d, want 1", got)
	}
	if got := l.Grid().At(0, 1).VerticalOffset; got != 0 {
		t.Errorf("vertical offset after fall = %d, want 0", got)
	}
	if l.IsFinished() {
		t.Error("IsFinished() = true while shifting")
	}

	anim = l.Update(100 * time.Millisecond)
	if !anim.Idle() {
		t.Fatalf("phase after shift = %v, want idle", anim.Phase)
	}
	assertNoOffsets(t, l.Grid())

	if got, want := l.Grid().String(), rows("... GB. BG."); got != want {
		t.Errorf("board =\n%s\nwant\n%s", got, want)
	}
	if !l.IsFinished() {
		t.Error("IsFinished() = false on a board without pairs")
	}
}

func TestLevelNoFallGoesStraightToShift(t *testing.T) {
	l := newTestLevel(t, unitCells, "RG", "RG")

	if got := l.OnClick(0, 1); got != 4 {
		t.Errorf("OnClick = %d, want 4", got)
	}
	if got := l.Animation().Phase; got != PhaseShiftingLeft {
		t.Errorf("phase = %v, want shifting_left", got)
	}
}

func TestLevelNoMovementStaysIdle(t *testing.T) {
	l := newTestLevel(t, unitCells, "RR", "GB")

	if got := l.OnClick(1, 0); got != 4 {
		t.Errorf("OnClick = %d, want 4", got)
	}
	if l.IsAnimating() {
		t.Error("IsAnimating() = true with nothing to move")
	}
	if got, want := l.Grid().String(), rows(".. GB"); got != want {
		t.Errorf("board =\n%s\nwant\n%s", got, want)
	}
}

func TestLevelAnimationDurationScalesWithDistance(t *testing.T) {
	l := newTestLevel(t, unitCells, "G", "R", "R", "R")
	l.OnClick(0, 3)

	// G falls three rows: 300ms at 100ms per row.
	l.Update(250 * time.Millisecond)
	if got := l.Animation().Phase; got != PhaseFallingDown {
		t.Fatalf("phase at 250ms = %v, want falling_down", got)
	}
	l.Update(50 * time.Millisecond)
	if l.IsAnimating() {
		t.Error("still animating after 300ms")
	}
}

func TestLevelUpdateIgnoresNegativeDelta(t *testing.T) {
	l := newTestLevel(t, unitCells, "G", "R", "R")
	l.OnClick(0, 2)

	anim := l.Update(-time.Second)
	if anim.FallRatio != 2 {
		t.Errorf("FallRatio after negative delta = %v, want 2", anim.FallRatio)
	}
}

func TestIsFinishedFalseWhileAnimating(t *testing.T) {
	// After the clear, nothing on the board matches, but the fall still runs.
	l := newTestLevel(t, unitCells, "G", "R", "R")
	l.OnClick(0, 1)

	if l.Grid().HasContiguousArea() {
		t.Fatal("board should have no pairs left")
	}
	if l.IsFinished() {
		t.Error("IsFinished() = true during animation")
	}
	l.Settle()
	if !l.IsFinished() {
		t.Error("IsFinished() = false after settling")
	}
}

func TestLevelOffsetsZeroWhenIdle(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	l := NewLevel(8, 8, RandomGenerator(rng, Palette(3)), unitCells)

	for i := 0; i < 200 && !l.IsFinished(); i++ {
		l.OnClick(rng.Intn(8), rng.Intn(8))
		for l.IsAnimating() {
			l.Update(16 * time.Millisecond)
		}
		assertNoOffsets(t, l.Grid())
	}
}

func TestLevelSettle(t *testing.T) {
	l := newTestLevel(t, unitCells, "GRB", "RRR", "BRG")
	l.OnClick(1, 1)
	l.Settle()

	if l.IsAnimating() {
		t.Error("IsAnimating() = true after Settle")
	}
	assertNoOffsets(t, l.Grid())
	if got, want := l.Grid().String(), rows("... GB. BG."); got != want {
		t.Errorf("board =\n%s\nwant\n%s", got, want)
	}
}

func TestNextLevel(t *testing.T) {
	blue := func(_, _ int) BlockType { return BlockBlue }

	t.Run("fresh board", func(t *testing.T) {
		prev := newTestLevel(t, unitCells, "..", "RG")
		next := NextLevel(prev, blue, false)

		if got, want := next.Grid().String(), rows("BB BB"); got != want {
			t.Errorf("board =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("carry over", func(t *testing.T) {
		prev := newTestLevel(t, unitCells, "..", "RG")
		next := NextLevel(prev, blue, true)

		if got, want := next.Grid().String(), rows("BB RG"); got != want {
			t.Errorf("board =\n%s\nwant\n%s", got, want)
		}
		if got, want := prev.Grid().String(), rows(".. RG"); got != want {
			t.Errorf("previous board changed to\n%s", got)
		}
	})
}

func TestLevelSerializeRestore(t *testing.T) {
	l := newTestLevel(t, unitCells, "RGB", "RYB")
	restored, err := RestoreLevel(l.Serialize(), unitCells)
	if err != nil {
		t.Fatalf("RestoreLevel: %v", err)
	}
	if restored.Grid().String() != l.Grid().String() {
		t.Errorf("restored =\n%s\nwant\n%s", restored.Grid().String(), l.Grid().String())
	}
	if restored.IsAnimating() {
		t.Error("restored level should be idle")
	}
}

func TestLevelSnapshot(t *testing.T) {
	l := newTestLevel(t, unitCells, "GRB", "RRR", "BRG")
	l.OnClick(1, 1)

	snap := l.Snapshot()
	if snap.Finished {
		t.Error("snapshot Finished = true while animating")
	}
	if snap.Animation.Phase != PhaseFallingDown {
		t.Errorf("snapshot phase = %v, want falling_down", snap.Animation.Phase)
	}
	if got := snap.Grid.At(0, 1); got.Type != BlockGreen || got.VerticalOffset != 1 {
		t.Errorf("snapshot (0,1) = %+v, want green with offset 1", got)
	}
}
