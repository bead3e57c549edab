package blocks

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultStep is the time a block needs to travel one cell while animating.
const DefaultStep = 100 * time.Millisecond

// Phase is the animation state of a Level.
type Phase int

const (
	PhaseIdle         Phase = iota // Waiting for a click
	PhaseFallingDown               // Blocks are dropping into the gaps below them
	PhaseShiftingLeft              // Columns are sliding into emptied columns
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFallingDown:
		return "falling_down"
	case PhaseShiftingLeft:
		return "shifting_left"
	default:
		return "unknown"
	}
}

// AnimationSnapshot describes the running animation for one frame.
// FallRatio and ShiftRatio are the number of cells still to travel in the
// current phase (fractional). A block is drawn min(ratio, offset) cells away
// from its logical cell, so all blocks move at the same visual speed and land
// together.
type AnimationSnapshot struct {
	Phase      Phase
	FallRatio  float64
	ShiftRatio float64
}

// Idle reports whether no animation is running.
func (a AnimationSnapshot) Idle() bool {
	return a.Phase == PhaseIdle
}

// LevelOptions configures the click mapping and animation speed of a Level.
type LevelOptions struct {
	CellWidth  int           // Canvas units per column
	CellHeight int           // Canvas units per row
	Step       time.Duration // Animation time per cell travelled
	Logger     *log.Logger
}

func (o LevelOptions) withDefaults() LevelOptions {
	if o.CellWidth <= 0 {
		o.CellWidth = 1
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 1
	}
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Level is one board of the game. It owns its grid and the
// clear, fall, shift and settle sequence that follows each click.
type Level struct {
	grid *Grid
	opts LevelOptions

	phase    Phase
	elapsed  time.Duration
	distance int // Cells travelled in the current phase

	lastCleared int
}

// NewLevel creates a level of the given size filled from gen.
func NewLevel(columns, rows int, gen Generator, opts LevelOptions) *Level {
	opts = opts.withDefaults()
	grid := NewGrid(columns, rows)
	grid.SetLogger(opts.Logger)
	grid.Initialize(gen)

	return &Level{grid: grid, opts: opts}
}

// NextLevel creates the level that follows prev. With carryOver, the blocks
// left on prev are kept in place and only the empty cells are filled from gen;
// otherwise the new board is filled from gen entirely. prev is not modified.
func NextLevel(prev *Level, gen Generator, carryOver bool) *Level {
	next := NewLevel(prev.grid.Width(), prev.grid.Height(), gen, prev.opts)
	if !carryOver {
		return next
	}

	state := prev.grid.Serialize()
	next.grid.Initialize(FlatGenerator(state.Height, state.Blocks))
	next.grid.FillEmpty(gen)
	return next
}

// LevelState is the persisted form of a level.
type LevelState struct {
	Grid GridState `json:"grid"`
}

// RestoreLevel rebuilds an idle level from its persisted form.
func RestoreLevel(state LevelState, opts LevelOptions) (*Level, error) {
	opts = opts.withDefaults()
	grid, err := DeserializeGrid(state.Grid)
	if err != nil {
		return nil, err
	}
	grid.SetLogger(opts.Logger)

	return &Level{grid: grid, opts: opts}, nil
}

// Serialize returns the persisted form of the level. Call Settle first if an
// animation may be running so the saved board is fully compacted.
func (l *Level) Serialize() LevelState {
	return LevelState{Grid: l.grid.Serialize()}
}

// Grid exposes the level's board for read-only inspection.
func (l *Level) Grid() *Grid {
	return l.grid
}

// OnClick handles a click at canvas position (canvasX, canvasY) and returns
// the score gained: the square of the number of blocks cleared. Clicks during
// an animation, outside the board, or on a block without a same-colored
// neighbor score 0 and change nothing.
func (l *Level) OnClick(canvasX, canvasY int) int {
	l.lastCleared = 0
	if l.IsAnimating() {
		return 0
	}
	if canvasX < 0 || canvasY < 0 {
		return 0
	}

	x := canvasX / l.opts.CellWidth
	y := canvasY / l.opts.CellHeight
	if !l.grid.IsContiguousArea(x, y) {
		return 0
	}

	count := l.grid.ClearContiguousBlocks(x, y)
	l.lastCleared = count
	l.startFall()

	return Score(count)
}

// LastCleared returns the number of blocks removed by the most recent OnClick.
func (l *Level) LastCleared() int {
	return l.lastCleared
}

// Score is the reward for clearing count blocks at once.
func Score(count int) int {
	return count * count
}

func (l *Level) startFall() {
	l.elapsed = 0
	l.distance = l.grid.ShiftBlocksDown()
	if l.distance > 0 {
		l.phase = PhaseFallingDown
		return
	}
	l.startShift()
}

func (l *Level) startShift() {
	l.elapsed = 0
	l.distance = l.grid.ShiftBlocksLeft()
	if l.distance > 0 {
		l.phase = PhaseShiftingLeft
		return
	}
	l.phase = PhaseIdle
}

// Update advances the animation by dt and returns the state to draw.
// Time left over when a phase ends is not carried into the next phase.
func (l *Level) Update(dt time.Duration) AnimationSnapshot {
	if dt < 0 {
		dt = 0
	}

	switch l.phase {
	case PhaseFallingDown:
		l.elapsed += dt
		if l.elapsed >= l.duration() {
			l.grid.ResetVerticalPositions()
			l.startShift()
		}
	case PhaseShiftingLeft:
		l.elapsed += dt
		if l.elapsed >= l.duration() {
			l.grid.ResetHorizontalPositions()
			l.phase = PhaseIdle
			l.elapsed = 0
			l.distance = 0
		}
	}

	return l.Animation()
}

// Settle finishes any running animation immediately.
func (l *Level) Settle() {
	for l.IsAnimating() {
		l.Update(l.duration())
	}
}

func (l *Level) duration() time.Duration {
	return time.Duration(l.distance) * l.opts.Step
}

func (l *Level) remaining() float64 {
	left := l.duration() - l.elapsed
	if left <= 0 {
		return 0
	}
	return float64(left) / float64(l.opts.Step)
}

// Animation returns the current animation state without advancing it.
func (l *Level) Animation() AnimationSnapshot {
	snap := AnimationSnapshot{Phase: l.phase}
	switch l.phase {
	case PhaseFallingDown:
		snap.FallRatio = l.remaining()
	case PhaseShiftingLeft:
		snap.ShiftRatio = l.remaining()
	}
	return snap
}

// IsAnimating reports whether a fall or shift is in progress.
func (l *Level) IsAnimating() bool {
	return l.phase != PhaseIdle
}

// IsFinished reports whether the board has no legal move left and nothing is
// moving. An emptied board and a board of isolated blocks are both finished.
func (l *Level) IsFinished() bool {
	return !l.IsAnimating() && !l.grid.HasContiguousArea()
}

// LevelSnapshot is a read-only view of a level for rendering.
type LevelSnapshot struct {
	Grid      GridSnapshot
	Animation AnimationSnapshot
	Finished  bool
}

// Snapshot returns a read-only copy of the board and animation state.
func (l *Level) Snapshot() LevelSnapshot {
	return LevelSnapshot{
		Grid:      l.grid.Snapshot(),
		Animation: l.Animation(),
		Finished:  l.IsFinished(),
	}
}
