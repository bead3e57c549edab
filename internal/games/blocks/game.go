package blocks

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blocks/internal/config"
	"github.com/vovakirdan/blocks/internal/core"
	"github.com/vovakirdan/blocks/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeTimed   Mode = "timed"
	ModeEndless Mode = "endless"
)

const (
	hudHeight = 1 // Rows above the board frame
	frameSize = 1 // Border around the board
)

// Package-level configuration, set by the CLI before games are created.
var (
	activeConfig = config.DefaultBlocksConfig()
	activeLogger *log.Logger
)

// Configure sets the configuration used by games created afterwards.
func Configure(cfg config.BlocksConfig) {
	activeConfig = cfg
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	activeLogger = l
}

// Game implements the blocks puzzle on top of Level: score, countdown with
// escalating targets, finished boards replaced by fresh ones.
type Game struct {
	mode       Mode
	cfg        config.BlocksConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	rng        *rand.Rand
	tick       uint64

	level *Level
	anim  AnimationSnapshot

	score          int
	targetScore    int
	targetSetCount int
	countdown      time.Duration
	levels         int // Boards finished this game

	// Screen layout
	screenW int
	screenH int
	origin  core.Point // Top-left terminal cell of the first column/row

	// Game state flags
	gameOver    bool
	paused      bool
	tooSmall    bool
	levelDone   bool
	levelDoneAt time.Duration // Time spent on the "Level done!" overlay
}

// New creates a timed game from the active configuration.
// A configuration without a countdown yields an endless game.
func New() *Game {
	mode := ModeTimed
	if activeConfig.Timing.CountdownMS == 0 {
		mode = ModeEndless
	}
	return NewWithConfig(activeConfig, mode)
}

// NewEndless creates an endless game from the active configuration.
func NewEndless() *Game {
	return NewWithConfig(activeConfig, ModeEndless)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.BlocksConfig, mode Mode) *Game {
	logger := activeLogger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		mode:       mode,
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     logger.WithPrefix("blocks"),
	}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
	registry.Register("blocks_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "blocks_endless"
	}
	return "blocks"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Blocks (Endless)"
	}
	return "Blocks"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.targetScore = g.cfg.Scoring.TargetBase
	g.targetSetCount = 1
	g.countdown = g.cfg.Timing.Countdown()
	g.levels = 0
	g.gameOver = false
	g.paused = false
	g.levelDone = false
	g.levelDoneAt = 0

	g.level = NewLevel(g.cfg.Board.Columns, g.cfg.Board.Rows, g.generator(), g.levelOptions())
	g.anim = g.level.Animation()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) levelOptions() LevelOptions {
	return LevelOptions{
		CellWidth:  g.cfg.Cell.Width,
		CellHeight: g.cfg.Cell.Height,
		Step:       g.cfg.Timing.Step(),
		Logger:     g.logger,
	}
}

// generator returns the block source for the next board.
func (g *Game) generator() Generator {
	colors := g.difficulty.Colors(g.cfg.Board.Colors, g.levels, g.score)
	return RandomGenerator(g.rng, Palette(colors))
}

// Resize recomputes the board placement for a new screen size without
// touching the game state.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH

	boardW, boardH := g.boardSize()
	minW := boardW + 2*frameSize
	minH := boardH + 2*frameSize + hudHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH

	g.origin = core.Point{
		X: core.Max(frameSize, (g.screenW-boardW)/2),
		Y: hudHeight + frameSize,
	}
}

// boardSize returns the board size in terminal cells.
func (g *Game) boardSize() (int, int) {
	cols, rows := g.cfg.Board.Columns, g.cfg.Board.Rows
	if g.level != nil {
		cols, rows = g.level.Grid().Width(), g.level.Grid().Height()
	}
	return cols * g.cfg.Cell.Width, rows * g.cfg.Cell.Height
}

// BoardRect returns the terminal area covered by the blocks.
func (g *Game) BoardRect() core.Rect {
	w, h := g.boardSize()
	return core.NewRect(g.origin.X, g.origin.Y, w, h)
}

// Step advances the game by dt. Clicks in the frame are in screen cells.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	g.tick++
	dt = core.ClampDelta(dt, g.cfg.Timing.MaxFrame())

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	for _, click := range in.Clicks {
		if delta := g.click(click); delta > 0 {
			g.score += delta
			events = append(events, core.Event{Kind: core.EventCleared, Value: g.level.LastCleared()})
		}
	}

	if g.mode == ModeTimed {
		remaining := g.countdown - dt
		if remaining <= 0 {
			g.countdown = 0
			g.gameOver = true
			g.logger.Info("game over", "score", g.score, "levels", g.levels)
			events = append(events, core.Event{Kind: core.EventGameOver, Value: g.score})
			return core.StepResult{State: g.State(), Events: events}
		}
		if g.score >= g.targetScore {
			g.targetSetCount++
			g.targetScore = g.score + g.targetSetCount*g.cfg.Scoring.TargetBase
			remaining = time.Duration(g.difficulty.CountdownMS(g.cfg.Timing.CountdownMS, g.levels, g.score)) * time.Millisecond
		}
		g.countdown = remaining
	}

	g.anim = g.level.Update(dt)

	if g.levelDone {
		g.levelDoneAt += dt
		if g.levelDoneAt >= g.cfg.Timing.LevelFinish() {
			g.advanceLevel()
			events = append(events, core.Event{Kind: core.EventLevelAdvanced, Value: g.levels})
		}
	} else if g.level.IsFinished() {
		g.levelDone = true
		g.levelDoneAt = 0
		g.logger.Debug("level finished", "remaining", g.level.Grid().BlockCount(), "score", g.score)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// click forwards a screen click to the level in board coordinates.
func (g *Game) click(p core.Point) int {
	if !g.BoardRect().Contains(p.X, p.Y) {
		return 0
	}
	return g.level.OnClick(p.X-g.origin.X, p.Y-g.origin.Y)
}

// advanceLevel replaces the finished board with a fresh one.
func (g *Game) advanceLevel() {
	g.levels++
	g.levelDone = false
	g.levelDoneAt = 0
	g.level = NextLevel(g.level, g.generator(), g.cfg.Board.CarryOver)
	g.anim = g.level.Animation()
	g.logger.Debug("level advanced", "levels", g.levels)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Click: Clear group | P: Pause | R: Restart | Q: Quit"
}
