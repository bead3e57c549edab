package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blocks/internal/audio"
	"github.com/vovakirdan/blocks/internal/config"
	"github.com/vovakirdan/blocks/internal/core"
	"github.com/vovakirdan/blocks/internal/registry"
	"github.com/vovakirdan/blocks/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the key help.
const helpHeight = 1

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	player     audio.Player
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// store and player may be nil.
func NewModel(game registry.Game, store *storage.Store, player audio.Player, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player == nil {
		player = audio.Nop{}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		player:     player,
		logger:     log.Default().WithPrefix("tui"),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// gameHeight returns the rows left for the game once the help line is drawn.
func gameHeight(screenH int) int {
	return max(0, screenH-helpHeight)
}

// Init starts the game, restoring a saved game when one exists.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)
	m.restore()
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// restore loads the saved game for persistent games.
func (m Model) restore() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		return
	}
	data, err := m.store.LoadState(p.SaveKey())
	if errors.Is(err, storage.ErrNoSavedGame) {
		return
	}
	if err != nil {
		m.logger.Warn("could not read saved game", "key", p.SaveKey(), "err", err)
		return
	}
	if err := p.LoadState(data); err != nil {
		// A save we cannot read would fail forever; start fresh instead.
		m.logger.Warn("discarding unreadable saved game", "key", p.SaveKey(), "err", err)
		m.deleteSave()
		return
	}
	m.logger.Info("restored saved game", "key", p.SaveKey())
}

// save stores the game in progress.
func (m Model) save() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil || m.gameState.GameOver {
		return
	}
	data, err := p.SaveState()
	if err != nil {
		m.logger.Error("could not serialize game", "err", err)
		return
	}
	if err := m.store.SaveState(p.SaveKey(), data); err != nil {
		m.logger.Error("could not save game", "key", p.SaveKey(), "err", err)
	}
}

// deleteSave drops the stored game, if any.
func (m Model) deleteSave() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteState(p.SaveKey()); err != nil {
		m.logger.Error("could not delete saved game", "key", p.SaveKey(), "err", err)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.save()
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := gameHeight(msg.Height)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, h)
		return m, nil
	}

	// Games without resize support restart at the new size
	if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = h
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now)
	m.lastTick = now

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		cfg := m.config
		cfg.ScreenH = gameHeight(cfg.ScreenH)
		m.game.Reset(cfg)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	m.handleEvents(result.Events)

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.logger.Error("could not save score", "game", m.game.ID(), "err", err)
			}
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvents forwards step events to the sound player and the save slot.
func (m Model) handleEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventCleared:
			m.player.Clear(e.Value)
		case core.EventLevelAdvanced:
			m.player.LevelDone()
			m.save()
		case core.EventGameOver:
			m.player.GameOver()
			m.deleteSave()
			m.logger.Info("game over", "game", m.game.ID(), "score", m.gameState.Score)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("saved screenshot", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, player audio.Player, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, player, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks select block groups
	)

	_, err := p.Run()
	return err
}
