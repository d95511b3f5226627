package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"driftline/internal/core"
	"driftline/internal/game"
	"driftline/internal/registry"
	"driftline/internal/storage"
)

// holdTicks keeps a driving action alive after a key press. Terminals
// only report key-down events, and OS key repeat has an initial delay;
// this window bridges the gap so steering does not stutter.
const holdTicks = 15

// Model is the Bubble Tea model for running a race locally.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	held    map[core.Action]int // action -> tick it expires on
	oneShot core.InputFrame     // non-driving actions for the next tick
	tick    int

	gameState    core.GameState
	lastSavedLap int
	raceSaved    bool
	quitting     bool
	backToMenu   bool
}

// NewModel creates a new Bubble Tea model for the given game mode.
func NewModel(g registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:      g,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		held:      make(map[core.Action]int),
		oneShot:   core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case Held(action):
		m.held[action] = m.tick + holdTicks
	case action == core.ActionBack:
		// Back exits to the menu from a paused or finished race.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
	case action != core.ActionNone:
		m.oneShot.Set(action)
	}

	return m, nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// handleResize processes window resize events. The simulation keeps its
// world-space state; only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++

	frame := m.oneShot.Clone()
	for action, expires := range m.held {
		if m.tick <= expires {
			frame.Set(action)
		} else {
			delete(m.held, action)
		}
	}
	m.oneShot.Clear()

	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Fresh seed for a fresh arena.
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.lastSavedLap = 0
		m.raceSaved = false
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	m.persistProgress()

	return m, tickCmd(m.config.TickRate)
}

// persistProgress records newly completed laps and, once, the finished
// race. Best-effort: a write failure never interrupts play.
func (m *Model) persistProgress() {
	if m.store == nil {
		return
	}
	race, ok := m.game.(*game.Game)
	if !ok {
		return
	}

	info, err := race.LapInfo(game.PlayerCar)
	if err == nil && info.Lap > m.lastSavedLap {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveLap(m.game.ID(), info.LastLap, m.config.Seed)
		m.lastSavedLap = info.Lap
	}

	if m.gameState.GameOver && !m.raceSaved {
		botInfo, botErr := race.LapInfo(game.BotCar)
		botLaps := 0
		if botErr == nil {
			botLaps = botInfo.Lap
		}
		//nolint:errcheck // Best-effort save
		m.store.SaveRace(storage.RaceEntry{
			ModeID:       m.game.ID(),
			PlayerLaps:   info.Lap,
			BotLaps:      botLaps,
			Winner:       race.Winner(),
			DurationSecs: int(race.Now() / 1000),
			Seed:         m.config.Seed,
		})
		m.raceSaved = true
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(g registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(g, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
