// Package present is the interactive slide show: a section picker and the
// presenter view for one mounted section.
package present

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/input"
	"github.com/shahbajlive/deck/internal/presenter"
	"github.com/shahbajlive/deck/internal/tui/render"
	"github.com/shahbajlive/deck/internal/tui/theme"
)

// WaveDuration is how long the background wave takes to sweep the screen.
const WaveDuration = 1200 * time.Millisecond

// DefaultFrameInterval is the animation tick period.
const DefaultFrameInterval = time.Second / 30

// TickMsg advances animations. It carries the wall-clock time of the tick.
type TickMsg time.Time

// PressMsg is a navigation request from outside the keyboard, e.g. the
// remote clicker.
type PressMsg struct {
	Direction presenter.Direction
}

// ReloadMsg delivers a re-read deck file.
type ReloadMsg struct {
	Deck *deck.Deck
	Err  error
}

// timerMsg carries a due scheduler callback into the update loop.
type timerMsg struct {
	fn func()
}

// NewScheduler returns a real-time scheduler whose callbacks are delivered
// through send, typically tea.Program.Send, and run inside Update.
func NewScheduler(send func(tea.Msg)) *presenter.LoopScheduler {
	return presenter.NewLoopScheduler(func(fn func()) {
		send(timerMsg{fn: fn})
	})
}

type screen int

const (
	screenPicker screen = iota
	screenPresent
)

type waveState struct {
	token   presenter.Token
	elapsed time.Duration
	done    bool
}

// Model is the root bubbletea model.
type Model struct {
	deck     *deck.Deck
	keys     KeyMap
	hub      *input.Hub
	help     help.Model
	theme    theme.Theme
	renderer *render.Renderer
	logger   *slog.Logger
	now      func() time.Time

	skipAnimations bool
	interval       time.Duration
	settle         time.Duration
	fallback       *deck.AnimationSpec
	startSection   string
	observers      []func(presenter.Frame)
	sched          presenter.Scheduler

	screen   screen
	cursor   int
	ctrl     *presenter.Controller
	unsubs   []func()
	wave     waveState
	ticking  bool
	lastTick time.Time
	animTick int

	width    int
	height   int
	showHelp bool
	status   string
	quitting bool
}

// Option configures the model.
type Option func(*Model)

// WithSkipAnimations finishes every transition immediately.
func WithSkipAnimations() Option {
	return func(m *Model) { m.skipAnimations = true }
}

// WithStartSection mounts the section straight away instead of showing the
// picker.
func WithStartSection(id string) Option {
	return func(m *Model) { m.startSection = id }
}

// WithTheme sets the palette.
func WithTheme(t theme.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithRenderer sets the slide renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(m *Model) { m.renderer = r }
}

// WithLogger sets the logger passed down to each controller.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithFrameInterval sets the animation tick period.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithSettleDelay overrides the background settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(m *Model) { m.settle = d }
}

// WithDefaultTransition sets the transition for slides that declare none.
func WithDefaultTransition(spec deck.AnimationSpec) Option {
	return func(m *Model) { m.fallback = &spec }
}

// WithObserver receives every frame of every mounted section.
func WithObserver(fn func(presenter.Frame)) Option {
	return func(m *Model) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// WithScheduler runs background settle timers on s instead of the tick
// driven clock. Use NewScheduler to build one for a running program.
func WithScheduler(s presenter.Scheduler) Option {
	return func(m *Model) { m.sched = s }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates the model for d.
func New(d *deck.Deck, opts ...Option) *Model {
	m := &Model{
		deck:     d,
		keys:     DefaultKeyMap(),
		hub:      input.NewHub(),
		help:     help.New(),
		logger:   slog.Default(),
		now:      time.Now,
		interval: DefaultFrameInterval,
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.theme.Name == "" {
		m.theme = theme.Current()
	}
	if m.renderer == nil {
		r, err := render.New(m.theme, 0)
		if err == nil {
			m.renderer = r
		}
	}
	if m.startSection != "" {
		for i, sec := range d.Sections {
			if sec.ID == m.startSection {
				m.cursor = i
				m.mount(sec)
				break
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.screen == screenPresent {
		return m.scheduleTick()
	}
	return nil
}

// Controller returns the mounted controller, or nil on the picker.
func (m *Model) Controller() *presenter.Controller {
	if m.screen != screenPresent {
		return nil
	}
	return m.ctrl
}

// Hub returns the key hub the controllers bind to.
func (m *Model) Hub() *input.Hub { return m.hub }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.catchUp()
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.catchUp()
		return m, m.handleMouse(msg)

	case PressMsg:
		if m.screen != screenPresent {
			return m, nil
		}
		m.catchUp()
		switch msg.Direction {
		case presenter.DirectionNext:
			m.ctrl.GoNext()
		case presenter.DirectionPrev:
			m.ctrl.GoPrev()
		default:
			return m, nil
		}
		return m, m.afterNavigate()

	case TickMsg:
		m.ticking = false
		if m.screen != screenPresent {
			return m, nil
		}
		m.animTick++
		m.advance(time.Time(msg))
		return m, m.scheduleTick()

	case timerMsg:
		msg.fn()
		if m.screen == screenPresent {
			m.syncWave()
		}
		return m, m.scheduleTick()

	case ReloadMsg:
		return m, m.reload(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.unmount()
		m.quitting = true
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil
	}

	if m.screen == screenPicker {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.deck.Sections)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.deck.Sections) {
				m.mount(m.deck.Sections[m.cursor])
				return m.scheduleTick()
			}
		case key.Matches(msg, m.keys.Back):
			m.quitting = true
			return tea.Quit
		}
		return nil
	}

	// Mounted views get the key first; unhandled keys fall through to the
	// application bindings.
	if m.hub.Dispatch(msg) {
		return m.afterNavigate()
	}
	switch {
	case key.Matches(msg, m.keys.Skip):
		m.ctrl.FinishTransitions()
		m.completeWave()
	case key.Matches(msg, m.keys.Back):
		m.unmount()
	}
	return nil
}

// navButtonWidth is the clickable width of each nav bar button.
const navButtonWidth = 3

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.screen != screenPresent {
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Y != m.height-1 {
		return nil
	}
	switch {
	case msg.X < navButtonWidth:
		m.ctrl.GoPrev()
	case msg.X >= m.width-navButtonWidth:
		m.ctrl.GoNext()
	default:
		return nil
	}
	return m.afterNavigate()
}

func (m *Model) afterNavigate() tea.Cmd {
	if m.skipAnimations {
		m.ctrl.FinishTransitions()
	}
	m.syncWave()
	if m.skipAnimations {
		m.completeWave()
	}
	return m.scheduleTick()
}

func (m *Model) mount(sec deck.Section) {
	m.unmount()

	opts := []presenter.Option{
		presenter.WithKeys(m.hub, m.keys.Nav),
		presenter.WithLogger(m.logger),
	}
	if m.settle > 0 {
		opts = append(opts, presenter.WithSettleDelay(m.settle))
	}
	if m.fallback != nil {
		opts = append(opts, presenter.WithDefaultTransition(*m.fallback))
	}
	if m.sched != nil {
		opts = append(opts, presenter.WithScheduler(m.sched))
	}
	m.ctrl = presenter.New(sec, opts...)
	for _, fn := range m.observers {
		m.unsubs = append(m.unsubs, m.ctrl.Subscribe(fn))
		fn(m.ctrl.Frame())
	}
	if m.skipAnimations {
		m.ctrl.FinishTransitions()
	}
	m.screen = screenPresent
	m.wave = waveState{}
	m.lastTick = m.now()
	m.logger.Debug("section mounted", "section", sec.ID)
}

func (m *Model) unmount() {
	if m.ctrl == nil {
		return
	}
	for _, cancel := range m.unsubs {
		cancel()
	}
	m.unsubs = nil
	left := presenter.Frame{}
	for _, fn := range m.observers {
		fn(left)
	}
	m.ctrl.Close()
	m.ctrl = nil
	m.screen = screenPicker
	m.wave = waveState{}
}

// scheduleTick starts the tick loop if it is not already running. With
// animations skipped, ticks are only needed to let a background settle.
func (m *Model) scheduleTick() tea.Cmd {
	if m.ticking || m.screen != screenPresent {
		return nil
	}
	interval := m.interval
	if m.skipAnimations {
		// Settle timers on a real scheduler need no ticks.
		if m.wave.token.IsZero() || m.sched != nil {
			return nil
		}
		interval = m.settleDelay()
	}
	m.ticking = true
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) settleDelay() time.Duration {
	if m.settle > 0 {
		return m.settle
	}
	return presenter.DefaultSettleDelay
}

// catchUp moves the controller clock to the wall clock, so timers armed by
// the event about to be handled start from now rather than the last tick.
func (m *Model) catchUp() {
	now := m.now()
	if m.screen != screenPresent || !now.After(m.lastTick) {
		return
	}
	m.advance(now)
}

func (m *Model) advance(now time.Time) {
	dt := now.Sub(m.lastTick)
	if dt < 0 {
		dt = 0
	} else {
		m.lastTick = now
	}
	m.ctrl.Advance(dt)
	m.syncWave()
	if m.wave.token.IsZero() || m.wave.done {
		return
	}
	m.wave.elapsed += dt
	if m.wave.elapsed >= WaveDuration {
		m.completeWave()
	}
}

// syncWave restarts the wave whenever the controller armed a new token.
func (m *Model) syncWave() {
	if tok := m.ctrl.Token(); tok != m.wave.token {
		m.wave = waveState{token: tok}
	}
}

func (m *Model) completeWave() {
	if m.wave.token.IsZero() || m.wave.done {
		return
	}
	m.wave.done = true
	m.wave.elapsed = WaveDuration
	m.ctrl.BackgroundComplete(m.wave.token)
}

func (m *Model) reload(msg ReloadMsg) tea.Cmd {
	if msg.Err != nil {
		m.status = msg.Err.Error()
		m.logger.Warn("deck reload failed", "error", msg.Err)
		return nil
	}
	m.status = ""
	m.deck = msg.Deck
	if m.renderer != nil {
		m.renderer.Purge()
	}
	if m.cursor >= len(m.deck.Sections) {
		m.cursor = max(0, len(m.deck.Sections)-1)
	}
	if m.screen != screenPresent {
		return nil
	}

	id := m.ctrl.Section().ID
	sec, err := m.deck.Section(id)
	if err != nil {
		m.unmount()
		m.status = err.Error()
		return nil
	}
	// A reload starts the section over, like any other mount.
	m.mount(sec)
	return m.scheduleTick()
}
