package presenter

import (
	"log/slog"
	"time"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/input"
)

// InstanceView is the paintable state of one slide instance.
type InstanceView struct {
	Slide    deck.Slide         `json:"-"`
	SlideID  string             `json:"slideId"`
	Phase    Phase              `json:"phase"`
	Type     deck.AnimationType `json:"type"`
	Motion   Motion             `json:"motion"`
	Progress float64            `json:"progress"`
}

// Frame is the render signal the controller publishes on every change. The
// zero Frame, with no SectionID, announces that no section is mounted.
type Frame struct {
	SectionID      string         `json:"section"`
	Slide          *deck.Slide    `json:"slide"`
	Index          int            `json:"index"`
	Total          int            `json:"total"`
	Direction      Direction      `json:"direction"`
	Moved          bool           `json:"moved"`
	Background     Token          `json:"backgroundToken"`
	BackgroundType string         `json:"backgroundType,omitempty"`
	Phase          Phase          `json:"phase"`
	Visible        []InstanceView `json:"visible"`
}

// Empty reports whether the section had no slide to show.
func (f Frame) Empty() bool { return f.Slide == nil }

// Unmounted reports whether f is the signal that the section was left.
func (f Frame) Unmounted() bool { return f.SectionID == "" }

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler used for the background settle delay. By
// default the delay runs on the controller's own clock, driven by Advance.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
			c.clock = nil
		}
	}
}

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.settle = d
		}
	}
}

// WithDefaultTransition sets the transition for slides that declare none.
func WithDefaultTransition(spec deck.AnimationSpec) Option {
	return func(c *Controller) {
		c.fallback = spec
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithKeys binds the keymap on hub for the controller's lifetime.
func WithKeys(hub *input.Hub, km KeyMap) Option {
	return func(c *Controller) {
		c.hub = hub
		c.keymap = km
	}
}

// Controller owns the navigation state and both animation drivers for one
// mounted section. It is not safe for concurrent use; a single event loop
// must own it.
type Controller struct {
	section  deck.Section
	nav      *Navigator
	trans    *Transitions
	bg       *Background
	sched    Scheduler
	clock    *ManualScheduler
	settle   time.Duration
	fallback deck.AnimationSpec
	logger   *slog.Logger

	hub     *input.Hub
	keymap  KeyMap
	release func()

	subs   map[int]func(Frame)
	subSeq int
	closed bool
}

// New mounts section: the index starts at zero, the first slide begins
// entering and, if a hub was given, the arrow keys are bound.
func New(section deck.Section, opts ...Option) *Controller {
	clock := NewManualScheduler()
	c := &Controller{
		section:  section,
		sched:    clock,
		clock:    clock,
		settle:   DefaultSettleDelay,
		fallback: DefaultSpec,
		logger:   slog.Default(),
		keymap:   DefaultKeyMap(),
		subs:     make(map[int]func(Frame)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.nav = NewNavigator(section.Slides)
	c.trans = NewTransitions(c.fallback)
	c.bg = NewBackground(publishAfter{inner: c.sched, after: c.publish}, c.settle, c.logger)

	if slide, ok := c.nav.Current(); ok {
		c.trans.Key(slide, DirectionNone)
	}
	if c.hub != nil {
		c.release = BindKeys(c.hub, c, c.keymap)
	}

	c.logger.Debug("presenter mounted", "section", section.ID, "slides", len(section.Slides))
	return c
}

// GoNext advances one slide.
func (c *Controller) GoNext() {
	if c.closed {
		return
	}
	c.nav.GoNext()
	c.afterNavigate()
}

// GoPrev retreats one slide.
func (c *Controller) GoPrev() {
	if c.closed {
		return
	}
	c.nav.GoPrev()
	c.afterNavigate()
}

func (c *Controller) afterNavigate() {
	slide, ok := c.nav.Current()
	if ok {
		c.bg.Arm(slide)
		c.trans.Key(slide, c.nav.Direction())
	}
	c.logger.Debug("presenter navigate",
		"section", c.section.ID,
		"direction", c.nav.Direction().String(),
		"index", c.nav.Index(),
		"moved", c.nav.Moved(),
	)
	c.publish()
}

// BackgroundComplete is called by the renderer once the background animation
// for tok has finished playing.
func (c *Controller) BackgroundComplete(tok Token) bool {
	if c.closed {
		return false
	}
	return c.bg.Complete(tok)
}

// Advance moves animation time forward by dt.
func (c *Controller) Advance(dt time.Duration) {
	if c.closed || dt <= 0 {
		return
	}
	animating := c.trans.Animating()
	c.trans.Advance(dt)
	if c.clock != nil {
		c.clock.Advance(dt)
	}
	if animating {
		c.publish()
	}
}

// FinishTransitions jumps the slide transition to its end state.
func (c *Controller) FinishTransitions() {
	if c.closed {
		return
	}
	c.trans.Finish()
	c.publish()
}

// Animating reports whether a slide transition is in flight.
func (c *Controller) Animating() bool {
	return !c.closed && c.trans.Animating()
}

// Section returns the mounted section.
func (c *Controller) Section() deck.Section { return c.section }

// Index returns the current slide index.
func (c *Controller) Index() int { return c.nav.Index() }

// Total returns the number of slides.
func (c *Controller) Total() int { return c.nav.Total() }

// Current returns the current slide.
func (c *Controller) Current() (deck.Slide, bool) { return c.nav.Current() }

// Token returns the live background token.
func (c *Controller) Token() Token { return c.bg.Token() }

// Frame snapshots the render signal.
func (c *Controller) Frame() Frame {
	f := Frame{
		SectionID:      c.section.ID,
		Index:          c.nav.Index(),
		Total:          c.nav.Total(),
		Direction:      c.nav.Direction(),
		Moved:          c.nav.Moved(),
		Background:     c.bg.Token(),
		BackgroundType: c.bg.Type(),
		Phase:          c.trans.Phase(),
	}
	if slide, ok := c.nav.Current(); ok {
		f.Slide = &slide
	}
	for _, inst := range c.trans.Visible() {
		f.Visible = append(f.Visible, InstanceView{
			Slide:    inst.Slide,
			SlideID:  inst.Slide.ID,
			Phase:    inst.Phase,
			Type:     inst.Type,
			Motion:   inst.Motion(),
			Progress: inst.Progress(),
		})
	}
	return f
}

// Subscribe registers fn to receive every published frame.
func (c *Controller) Subscribe(fn func(Frame)) (cancel func()) {
	if c.closed {
		return func() {}
	}
	c.subSeq++
	id := c.subSeq
	c.subs[id] = fn
	return func() {
		if c.subs != nil {
			delete(c.subs, id)
		}
	}
}

func (c *Controller) publish() {
	if c.closed || len(c.subs) == 0 {
		return
	}
	f := c.Frame()
	for _, fn := range c.subs {
		fn(f)
	}
}

// Close unmounts the controller: the key binding is released, a pending
// settle is cancelled and every later call is a no-op.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	if c.release != nil {
		c.release()
	}
	c.bg.Close()
	c.closed = true
	c.subs = nil
	c.logger.Debug("presenter unmounted", "section", c.section.ID)
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

// publishAfter wraps a scheduler so a frame is published after each
// callback.
type publishAfter struct {
	inner Scheduler
	after func()
}

func (p publishAfter) AfterFunc(d time.Duration, fn func()) func() {
	return p.inner.AfterFunc(d, func() {
		fn()
		p.after()
	})
}
