package presenter

import (
	"math"
	"time"

	"github.com/shahbajlive/deck/internal/deck"
)

// Phase is the lifecycle state of a rendered slide instance.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEntering
	PhaseActive
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseActive:
		return "active"
	case PhaseExiting:
		return "exiting"
	default:
		return "idle"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Motion is the visual offset of a slide instance. X is a horizontal offset in
// percent of the content width; Scale 1 is natural size.
type Motion struct {
	Opacity float64 `json:"opacity"`
	X       float64 `json:"x"`
	Scale   float64 `json:"scale"`
}

// Settled is the resting motion of an on-screen slide.
var Settled = Motion{Opacity: 1, X: 0, Scale: 1}

// DefaultDuration applies when a slide's spec has no duration.
const DefaultDuration = 500 * time.Millisecond

// DefaultSpec is the transition used for slides that declare none.
var DefaultSpec = deck.AnimationSpec{Type: deck.AnimationFade, DurationMs: int(DefaultDuration / time.Millisecond)}

// EnterFrom returns the motion an entering slide starts from. Moving
// backwards mirrors the horizontal offset.
func EnterFrom(t deck.AnimationType, dir Direction) Motion {
	switch t {
	case deck.AnimationSlide:
		x := 100.0
		if dir == DirectionPrev {
			x = -100
		}
		return Motion{Opacity: 0, X: x, Scale: 1}
	case deck.AnimationZoom:
		return Motion{Opacity: 0, Scale: 0.8}
	default:
		return Motion{Opacity: 0, Scale: 1}
	}
}

// ExitTo returns the motion a leaving slide ends at.
func ExitTo(t deck.AnimationType, dir Direction) Motion {
	switch t {
	case deck.AnimationSlide:
		x := -100.0
		if dir == DirectionPrev {
			x = 100
		}
		return Motion{Opacity: 0, X: x, Scale: 1}
	case deck.AnimationZoom:
		return Motion{Opacity: 0, Scale: 1.2}
	default:
		return Motion{Opacity: 0, Scale: 1}
	}
}

// Instance is one keyed rendering of a slide.
type Instance struct {
	Slide    deck.Slide
	Phase    Phase
	Type     deck.AnimationType
	From     Motion
	To       Motion
	Duration time.Duration
	Elapsed  time.Duration
}

// Progress returns how far the instance is through its animation, 0..1.
func (i Instance) Progress() float64 {
	if i.Phase == PhaseActive || i.Duration <= 0 {
		return 1
	}
	p := float64(i.Elapsed) / float64(i.Duration)
	return math.Max(0, math.Min(1, p))
}

// Motion returns the eased motion at the current progress.
func (i Instance) Motion() Motion {
	if i.Phase == PhaseActive {
		return i.To
	}
	e := easeOutCubic(i.Progress())
	return Motion{
		Opacity: lerp(i.From.Opacity, i.To.Opacity, e),
		X:       lerp(i.From.X, i.To.X, e),
		Scale:   lerp(i.From.Scale, i.To.Scale, e),
	}
}

func (i Instance) done() bool {
	return i.Elapsed >= i.Duration
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Transitions drives enter/exit animations keyed by slide ID. A new key makes
// the visible slide exit; the new slide waits for the exit to finish before
// it enters, so at most two instances are ever visible.
type Transitions struct {
	fallback deck.AnimationSpec

	current *Instance // entering or active
	exiting *Instance
	pending *Instance // waits for exiting to finish
}

// NewTransitions creates an idle driver. fallback supplies the type and
// duration for slides that omit them.
func NewTransitions(fallback deck.AnimationSpec) *Transitions {
	if !fallback.Type.Valid() || fallback.Type == "" {
		fallback.Type = DefaultSpec.Type
	}
	if fallback.DurationMs <= 0 {
		fallback.DurationMs = DefaultSpec.DurationMs
	}
	return &Transitions{fallback: fallback}
}

// Key makes slide the keyed content. It returns false when slide already is
// the keyed content.
func (t *Transitions) Key(slide deck.Slide, dir Direction) bool {
	if t.pending != nil {
		if t.pending.Slide.ID == slide.ID {
			return false
		}
	} else if t.current != nil && t.current.Slide.ID == slide.ID {
		return false
	}

	enter := t.enterInstance(slide, dir)
	switch {
	case t.exiting != nil:
		t.pending = enter
	case t.current != nil:
		t.exiting = t.exitInstance(*t.current, dir)
		t.current = nil
		t.pending = enter
	default:
		t.current = enter
	}
	return true
}

// Clear drops all instances, leaving the driver idle.
func (t *Transitions) Clear() {
	t.current, t.exiting, t.pending = nil, nil, nil
}

// Advance moves the animation clock forward by dt.
func (t *Transitions) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if t.exiting != nil {
		t.exiting.Elapsed += dt
		if !t.exiting.done() {
			return
		}
		dt = t.exiting.Elapsed - t.exiting.Duration
		t.exiting = nil
		t.current, t.pending = t.pending, nil
	}
	if t.current != nil && t.current.Phase == PhaseEntering {
		t.current.Elapsed += dt
		if t.current.done() {
			t.current.Elapsed = t.current.Duration
			t.current.Phase = PhaseActive
		}
	}
}

// Finish jumps every animation to its end state.
func (t *Transitions) Finish() {
	if t.exiting != nil {
		t.exiting = nil
		t.current, t.pending = t.pending, nil
	}
	if t.current != nil {
		t.current.Elapsed = t.current.Duration
		t.current.Phase = PhaseActive
	}
}

// Phase summarises the driver: exiting while an exit is in flight, otherwise
// the phase of the current instance.
func (t *Transitions) Phase() Phase {
	switch {
	case t.exiting != nil:
		return PhaseExiting
	case t.current != nil:
		return t.current.Phase
	default:
		return PhaseIdle
	}
}

// Animating reports whether any instance is mid-animation.
func (t *Transitions) Animating() bool {
	p := t.Phase()
	return p == PhaseEntering || p == PhaseExiting
}

// Active returns the single interactive instance, or nil while the previous
// slide is still exiting.
func (t *Transitions) Active() *Instance {
	if t.current == nil {
		return nil
	}
	c := *t.current
	return &c
}

// Visible returns the instances to paint, exiting first.
func (t *Transitions) Visible() []Instance {
	out := make([]Instance, 0, 2)
	if t.exiting != nil {
		out = append(out, *t.exiting)
	}
	if t.current != nil {
		out = append(out, *t.current)
	}
	return out
}

func (t *Transitions) resolve(spec *deck.AnimationSpec) (deck.AnimationType, time.Duration) {
	typ := t.fallback.Type
	ms := t.fallback.DurationMs
	if spec != nil {
		if spec.Type != "" && spec.Type.Valid() {
			typ = spec.Type
		}
		if spec.DurationMs > 0 {
			ms = spec.DurationMs
		}
	}
	return typ, time.Duration(ms) * time.Millisecond
}

func (t *Transitions) enterInstance(slide deck.Slide, dir Direction) *Instance {
	typ, d := t.resolve(slide.In())
	return &Instance{
		Slide:    slide,
		Phase:    PhaseEntering,
		Type:     typ,
		From:     EnterFrom(typ, dir),
		To:       Settled,
		Duration: d,
	}
}

func (t *Transitions) exitInstance(leaving Instance, dir Direction) *Instance {
	typ, d := t.resolve(leaving.Slide.Out())
	return &Instance{
		Slide:    leaving.Slide,
		Phase:    PhaseExiting,
		Type:     typ,
		From:     leaving.Motion(),
		To:       ExitTo(typ, dir),
		Duration: d,
	}
}
