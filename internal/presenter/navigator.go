// Package presenter implements the slide presentation controller: navigation
// over a section, enter/exit transitions keyed by slide identity, and the
// background animation token with its settle delay.
package presenter

import "github.com/shahbajlive/deck/internal/deck"

// Direction is the direction of the last navigation.
type Direction int

const (
	// DirectionNone means no navigation has happened yet.
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	default:
		return "none"
	}
}

// Side is the screen edge an animation for this direction enters from.
func (d Direction) Side() string {
	switch d {
	case DirectionNext:
		return "right"
	case DirectionPrev:
		return "left"
	default:
		return ""
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Navigator tracks the current slide of one section. The index is clamped to
// [0, total-1]; it never wraps.
type Navigator struct {
	slides    []deck.Slide
	index     int
	direction Direction
	moved     bool
}

// NewNavigator starts at the first slide.
func NewNavigator(slides []deck.Slide) *Navigator {
	return &Navigator{slides: slides}
}

// GoNext advances by one slide. At the last slide the index stays put but
// the direction is still reported as next.
func (n *Navigator) GoNext() {
	prev := n.index
	if n.index < len(n.slides)-1 {
		n.index++
	}
	n.direction = DirectionNext
	n.moved = n.index != prev
}

// GoPrev retreats by one slide, reporting prev even at the first slide.
func (n *Navigator) GoPrev() {
	prev := n.index
	if n.index > 0 {
		n.index--
	}
	n.direction = DirectionPrev
	n.moved = n.index != prev
}

// Current returns the slide at the current index. ok is false for an empty
// section.
func (n *Navigator) Current() (slide deck.Slide, ok bool) {
	if len(n.slides) == 0 {
		return deck.Slide{}, false
	}
	return n.slides[n.index], true
}

// Index returns the current index.
func (n *Navigator) Index() int { return n.index }

// Total returns the number of slides.
func (n *Navigator) Total() int { return len(n.slides) }

// Direction returns the direction of the last navigation.
func (n *Navigator) Direction() Direction { return n.direction }

// Moved reports whether the last navigation changed the index.
func (n *Navigator) Moved() bool { return n.moved }
