// Package deck holds slide decks: the ordered, immutable slide sequences that
// the presenter navigates through.
package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateSlideID is returned when two slides in one section share an ID.
	ErrDuplicateSlideID = errors.New("deck: duplicate slide id")
	// ErrUnknownSection is returned when a section lookup misses.
	ErrUnknownSection = errors.New("deck: unknown section")
	// ErrUnknownAnimation is returned for animation types the presenter cannot play.
	ErrUnknownAnimation = errors.New("deck: unknown animation type")
	// ErrMissingSectionID is returned for a section without an id.
	ErrMissingSectionID = errors.New("deck: section without id")
)

// AnimationType names a slide transition effect.
type AnimationType string

const (
	AnimationFade  AnimationType = "fade"
	AnimationSlide AnimationType = "slide"
	AnimationZoom  AnimationType = "zoom"
)

// Valid reports whether the type is one the presenter knows how to play.
// The empty type is valid and means "use the default".
func (t AnimationType) Valid() bool {
	switch t {
	case "", AnimationFade, AnimationSlide, AnimationZoom:
		return true
	default:
		return false
	}
}

// AnimationSpec describes one half (in or out) of a slide transition.
type AnimationSpec struct {
	Type       AnimationType `yaml:"type" json:"type"`
	DurationMs int           `yaml:"durationMs,omitempty" json:"durationMs,omitempty"`
}

// SlideAnimations holds the optional enter and exit specs of a slide.
type SlideAnimations struct {
	In  *AnimationSpec `yaml:"in,omitempty" json:"in,omitempty"`
	Out *AnimationSpec `yaml:"out,omitempty" json:"out,omitempty"`
}

// BackgroundAnimation marks a slide as playing a background effect when
// navigated onto.
type BackgroundAnimation struct {
	Type string `yaml:"type" json:"type"`
}

// BlockType identifies a content block kind.
type BlockType string

const (
	BlockText  BlockType = "text"
	BlockCode  BlockType = "code"
	BlockImage BlockType = "image"
	BlockList  BlockType = "list"
	BlockTweet BlockType = "tweet"
)

// CodeLayout arranges a slide's code blocks.
type CodeLayout string

const (
	// CodeLayoutVertical stacks code blocks. It is the default.
	CodeLayoutVertical CodeLayout = "vertical"
	// CodeLayoutHorizontal puts adjacent code blocks side by side, e.g. to
	// compare two versions of the same program.
	CodeLayoutHorizontal CodeLayout = "horizontal"
)

// Valid reports whether l is a known layout. Empty means vertical.
func (l CodeLayout) Valid() bool {
	return l == "" || l == CodeLayoutVertical || l == CodeLayoutHorizontal
}

// Block is a structured piece of slide content. The presenter treats it as
// opaque; only the renderer interprets it.
type Block struct {
	Type     BlockType `yaml:"type" json:"type"`
	Text     string    `yaml:"text,omitempty" json:"text,omitempty"`
	Language string    `yaml:"language,omitempty" json:"language,omitempty"`
	Code     string    `yaml:"code,omitempty" json:"code,omitempty"`
	Src      string    `yaml:"src,omitempty" json:"src,omitempty"`
	Alt      string    `yaml:"alt,omitempty" json:"alt,omitempty"`
	Title    string    `yaml:"title,omitempty" json:"title,omitempty"`
	Items    []string  `yaml:"items,omitempty" json:"items,omitempty"`
	URL      string    `yaml:"url,omitempty" json:"url,omitempty"`
}

// Slide is one content unit; the atomic unit of navigation.
type Slide struct {
	ID                  string               `yaml:"id" json:"id"`
	Title               string               `yaml:"title" json:"title"`
	Description         []string             `yaml:"description,omitempty" json:"description,omitempty"`
	Content             []Block              `yaml:"content,omitempty" json:"content,omitempty"`
	CodeLayout          CodeLayout           `yaml:"codeLayout,omitempty" json:"codeLayout,omitempty"`
	SlideAnimations     *SlideAnimations     `yaml:"slideAnimations,omitempty" json:"slideAnimations,omitempty"`
	BackgroundAnimation *BackgroundAnimation `yaml:"backgroundAnimation,omitempty" json:"backgroundAnimation,omitempty"`
}

// In returns the slide's enter spec, or nil.
func (s Slide) In() *AnimationSpec {
	if s.SlideAnimations == nil {
		return nil
	}
	return s.SlideAnimations.In
}

// Out returns the slide's exit spec, or nil.
func (s Slide) Out() *AnimationSpec {
	if s.SlideAnimations == nil {
		return nil
	}
	return s.SlideAnimations.Out
}

// HasBackground reports whether the slide declares a background animation.
func (s Slide) HasBackground() bool {
	return s.BackgroundAnimation != nil && s.BackgroundAnimation.Type != ""
}

// Section is an ordered sequence of slides. Order defines navigation order.
type Section struct {
	ID          string  `yaml:"id" json:"id"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Slides      []Slide `yaml:"slides" json:"slides"`
}

// Len returns the number of slides.
func (s Section) Len() int { return len(s.Slides) }

// Deck is a titled collection of sections.
type Deck struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Sections    []Section `yaml:"sections" json:"sections"`
}

// Section looks up a section by ID.
func (d *Deck) Section(id string) (Section, error) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
}

// SlideCount returns the total number of slides across sections.
func (d *Deck) SlideCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Slides)
	}
	return n
}

// check enforces the invariants the presenter relies on: slide IDs unique per
// section and animation types it can play.
func (d *Deck) check() error {
	var errs []error
	sections := make(map[string]bool, len(d.Sections))
	for i, sec := range d.Sections {
		if strings.TrimSpace(sec.ID) == "" {
			errs = append(errs, fmt.Errorf("%w: section %d", ErrMissingSectionID, i+1))
		}
		if sections[sec.ID] {
			errs = append(errs, fmt.Errorf("deck: duplicate section id %q", sec.ID))
		}
		sections[sec.ID] = true

		seen := make(map[string]bool, len(sec.Slides))
		for _, sl := range sec.Slides {
			if seen[sl.ID] {
				errs = append(errs, fmt.Errorf("%w: %q in section %q", ErrDuplicateSlideID, sl.ID, sec.ID))
			}
			seen[sl.ID] = true
			if !sl.CodeLayout.Valid() {
				errs = append(errs, fmt.Errorf("deck: unknown code layout %q on slide %q", sl.CodeLayout, sl.ID))
			}
			for _, spec := range []*AnimationSpec{sl.In(), sl.Out()} {
				if spec != nil && !spec.Type.Valid() {
					errs = append(errs, fmt.Errorf("%w: %q on slide %q", ErrUnknownAnimation, spec.Type, sl.ID))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Warning is a non-fatal problem found by Validate.
type Warning struct {
	Section string `json:"section"`
	Slide   string `json:"slide,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Slide == "" {
		return fmt.Sprintf("%s: %s", w.Section, w.Message)
	}
	return fmt.Sprintf("%s/%s: %s", w.Section, w.Slide, w.Message)
}

// Validate returns warnings for content that loads but will present poorly.
func (d *Deck) Validate() []Warning {
	var out []Warning
	for _, sec := range d.Sections {
		if len(sec.Slides) == 0 {
			out = append(out, Warning{Section: sec.ID, Message: "section has no slides"})
		}
		if strings.TrimSpace(sec.Title) == "" {
			out = append(out, Warning{Section: sec.ID, Message: "section has no title"})
		}
		for _, sl := range sec.Slides {
			if strings.TrimSpace(sl.ID) == "" {
				out = append(out, Warning{Section: sec.ID, Message: "slide without id"})
			}
			if strings.TrimSpace(sl.Title) == "" {
				out = append(out, Warning{Section: sec.ID, Slide: sl.ID, Message: "slide has no title"})
			}
			for _, spec := range []*AnimationSpec{sl.In(), sl.Out()} {
				if spec != nil && spec.DurationMs < 0 {
					out = append(out, Warning{Section: sec.ID, Slide: sl.ID, Message: "negative animation duration"})
				}
			}
		}
	}
	return out
}
