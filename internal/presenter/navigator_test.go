package presenter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shahbajlive/deck/internal/deck"
)

func slides(n int) []deck.Slide {
	out := make([]deck.Slide, n)
	for i := range out {
		out[i] = deck.Slide{ID: fmt.Sprintf("s%d", i), Title: fmt.Sprintf("Slide %d", i)}
	}
	return out
}

func TestNavigatorStartsAtZero(t *testing.T) {
	t.Parallel()

	n := NewNavigator(slides(3))
	if n.Index() != 0 {
		t.Errorf("Index() = %d, want 0", n.Index())
	}
	if n.Total() != 3 {
		t.Errorf("Total() = %d, want 3", n.Total())
	}
	if n.Direction() != DirectionNone {
		t.Errorf("Direction() = %v, want none", n.Direction())
	}
	s, ok := n.Current()
	if !ok || s.ID != "s0" {
		t.Errorf("Current() = %v, %v; want s0", s.ID, ok)
	}
}

func TestNavigatorBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		moves     string // n = next, p = prev
		wantIndex int
		wantDir   Direction
		wantMoved bool
	}{
		{"next once", 3, "n", 1, DirectionNext, true},
		{"next to end", 3, "nn", 2, DirectionNext, true},
		{"next past end", 3, "nnn", 2, DirectionNext, false},
		{"prev at start", 3, "p", 0, DirectionPrev, false},
		{"next then prev", 3, "np", 0, DirectionPrev, true},
		{"single next", 1, "n", 0, DirectionNext, false},
		{"single prev", 1, "p", 0, DirectionPrev, false},
		{"empty next", 0, "n", 0, DirectionNext, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := NewNavigator(slides(tc.total))
			for _, m := range tc.moves {
				if m == 'n' {
					n.GoNext()
				} else {
					n.GoPrev()
				}
			}
			if n.Index() != tc.wantIndex {
				t.Errorf("Index() = %d, want %d", n.Index(), tc.wantIndex)
			}
			if n.Direction() != tc.wantDir {
				t.Errorf("Direction() = %v, want %v", n.Direction(), tc.wantDir)
			}
			if n.Moved() != tc.wantMoved {
				t.Errorf("Moved() = %v, want %v", n.Moved(), tc.wantMoved)
			}
		})
	}
}

func TestNavigatorIndexAlwaysInBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for total := 1; total <= 6; total++ {
		n := NewNavigator(slides(total))
		for i := 0; i < 500; i++ {
			if rng.Intn(2) == 0 {
				n.GoNext()
			} else {
				n.GoPrev()
			}
			if n.Index() < 0 || n.Index() > total-1 {
				t.Fatalf("total=%d step=%d: index %d out of [0,%d]", total, i, n.Index(), total-1)
			}
		}
	}
}

func TestNavigatorEmpty(t *testing.T) {
	t.Parallel()

	n := NewNavigator(nil)
	n.GoNext()
	n.GoPrev()
	if _, ok := n.Current(); ok {
		t.Error("Current() on empty section should report ok=false")
	}
	if n.Total() != 0 {
		t.Errorf("Total() = %d, want 0", n.Total())
	}
}

func TestNavigatorDoesNotMutateSlides(t *testing.T) {
	t.Parallel()

	in := slides(3)
	n := NewNavigator(in)
	n.GoNext()
	n.GoNext()
	n.GoPrev()
	for i, s := range in {
		if s.ID != fmt.Sprintf("s%d", i) {
			t.Errorf("slide %d mutated: %q", i, s.ID)
		}
	}
}

func TestDirectionStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  Direction
		name string
		side string
	}{
		{DirectionNone, "none", ""},
		{DirectionNext, "next", "right"},
		{DirectionPrev, "prev", "left"},
	}
	for _, tc := range tests {
		if tc.dir.String() != tc.name {
			t.Errorf("String() = %q, want %q", tc.dir.String(), tc.name)
		}
		if tc.dir.Side() != tc.side {
			t.Errorf("%s Side() = %q, want %q", tc.name, tc.dir.Side(), tc.side)
		}
	}
}
