package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/tui/theme"
)

func newRenderer(t *testing.T, size int) *Renderer {
	t.Helper()
	r, err := New(theme.Mocha, size)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestSlideContainsEveryBlock(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, 0)
	s := deck.Slide{
		ID:          "demo",
		Title:       "Declarative UI",
		Description: []string{"Describe **what**, not how."},
		Content: []deck.Block{
			{Type: deck.BlockText, Text: "plain paragraph"},
			{Type: deck.BlockCode, Language: "sql", Code: "SELECT name FROM users;\n"},
			{Type: deck.BlockList, Items: []string{"first item", "second item"}},
			{Type: deck.BlockImage, Src: "diagram.png", Alt: "flow diagram"},
			{Type: deck.BlockTweet, Title: "@gopher", Text: "hello", URL: "https://example.com/t/1"},
		},
	}

	out := ansi.Strip(r.Slide("sec", s, 80))
	for _, want := range []string{
		"Declarative UI", "Describe", "plain paragraph", "SELECT", "users",
		"• first item", "• second item", "flow diagram", "diagram.png",
		"@gopher", "https://example.com/t/1", "sql",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered slide missing %q:\n%s", want, out)
		}
	}
}

func TestSlideCachedPerWidth(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, 4)
	s := deck.Slide{ID: "a", Title: "A"}

	first := r.Slide("sec", s, 60)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if again := r.Slide("sec", s, 60); again != first {
		t.Error("cached render should be returned unchanged")
	}
	r.Slide("sec", s, 70)
	r.Slide("other", s, 60)
	if r.Len() != 3 {
		t.Errorf("width and section should key the cache, Len() = %d", r.Len())
	}

	r.Purge()
	if r.Len() != 0 {
		t.Errorf("Purge left %d entries", r.Len())
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, 2)
	for _, id := range []string{"a", "b", "c"} {
		r.Slide("sec", deck.Slide{ID: id, Title: id}, 40)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestListWrapsWithHangingIndent(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, 0)
	out := ansi.Strip(r.Block(deck.Block{Type: deck.BlockList, Items: []string{"aaaa bbbb cccc dddd"}}, 12))
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected a wrapped item, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "• ") {
		t.Errorf("first line should carry the bullet, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("continuation should be indented, got %q", lines[1])
	}
}

func TestNarrowWidthIsClamped(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, 0)
	out := r.Slide("sec", deck.Slide{ID: "n", Title: "Narrow"}, 5)
	if !strings.Contains(ansi.Strip(out), "Narrow") {
		t.Errorf("narrow render lost the title: %q", out)
	}
}

func TestHorizontalCodeLayout(t *testing.T) {
	t.Parallel()

	blocks := []deck.Block{
		{Type: deck.BlockCode, Title: "Code A", Language: "go", Code: "left := 1\n"},
		{Type: deck.BlockCode, Title: "Code B", Language: "go", Code: "right := 2\n"},
	}
	sideBySide := func(out string) bool {
		for _, line := range strings.Split(ansi.Strip(out), "\n") {
			if strings.Contains(line, "left := 1") && strings.Contains(line, "right := 2") {
				return true
			}
		}
		return false
	}

	tests := []struct {
		name   string
		layout deck.CodeLayout
		width  int
		want   bool
	}{
		{"horizontal wide", deck.CodeLayoutHorizontal, 100, true},
		{"horizontal too narrow stacks", deck.CodeLayoutHorizontal, 60, false},
		{"vertical", deck.CodeLayoutVertical, 100, false},
		{"default", "", 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := newRenderer(t, 0)
			out := r.Slide("sec", deck.Slide{ID: "quiz", Title: "Quiz", Content: blocks, CodeLayout: tc.layout}, tc.width)
			if got := sideBySide(out); got != tc.want {
				t.Errorf("side by side = %v, want %v:\n%s", got, tc.want, ansi.Strip(out))
			}
			plain := ansi.Strip(out)
			for _, want := range []string{"Code A", "Code B"} {
				if !strings.Contains(plain, want) {
					t.Errorf("missing code title %q", want)
				}
			}
			for _, line := range strings.Split(plain, "\n") {
				if w := ansi.StringWidth(line); w > tc.width {
					t.Errorf("line wider than %d (%d): %q", tc.width, w, line)
				}
			}
		})
	}
}
