// Package render turns deck slides into styled terminal text.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/tui/theme"
)

// DefaultCacheSize is the number of rendered slides kept in memory.
const DefaultCacheSize = 128

// MinCodeColumn is the narrowest a side-by-side code column may get. Below
// it, horizontal code layouts are stacked.
const MinCodeColumn = 36

const codeGap = 2

// Renderer renders slide bodies. Results are cached per slide and width;
// glamour renderers are reused per wrap width.
type Renderer struct {
	mu    sync.Mutex
	theme theme.Theme
	cache *lru.Cache[string, string]
	md    map[int]*glamour.TermRenderer
}

// New creates a renderer for th. A non-positive size selects
// DefaultCacheSize.
func New(th theme.Theme, size int) (*Renderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("render cache: %w", err)
	}
	return &Renderer{
		theme: th,
		cache: cache,
		md:    make(map[int]*glamour.TermRenderer),
	}, nil
}

// Theme returns the palette the renderer paints with.
func (r *Renderer) Theme() theme.Theme { return r.theme }

// Slide renders s at width cells. sectionID scopes the cache key since slide
// ids are only unique inside a section.
func (r *Renderer) Slide(sectionID string, s deck.Slide, width int) string {
	if width < 20 {
		width = 20
	}
	key := fmt.Sprintf("%s/%s/%s@%d", r.theme.Name, sectionID, s.ID, width)
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	parts := []string{r.title(s.Title, width)}
	if len(s.Description) > 0 {
		parts = append(parts, r.markdown(strings.Join(s.Description, "\n\n"), width))
	}
	parts = append(parts, r.content(s, width)...)
	out := strings.Join(parts, "\n\n")
	r.cache.Add(key, out)
	return out
}

// Len reports how many rendered slides are cached.
func (r *Renderer) Len() int { return r.cache.Len() }

// Purge drops every cached slide, e.g. after the deck file changed.
func (r *Renderer) Purge() { r.cache.Purge() }

func (r *Renderer) title(text string, width int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(r.theme.Mauve).
		Width(width).
		Render(text)
}

// Block renders a single content block.
func (r *Renderer) Block(b deck.Block, width int) string {
	switch b.Type {
	case deck.BlockText:
		return wordwrap.String(b.Text, width)
	case deck.BlockCode:
		return r.code(b, width)
	case deck.BlockList:
		return r.list(b.Items, width)
	case deck.BlockImage:
		return r.image(b, width)
	case deck.BlockTweet:
		return r.tweet(b, width)
	default:
		return wordwrap.String(b.Text, width)
	}
}

func (r *Renderer) markdown(src string, width int) string {
	r.mu.Lock()
	tr, ok := r.md[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.theme.Glamour),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			r.mu.Unlock()
			return wordwrap.String(src, width)
		}
		r.md[width] = tr
	}
	out, err := tr.Render(src)
	r.mu.Unlock()
	if err != nil {
		return wordwrap.String(src, width)
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) content(s deck.Slide, width int) []string {
	var parts []string
	for i := 0; i < len(s.Content); {
		if s.CodeLayout == deck.CodeLayoutHorizontal && s.Content[i].Type == deck.BlockCode {
			j := i
			for j < len(s.Content) && s.Content[j].Type == deck.BlockCode {
				j++
			}
			parts = append(parts, r.codeRow(s.Content[i:j], width))
			i = j
			continue
		}
		if out := r.Block(s.Content[i], width); out != "" {
			parts = append(parts, out)
		}
		i++
	}
	return parts
}

// codeRow puts blocks side by side in equal columns, or stacks them when a
// column would be narrower than MinCodeColumn.
func (r *Renderer) codeRow(blocks []deck.Block, width int) string {
	n := len(blocks)
	col := (width - codeGap*(n-1)) / n
	if n < 2 || col < MinCodeColumn {
		out := make([]string, 0, n)
		for _, b := range blocks {
			out = append(out, r.code(b, width))
		}
		return strings.Join(out, "\n\n")
	}

	gap := strings.Repeat(" ", codeGap)
	cols := make([]string, 0, 2*n-1)
	for i, b := range blocks {
		if i > 0 {
			cols = append(cols, gap)
		}
		// Width excludes the border.
		cols = append(cols, r.codeStyle().Width(col-2).Render(r.codeBody(b)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (r *Renderer) code(b deck.Block, width int) string {
	return r.codeStyle().MaxWidth(width).Render(r.codeBody(b))
}

func (r *Renderer) codeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.theme.Surface2).
		Padding(0, 1)
}

func (r *Renderer) codeBody(b deck.Block) string {
	var sb strings.Builder
	src := strings.TrimRight(b.Code, "\n")
	if err := quick.Highlight(&sb, src, b.Language, "terminal16m", r.theme.CodeStyle); err != nil {
		sb.Reset()
		sb.WriteString(src)
	}
	body := strings.TrimRight(sb.String(), "\n")

	var label []string
	if b.Title != "" {
		label = append(label, lipgloss.NewStyle().Bold(true).Foreground(r.theme.Text).Render(b.Title))
	}
	if b.Language != "" {
		label = append(label, lipgloss.NewStyle().Foreground(r.theme.Overlay).Render(b.Language))
	}
	if len(label) > 0 {
		body = strings.Join(label, " ") + "\n" + body
	}
	return body
}

func (r *Renderer) list(items []string, width int) string {
	bullet := lipgloss.NewStyle().Foreground(r.theme.Blue).Render("•")
	lines := make([]string, 0, len(items))
	for _, it := range items {
		wrapped := wordwrap.String(it, width-2)
		first, rest, _ := strings.Cut(wrapped, "\n")
		line := bullet + " " + first
		if rest != "" {
			line += "\n" + indent.String(rest, 2)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) image(b deck.Block, width int) string {
	label := b.Alt
	if label == "" {
		label = b.Src
	}
	body := "画像: " + label
	if b.Alt != "" && b.Src != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(r.theme.Overlay).Render(b.Src)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(r.theme.Surface1).
		Padding(0, 1).
		MaxWidth(width).
		Render(body)
}

func (r *Renderer) tweet(b deck.Block, width int) string {
	var parts []string
	if b.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(r.theme.Blue).Render(b.Title))
	}
	if b.Text != "" {
		parts = append(parts, wordwrap.String(b.Text, width-4))
	}
	if b.URL != "" {
		parts = append(parts, lipgloss.NewStyle().Underline(true).Foreground(r.theme.Lavender).Render(b.URL))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(r.theme.Blue).
		PaddingLeft(1).
		Render(strings.Join(parts, "\n"))
}
