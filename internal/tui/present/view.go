package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/presenter"
	"github.com/shahbajlive/deck/internal/tui/effects"
	"github.com/shahbajlive/deck/internal/tui/layout"
)

// EmptyText is shown for a section without slides.
const EmptyText = "スライドがありません"

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenPresent && m.ctrl != nil {
		return m.presentView()
	}
	return m.pickerView()
}

func (m *Model) effectiveWidth() int {
	return layout.ContentWidth(m.width, layout.TierForWidth(m.width))
}

func (m *Model) pickerView() string {
	t := m.theme
	cw := m.effectiveWidth()
	var b strings.Builder

	b.WriteString(effects.WaveText(m.deck.Title, m.animTick, 1, t.Wave))
	b.WriteString("\n")
	if m.deck.Description != "" {
		desc := lipgloss.NewStyle().Foreground(t.Subtext).Width(cw).Render(m.deck.Description)
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, sec := range m.deck.Sections {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(t.Text)
		if i == m.cursor {
			cursor = lipgloss.NewStyle().Foreground(t.Mauve).Render("▸ ")
			style = style.Bold(true).Foreground(t.Lavender)
		}
		count := lipgloss.NewStyle().Foreground(t.Overlay).Render(fmt.Sprintf(" (%d)", sec.Len()))
		title := layout.Truncate(sec.Title, cw-8, "…")
		b.WriteString(cursor + style.Render(title) + count + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Red).Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(pickerKeys(m.keys)))

	return layout.CenterBlock(b.String(), m.width)
}

func (m *Model) presentView() string {
	t := m.theme
	f := m.ctrl.Frame()
	cw := m.effectiveWidth()

	header := m.header(f, cw)

	var footer []string
	if m.status != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(t.Red).Render(layout.Truncate(m.status, m.width, "…")))
	}
	if m.showHelp {
		footer = append(footer, m.help.View(slideKeys(m.keys)))
	}
	footer = append(footer, m.waveLine(f), m.navBar(f))
	footerText := strings.Join(footer, "\n")

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footerText) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := m.body(f, cw, bodyHeight)

	return header + "\n\n" + body + "\n" + footerText
}

func (m *Model) header(f presenter.Frame, cw int) string {
	t := m.theme
	sec := m.ctrl.Section()
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Blue).Render(layout.Truncate(sec.Title, cw/2, "…"))
	dots := effects.ProgressDots(f.Index, f.Total, m.animTick)
	gap := m.width - ansi.StringWidth(title) - ansi.StringWidth(dots) - 2
	if gap < 1 {
		return " " + title
	}
	return " " + title + strings.Repeat(" ", gap) + dots + " "
}

func (m *Model) body(f presenter.Frame, cw, height int) string {
	var content string
	switch {
	case f.Empty():
		content = lipgloss.NewStyle().Foreground(m.theme.Overlay).Render(EmptyText)
	case len(f.Visible) > 0:
		inst := f.Visible[0]
		rendered := m.renderSlide(inst.Slide, cw)
		content = effects.Apply(rendered, inst.Motion, cw, height, string(m.theme.Base), string(m.theme.Text))
	default:
		content = m.renderSlide(*f.Slide, cw)
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	block := layout.CenterBlock(strings.Join(lines, "\n"), m.width)
	if pad := height - len(lines); pad > 0 {
		block += strings.Repeat("\n", pad)
	}
	return block
}

func (m *Model) renderSlide(s deck.Slide, cw int) string {
	if m.renderer == nil {
		return s.Title
	}
	return m.renderer.Slide(m.ctrl.Section().ID, s, cw)
}

// waveLine draws the background wave while a token is armed. It sweeps in
// from the side the navigation came from and holds until the token clears.
func (m *Model) waveLine(f presenter.Frame) string {
	if f.Background.IsZero() {
		return ""
	}
	progress := float64(m.wave.elapsed) / float64(WaveDuration)
	return effects.WaveBand(m.width, m.animTick, progress, f.Direction.Side(), m.theme.Wave)
}

func (m *Model) navBar(f presenter.Frame) string {
	t := m.theme
	active := lipgloss.NewStyle().Bold(true).Foreground(t.Blue)
	inactive := lipgloss.NewStyle().Foreground(t.Surface2)

	prev, next := active, active
	if f.Index == 0 {
		prev = inactive
	}
	if f.Total == 0 || f.Index >= f.Total-1 {
		next = inactive
	}
	left := " " + prev.Render("◀") + " "
	right := " " + next.Render("▶") + " "

	pos := fmt.Sprintf("%d/%d", f.Index+1, f.Total)
	if f.Total == 0 {
		pos = "0/0"
	}
	hint := lipgloss.NewStyle().Foreground(t.Overlay)
	mid := pos
	switch layout.TierForWidth(m.width) {
	case layout.TierNarrow:
		mid += hint.Render("  ←/→ navigate")
	default:
		mid += hint.Render("  ←/→ navigate · q sections · ? help")
	}

	inner := m.width - 2*navButtonWidth
	if inner < ansi.StringWidth(mid) {
		mid = pos
	}
	if inner < 0 {
		inner = 0
	}
	return left + lipgloss.PlaceHorizontal(inner, lipgloss.Center, mid) + right
}
