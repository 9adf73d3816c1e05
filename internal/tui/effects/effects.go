// Package effects paints slide transitions and the background wave onto
// rendered terminal text.
package effects

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/shahbajlive/deck/internal/presenter"
)

// Apply renders content at motion m inside a width x height viewport. The
// settled motion returns content untouched so styled output survives once a
// transition ends. bg and fg are the hex colours opacity blends between.
func Apply(content string, m presenter.Motion, width, height int, bg, fg string) string {
	if m == presenter.Settled {
		return content
	}
	out := content
	if m.Scale != 1 {
		out = Zoom(out, m.Scale, width, height)
	}
	if m.X != 0 {
		out = Shift(out, m.X, width)
	}
	if m.Opacity < 1 {
		out = Fade(out, m.Opacity, bg, fg)
	}
	return out
}

// Fade repaints content in a single colour opacity of the way from bg to fg.
// Inner styling is dropped while the fade runs.
func Fade(content string, opacity float64, bg, fg string) string {
	c := mix(parseHex(bg), parseHex(fg), opacity)
	lines := strings.Split(ansi.Strip(content), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = colorize(l, c)
		}
	}
	return strings.Join(lines, "\n")
}

// Shift moves content horizontally by x percent of width. Positive values
// push it right, negative values pull it left; cells leaving the viewport
// are cut.
func Shift(content string, x float64, width int) string {
	if width <= 0 {
		return content
	}
	off := int(math.Round(x / 100 * float64(width)))
	if off == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		switch {
		case off >= width || -off >= width:
			lines[i] = ""
		case off > 0:
			lines[i] = ansi.Truncate(strings.Repeat(" ", off)+l, width, "")
		default:
			lines[i] = ansi.TruncateLeft(l, -off, "")
		}
	}
	return strings.Join(lines, "\n")
}

// Zoom approximates scaling in a character grid. Below 1 the block is
// cropped towards its centre; above 1 blank rows are spread between lines
// and the block is clipped to height.
func Zoom(content string, scale float64, width, height int) string {
	if scale <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if scale < 1 {
		keep := int(math.Ceil(float64(len(lines)) * scale))
		if keep < 1 {
			keep = 1
		}
		start := (len(lines) - keep) / 2
		lines = lines[start : start+keep]
		cols := int(math.Ceil(float64(width) * scale))
		if cols > 0 && width > 0 {
			trim := (width - cols) / 2
			for i, l := range lines {
				lw := ansi.StringWidth(l)
				if lw <= cols {
					continue
				}
				lines[i] = ansi.Cut(l, trim, trim+cols)
			}
		}
		return strings.Join(lines, "\n")
	}

	gap := int(math.Round((scale - 1) * 5))
	if gap == 0 {
		return content
	}
	var out []string
	for i, l := range lines {
		out = append(out, l)
		if i < len(lines)-1 {
			for j := 0; j < gap; j++ {
				out = append(out, "")
			}
		}
	}
	if height > 0 && len(out) > height {
		start := (len(out) - height) / 2
		out = out[start : start+height]
	}
	return strings.Join(out, "\n")
}
