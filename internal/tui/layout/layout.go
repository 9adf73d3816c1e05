// Package layout holds width tiers and text-fitting helpers shared by the
// presenter views.
package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Width thresholds at which the presenter shows more chrome: the side
// outline at split width, extra key hints at wide, the full hint bar at ultra.
const (
	SplitViewThreshold     = 110
	WideViewThreshold      = 140
	UltraWideViewThreshold = 180
)

// Tier describes the current width bucket.
type Tier int

const (
	TierNarrow Tier = iota
	TierSplit
	TierWide
	TierUltra
)

// TierForWidth maps a terminal width to a tier.
func TierForWidth(width int) Tier {
	switch {
	case width >= UltraWideViewThreshold:
		return TierUltra
	case width >= WideViewThreshold:
		return TierWide
	case width >= SplitViewThreshold:
		return TierSplit
	default:
		return TierNarrow
	}
}

// Maximum slide body widths per tier. Long Japanese lines read poorly when
// stretched across a wide terminal.
const (
	maxContentNarrow = 90
	maxContentWide   = 120
	maxContentUltra  = 140
)

// ContentWidth caps the usable slide width for the tier.
func ContentWidth(width int, tier Tier) int {
	limit := maxContentNarrow
	switch tier {
	case TierWide:
		limit = maxContentWide
	case TierUltra:
		limit = maxContentUltra
	}
	if width < limit {
		return width
	}
	return limit
}

// Truncate trims s to max display cells, appending tail when it cuts.
// Double-width glyphs are never split.
func Truncate(s string, max int, tail string) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if runewidth.StringWidth(tail) > max {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, tail)
}

// Center pads s on the left so that it sits in the middle of width cells.
// ANSI sequences do not count towards the width.
func Center(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// CenterBlock centres every line of a multi-line block as one unit, keeping
// the lines' relative alignment.
func CenterBlock(block string, width int) string {
	lines := strings.Split(block, "\n")
	widest := 0
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > widest {
			widest = w
		}
	}
	if widest >= width {
		return block
	}
	pad := strings.Repeat(" ", (width-widest)/2)
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
