package effects

import (
	"math"
	"strings"
)

var waveGlyphs = []rune("▁▂▃▄▅▆▇█")

// WaveText colours each rune of text along a gradient that ripples with
// tick. Spaces are kept uncoloured.
func WaveText(text string, tick int, amplitude float64, colors []string) string {
	if text == "" || len(colors) == 0 {
		return text
	}
	var b strings.Builder
	for i, r := range []rune(text) {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		phase := math.Sin(float64(tick)*0.15+float64(i)*0.35) * amplitude
		b.WriteString(applyColor(string(r), Gradient(colors, (phase+1)/2)))
	}
	return b.String()
}

// WaveBand draws one row of the background wave. progress runs from 0 to 1
// while the wave sweeps across the row; from names the side it enters from
// ("left" or "right", anything else sweeps outward from the centre).
func WaveBand(width, tick int, progress float64, from string, colors []string) string {
	if width <= 0 {
		return ""
	}
	progress = clamp01(progress)
	front := int(math.Round(progress * float64(width)))

	var b strings.Builder
	for x := 0; x < width; x++ {
		if !covered(x, width, front, from) {
			b.WriteByte(' ')
			continue
		}
		h := (math.Sin(float64(tick)*0.25+float64(x)*0.3) + 1) / 2
		g := waveGlyphs[int(h*float64(len(waveGlyphs)-1))]
		b.WriteString(applyColor(string(g), Gradient(colors, float64(x)/float64(width))))
	}
	return b.String()
}

func covered(x, width, front int, from string) bool {
	switch from {
	case "left":
		return x < front
	case "right":
		return x >= width-front
	default:
		mid := width / 2
		half := front / 2
		return x >= mid-half && x < mid+half
	}
}

// ProgressDots renders the position indicator: ● for visited slides, ◉ for the
// current one and ○ for what remains. The current dot pulses with tick.
func ProgressDots(current, total, tick int) string {
	if total <= 0 {
		return ""
	}
	pulse := (math.Sin(float64(tick)*0.2) + 1) / 2
	done := parseHex("#a6e3a1")
	now := mix(parseHex("#89b4fa"), parseHex("#cba6f7"), pulse)
	todo := parseHex("#6c7086")

	dots := make([]string, 0, total)
	for i := 0; i < total; i++ {
		switch {
		case i < current:
			dots = append(dots, colorize("●", done))
		case i == current:
			dots = append(dots, colorize("◉", now))
		default:
			dots = append(dots, colorize("○", todo))
		}
	}
	return strings.Join(dots, " ")
}
