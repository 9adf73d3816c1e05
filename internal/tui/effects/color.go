package effects

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type rgb struct{ r, g, b int }

func parseHex(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return rgb{}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func (c rgb) scale(f float64) rgb {
	f = clamp01(f)
	return rgb{int(math.Round(float64(c.r) * f)), int(math.Round(float64(c.g) * f)), int(math.Round(float64(c.b) * f))}
}

func mix(a, b rgb, t float64) rgb {
	t = clamp01(t)
	l := func(x, y int) int { return int(math.Round(float64(x) + (float64(y)-float64(x))*t)) }
	return rgb{l(a.r, b.r), l(a.g, b.g), l(a.b, b.b)}
}

// Blend returns the colour t of the way from a to b.
func Blend(a, b string, t float64) string {
	return mix(parseHex(a), parseHex(b), t).hex()
}

// Gradient samples a multi-stop gradient at t in [0,1].
func Gradient(stops []string, t float64) string {
	switch len(stops) {
	case 0:
		return "#ffffff"
	case 1:
		return stops[0]
	}
	t = clamp01(t) * float64(len(stops)-1)
	i := int(t)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return Blend(stops[i], stops[i+1], t-float64(i))
}

func applyColor(text, hex string) string {
	return colorize(text, parseHex(hex))
}

func colorize(text string, c rgb) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, text)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
