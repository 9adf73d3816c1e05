// Package theme provides the Catppuccin-based colour palettes used across the
// presenter UI.
package theme

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is a named colour palette.
type Theme struct {
	Name string

	Base     lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Surface2 lipgloss.Color
	Overlay  lipgloss.Color
	Text     lipgloss.Color
	Subtext  lipgloss.Color

	Blue     lipgloss.Color
	Lavender lipgloss.Color
	Mauve    lipgloss.Color
	Pink     lipgloss.Color
	Green    lipgloss.Color
	Yellow   lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color

	// Wave lists the gradient stops of the background wave.
	Wave []string
	// CodeStyle is the chroma style name for code blocks.
	CodeStyle string
	// Glamour is the glamour standard style name.
	Glamour string
}

// Mocha is the dark palette.
var Mocha = Theme{
	Name:      "mocha",
	Base:      "#1e1e2e",
	Surface0:  "#313244",
	Surface1:  "#45475a",
	Surface2:  "#585b70",
	Overlay:   "#6c7086",
	Text:      "#cdd6f4",
	Subtext:   "#a6adc8",
	Blue:      "#89b4fa",
	Lavender:  "#b4befe",
	Mauve:     "#cba6f7",
	Pink:      "#f5c2e7",
	Green:     "#a6e3a1",
	Yellow:    "#f9e2af",
	Peach:     "#fab387",
	Red:       "#f38ba8",
	Wave:      []string{"#89b4fa", "#b4befe", "#cba6f7", "#f5c2e7"},
	CodeStyle: "catppuccin-mocha",
	Glamour:   "dark",
}

// Latte is the light palette.
var Latte = Theme{
	Name:      "latte",
	Base:      "#eff1f5",
	Surface0:  "#ccd0da",
	Surface1:  "#bcc0cc",
	Surface2:  "#acb0be",
	Overlay:   "#9ca0b0",
	Text:      "#4c4f69",
	Subtext:   "#6c6f85",
	Blue:      "#1e66f5",
	Lavender:  "#7287fd",
	Mauve:     "#8839ef",
	Pink:      "#ea76cb",
	Green:     "#40a02b",
	Yellow:    "#df8e1d",
	Peach:     "#fe640b",
	Red:       "#d20f39",
	Wave:      []string{"#1e66f5", "#7287fd", "#8839ef", "#ea76cb"},
	CodeStyle: "catppuccin-latte",
	Glamour:   "light",
}

var (
	mu      sync.RWMutex
	current *Theme
)

// Current returns the active theme, detecting the terminal background on
// first use.
func Current() Theme {
	mu.RLock()
	if current != nil {
		t := *current
		mu.RUnlock()
		return t
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		t := detect()
		current = &t
	}
	return *current
}

// Set selects a theme by name: "mocha"/"dark", "latte"/"light" or "auto".
// Unknown names fall back to auto-detection.
func Set(name string) Theme {
	mu.Lock()
	defer mu.Unlock()
	var t Theme
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mocha", "dark":
		t = Mocha
	case "latte", "light":
		t = Latte
	default:
		t = detect()
	}
	current = &t
	return t
}

func detect() Theme {
	if os.Getenv("NO_COLOR") != "" {
		return Mocha
	}
	if termenv.HasDarkBackground() {
		return Mocha
	}
	return Latte
}
