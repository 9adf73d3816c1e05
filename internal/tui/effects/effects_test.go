package effects

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/shahbajlive/deck/internal/presenter"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return re.ReplaceAllString(s, "")
}

func TestApplyColor(t *testing.T) {
	t.Parallel()

	got := applyColor("hello", "#ff0000")
	if !strings.HasPrefix(got, "\x1b[38;2;255;0;0m") {
		t.Errorf("applyColor should start with the truecolor prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("applyColor should end with reset, got %q", got)
	}
	if white := applyColor("x", "#fff"); !strings.Contains(white, "255;255;255") {
		t.Errorf("short hex should expand, got %q", white)
	}
	if bad := applyColor("x", "nope"); !strings.Contains(bad, "0;0;0") {
		t.Errorf("invalid hex should fall back to black, got %q", bad)
	}
}

func TestGradient(t *testing.T) {
	t.Parallel()

	stops := []string{"#000000", "#ffffff"}
	tests := []struct {
		t    float64
		want string
	}{
		{0, "#000000"},
		{0.5, "#808080"},
		{1, "#ffffff"},
		{2, "#ffffff"},
		{-1, "#000000"},
	}
	for _, tc := range tests {
		if got := Gradient(stops, tc.t); got != tc.want {
			t.Errorf("Gradient(%v) = %s, want %s", tc.t, got, tc.want)
		}
	}
	if got := Gradient([]string{"#123456"}, 0.7); got != "#123456" {
		t.Errorf("single stop gradient = %s", got)
	}
}

func TestFade(t *testing.T) {
	t.Parallel()

	full := Fade("hello", 1, "#000000", "#ffffff")
	if stripANSI(full) != "hello" {
		t.Errorf("Fade should keep the text, got %q", stripANSI(full))
	}
	if zero := Fade("hello", 0, "#000000", "#ffffff"); !strings.Contains(zero, "0;0;0m") {
		t.Errorf("Fade at opacity 0 should paint the background colour, got %q", zero)
	}
	if half := Fade("hello", 0.5, "#000000", "#ffffff"); half == full {
		t.Error("Fade at 0.5 should differ from 1.0")
	}
	styled := Fade("\x1b[1mbold\x1b[0m", 1, "#000000", "#ffffff")
	if strings.Contains(styled, "\x1b[1m") {
		t.Errorf("Fade should drop inner styling, got %q", styled)
	}
}

func TestShift(t *testing.T) {
	t.Parallel()

	content := "hello\nworld"

	right := Shift(content, 50, 20)
	for _, line := range strings.Split(right, "\n") {
		if !strings.HasPrefix(line, strings.Repeat(" ", 10)) {
			t.Errorf("50%% right shift should pad 10 cells, got %q", line)
		}
	}

	left := Shift(content, -10, 20)
	if got := strings.Split(left, "\n")[0]; got != "llo" {
		t.Errorf("10%% left shift of 20 cells should cut 2, got %q", got)
	}

	gone := Shift(content, 100, 20)
	if strings.TrimSpace(gone) != "" {
		t.Errorf("a full shift should leave the viewport empty, got %q", gone)
	}
	if Shift(content, 0, 20) != content {
		t.Error("zero shift should be the identity")
	}
}

func TestZoom(t *testing.T) {
	t.Parallel()

	content := "line1\nline2\nline3\nline4\nline5"

	small := Zoom(content, 0.3, 40, 10)
	if n := len(strings.Split(small, "\n")); n != 2 {
		t.Errorf("zoom 0.3 on 5 rows should keep 2, got %d", n)
	}
	if !strings.Contains(small, "line2") {
		t.Errorf("zoom should crop towards the centre, got %q", small)
	}

	big := Zoom(content, 1.2, 40, 100)
	if n := len(strings.Split(big, "\n")); n <= 5 {
		t.Errorf("zoom 1.2 should spread rows, got %d", n)
	}
	clipped := Zoom(content, 1.2, 40, 3)
	if n := len(strings.Split(clipped, "\n")); n != 3 {
		t.Errorf("zoom should clip to height, got %d rows", n)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	styled := "\x1b[1mtitle\x1b[0m"
	if got := Apply(styled, presenter.Settled, 80, 24, "#000000", "#ffffff"); got != styled {
		t.Errorf("settled motion should keep styling, got %q", got)
	}

	entering := Apply("title", presenter.Motion{Opacity: 0.5, X: 50, Scale: 1}, 20, 5, "#000000", "#ffffff")
	plain := stripANSI(entering)
	if !strings.HasPrefix(plain, strings.Repeat(" ", 10)+"title") {
		t.Errorf("Apply should shift then fade, got %q", plain)
	}
	if ansi.StringWidth(entering) > 20 {
		t.Errorf("Apply should stay within width, got %d cells", ansi.StringWidth(entering))
	}
}

func TestWaveText(t *testing.T) {
	t.Parallel()

	colors := []string{"#89b4fa", "#cba6f7", "#f5c2e7"}

	got := WaveText("hello world", 10, 1.0, colors)
	if stripANSI(got) != "hello world" {
		t.Errorf("WaveText should keep the text, got %q", stripANSI(got))
	}
	if got != WaveText("hello world", 10, 1.0, colors) {
		t.Error("WaveText should be deterministic for same inputs")
	}
	if got == WaveText("hello world", 20, 1.0, colors) {
		t.Error("WaveText should vary with tick")
	}
	if WaveText("abc", 0, 1, nil) != "abc" {
		t.Error("WaveText without colours should return the text")
	}
}

func TestWaveBand(t *testing.T) {
	t.Parallel()

	colors := []string{"#89b4fa", "#f5c2e7"}

	tests := []struct {
		name     string
		progress float64
		from     string
		check    func(string) bool
	}{
		{"empty at start", 0, "left", func(s string) bool { return strings.TrimSpace(s) == "" }},
		{"left half", 0.5, "left", func(s string) bool { return s[0] != ' ' && strings.HasSuffix(s, strings.Repeat(" ", 10)) }},
		{"right half", 0.5, "right", func(s string) bool { return strings.HasPrefix(s, strings.Repeat(" ", 10)) }},
		{"full", 1, "right", func(s string) bool { return !strings.Contains(s, " ") }},
		{"centre", 0.5, "", func(s string) bool { return strings.HasPrefix(s, "     ") && strings.HasSuffix(s, "     ") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := stripANSI(WaveBand(20, 3, tc.progress, tc.from, colors))
			if ansi.StringWidth(got) != 20 {
				t.Fatalf("band width = %d, want 20", ansi.StringWidth(got))
			}
			if !tc.check(got) {
				t.Errorf("unexpected band %q", got)
			}
		})
	}
}

func TestProgressDots(t *testing.T) {
	t.Parallel()

	got := stripANSI(ProgressDots(2, 5, 0))
	if strings.Count(got, "●") != 2 || strings.Count(got, "◉") != 1 || strings.Count(got, "○") != 2 {
		t.Errorf("ProgressDots(2,5) = %q", got)
	}

	first := stripANSI(ProgressDots(0, 3, 0))
	if strings.Count(first, "●") != 0 || strings.Count(first, "◉") != 1 {
		t.Errorf("ProgressDots(0,3) = %q", first)
	}
	if ProgressDots(0, 0, 0) != "" {
		t.Error("no slides should render no dots")
	}
}
