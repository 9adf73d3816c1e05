package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/shahbajlive/deck/internal/tui/theme"
)

// ConfirmStyle defines the type of confirmation prompt
type ConfirmStyle int

const (
	// StyleDefault is a neutral confirmation
	StyleDefault ConfirmStyle = iota
	// StyleDestructive is for operations that delete data
	StyleDestructive
)

// ConfirmOptions configures the confirm prompt behavior
type ConfirmOptions struct {
	Style ConfirmStyle
	// Default sets whether Y or N is the default (true = Y, false = N)
	Default bool
}

// ConfirmWriter prompts on w and reads the answer from r. Colour is used
// only when w is a terminal and NO_COLOR is unset.
func ConfirmWriter(w io.Writer, r io.Reader, prompt string, opts ConfirmOptions) bool {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
	}

	hint := "[y/N]"
	if opts.Default {
		hint = "[Y/n]"
	}
	icon := "?"
	if opts.Style == StyleDestructive {
		icon = "⚠"
	}

	if useColor {
		t := theme.Current()
		accent := t.Lavender
		if opts.Style == StyleDestructive {
			accent = t.Peach
		}
		fmt.Fprintf(w, "%s %s %s ",
			lipgloss.NewStyle().Foreground(accent).Bold(true).Render(icon),
			lipgloss.NewStyle().Foreground(t.Text).Render(prompt),
			lipgloss.NewStyle().Foreground(t.Overlay).Render(hint),
		)
	} else {
		fmt.Fprintf(w, "%s %s %s ", icon, prompt, hint)
	}

	answer, _ := bufio.NewReader(r).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" {
		return opts.Default
	}
	return answer == "y" || answer == "yes"
}

// ConfirmDestructive prompts with warning styling and defaults to N.
func ConfirmDestructive(w io.Writer, r io.Reader, prompt string) bool {
	return ConfirmWriter(w, r, prompt, ConfirmOptions{Style: StyleDestructive})
}
