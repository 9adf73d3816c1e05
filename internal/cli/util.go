package cli

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/shahbajlive/deck/internal/output"
)

// isInteractive returns true when both stdin and stdout are TTYs. Animations
// are skipped otherwise, e.g. when the output is piped or recorded.
func isInteractive() bool {
	return (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// terminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// errReported signals that the error was already written as JSON.
var errReported = errors.New("error reported")

func outputError(w io.Writer, err error, jsonOutput bool) error {
	if !jsonOutput {
		return err
	}
	resp := output.NewError(err.Error())
	if encErr := output.WriteJSON(w, resp); encErr != nil {
		return errors.Join(encErr, err)
	}
	return errReported
}
