// Package cli implements the deck command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/config"
	"github.com/shahbajlive/deck/internal/deck"
)

// Build information, set with -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type rootOptions struct {
	configPath string
	deckPath   string
	theme      string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:   "deck",
		Short: "Present slide decks in the terminal",
		Long: `deck presents YAML slide decks in the terminal with slide transitions,
background animations, a remote clicker and rehearsal timing.

Without --deck the built-in lecture on declarative and imperative
programming is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.closeLog != nil {
				return o.closeLog()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/deck/config.toml)")
	root.PersistentFlags().StringVarP(&o.deckPath, "deck", "d", "", "deck YAML file (overrides config)")
	root.PersistentFlags().StringVar(&o.theme, "theme", "", "colour theme: auto, mocha or latte")

	root.AddCommand(newPresentCmd(o))
	root.AddCommand(newListCmd(o))
	root.AddCommand(newRenderCmd(o))
	root.AddCommand(newValidateCmd(o))
	root.AddCommand(newStatsCmd(o))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func (o *rootOptions) load() error {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	if o.deckPath != "" {
		cfg.Deck = o.deckPath
	}
	if o.theme != "" {
		cfg.Theme = o.theme
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	o.cfg = cfg

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	o.logger = logger
	o.closeLog = closeLog
	slog.SetDefault(logger)
	return nil
}

func (o *rootOptions) loadDeck() (*deck.Deck, error) {
	return deck.Load(o.cfg.Deck)
}

// newLogger writes to the configured log file. The terminal belongs to the
// presenter, so with no file configured logs are discarded.
func newLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}
