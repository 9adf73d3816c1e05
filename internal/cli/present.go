package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/presenter"
	"github.com/shahbajlive/deck/internal/rehearsal"
	"github.com/shahbajlive/deck/internal/remote"
	"github.com/shahbajlive/deck/internal/tui/present"
	"github.com/shahbajlive/deck/internal/tui/render"
	"github.com/shahbajlive/deck/internal/tui/theme"
	"github.com/shahbajlive/deck/internal/watcher"
)

type presentOptions struct {
	section    string
	skip       bool
	remoteAddr string
	watch      bool
	rehearse   bool
}

func newPresentCmd(o *rootOptions) *cobra.Command {
	var opts presentOptions

	cmd := &cobra.Command{
		Use:   "present",
		Short: "Start the presentation",
		Long: `Start the interactive presentation.

Pick a section from the list, then use ← and → (or click ◀ ▶) to move
between slides. q returns to the section list, ctrl+c quits.

Examples:
  deck present                          # Built-in deck, section picker
  deck present --deck talk.yaml --watch # Reload talk.yaml on save
  deck present --section summary        # Jump straight into a section
  deck present --remote :7788           # Accept presses from a phone`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(cmd.Context(), o, opts)
		},
	}

	cmd.Flags().StringVar(&opts.section, "section", "", "mount this section instead of showing the picker")
	cmd.Flags().BoolVar(&opts.skip, "skip-animations", false, "finish every transition immediately")
	cmd.Flags().StringVar(&opts.remoteAddr, "remote", "", "serve the remote clicker on this address")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the deck file when it changes")
	cmd.Flags().BoolVar(&opts.rehearse, "rehearse", false, "record slide timings (see deck stats)")

	return cmd
}

func runPresent(ctx context.Context, o *rootOptions, opts presentOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := o.cfg
	logger := o.logger

	d, err := o.loadDeck()
	if err != nil {
		return err
	}
	if opts.section != "" {
		if _, err := d.Section(opts.section); err != nil {
			return err
		}
	}
	if opts.watch && cfg.Deck == "" {
		return errors.New("--watch needs a deck file (--deck)")
	}

	th := theme.Set(cfg.Theme)
	if cfg.Render.CodeStyle != "" {
		th.CodeStyle = cfg.Render.CodeStyle
	}
	renderer, err := render.New(th, cfg.Render.CacheSize)
	if err != nil {
		return err
	}

	modelOpts := []present.Option{
		present.WithTheme(th),
		present.WithRenderer(renderer),
		present.WithLogger(logger),
		present.WithFrameInterval(cfg.FrameInterval()),
		present.WithSettleDelay(cfg.SettleDelay()),
		present.WithDefaultTransition(cfg.DefaultTransition()),
	}
	if opts.skip || cfg.Animation.Skip || !isInteractive() {
		modelOpts = append(modelOpts, present.WithSkipAnimations())
	}
	if opts.section != "" {
		modelOpts = append(modelOpts, present.WithStartSection(opts.section))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The program is created last; callbacks below only run once it exists.
	var p *tea.Program
	send := func(msg tea.Msg) { p.Send(msg) }
	modelOpts = append(modelOpts, present.WithScheduler(present.NewScheduler(send)))

	addr := opts.remoteAddr
	if addr == "" && cfg.Remote.Enabled {
		addr = cfg.Remote.Addr
	}
	var srv *remote.Server
	if addr != "" {
		srv = remote.NewServer(func(c remote.Command) {
			send(present.PressMsg{Direction: commandDirection(c)})
		}, remote.WithLogger(logger))
		modelOpts = append(modelOpts, present.WithObserver(srv.Publish))
	}

	if opts.rehearse || cfg.Rehearsal.Enabled {
		store, err := rehearsal.Open(cfg.Rehearsal.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		tracker := rehearsal.NewTracker(store, d.ID, nil, func(err error) {
			logger.Warn("rehearsal record failed", "error", err)
		})
		defer tracker.Close()
		modelOpts = append(modelOpts, present.WithObserver(tracker.Frame))
	}

	m := present.New(d, modelOpts...)
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if srv != nil {
		go func() {
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				logger.Error("remote server stopped", "addr", addr, "error", err)
			}
		}()
	}
	if opts.watch {
		w, err := watcher.WatchDeck(cfg.Deck, func(nd *deck.Deck, err error) {
			send(present.ReloadMsg{Deck: nd, Err: err})
		}, watcher.WithLogger(logger))
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("presenter: %w", err)
	}
	return nil
}

func commandDirection(c remote.Command) presenter.Direction {
	switch c {
	case remote.CommandNext:
		return presenter.DirectionNext
	case remote.CommandPrev:
		return presenter.DirectionPrev
	}
	return presenter.DirectionNone
}
