package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/tui/layout"
	"github.com/shahbajlive/deck/internal/tui/render"
	"github.com/shahbajlive/deck/internal/tui/theme"
)

func newRenderCmd(o *rootOptions) *cobra.Command {
	var (
		section string
		slide   int
		width   int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print slides without animation",
		Long: `Render slides to stdout the way the presenter shows them once settled.

Without --slide every slide of the section is printed.`,
		Example: `  deck render --section intro
  deck render --section intro --slide 2 --width 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.loadDeck()
			if err != nil {
				return err
			}
			sec, err := d.Section(section)
			if err != nil {
				return err
			}
			if slide < 0 || slide > sec.Len() {
				return fmt.Errorf("slide %d out of range (section %q has %d slides)", slide, sec.ID, sec.Len())
			}

			th := theme.Set(o.cfg.Theme)
			if o.cfg.Render.CodeStyle != "" {
				th.CodeStyle = o.cfg.Render.CodeStyle
			}
			r, err := render.New(th, o.cfg.Render.CacheSize)
			if err != nil {
				return err
			}

			if width <= 0 {
				width = terminalWidth(80)
			}
			cw := layout.ContentWidth(width, layout.TierForWidth(width))

			w := cmd.OutOrStdout()
			for i, s := range sec.Slides {
				if slide != 0 && i != slide-1 {
					continue
				}
				if slide == 0 && i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, r.Slide(sec.ID, s, cw))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "section to render (required)")
	cmd.Flags().IntVarP(&slide, "slide", "n", 0, "1-based slide number (default all)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "render width (default terminal width)")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}
