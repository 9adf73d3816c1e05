package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/output"
	"github.com/shahbajlive/deck/internal/rehearsal"
)

func newStatsCmd(o *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		clearAll   bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rehearsal timings per slide",
		Long: `Show how long each slide stayed on screen across rehearsals.

Record timings with 'deck present --rehearse'. --clear deletes every
recorded session for the deck.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ctx := cmd.Context()

			d, err := o.loadDeck()
			if err != nil {
				return outputError(w, err, jsonOutput)
			}
			store, err := rehearsal.Open(o.cfg.Rehearsal.DBPath)
			if err != nil {
				return outputError(w, err, jsonOutput)
			}
			defer store.Close()

			if clearAll {
				if !yes && !output.ConfirmDestructive(w, cmd.InOrStdin(), fmt.Sprintf("Delete all rehearsal sessions for %q?", d.ID)) {
					fmt.Fprintln(w, "Aborted.")
					return nil
				}
				n, err := store.Clear(ctx, d.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Deleted %d sessions.\n", n)
				return nil
			}

			resp := output.StatsResponse{
				TimestampedResponse: output.NewTimestamped(),
				Deck:                d.ID,
				Sections:            []output.SectionTimings{},
			}
			for _, sec := range d.Sections {
				stats, err := store.Summary(ctx, d.ID, sec.ID)
				if err != nil {
					return outputError(w, err, jsonOutput)
				}
				if len(stats) == 0 {
					continue
				}
				st := output.SectionTimings{Section: sec.ID, Slides: make([]output.SlideTiming, 0, len(stats))}
				for _, s := range stats {
					st.TotalMs += s.Average.Milliseconds()
					st.Slides = append(st.Slides, output.SlideTiming{
						Slide:     s.SlideID,
						Index:     s.Index,
						Views:     s.Views,
						AverageMs: s.Average.Milliseconds(),
						LongestMs: s.Longest.Milliseconds(),
					})
				}
				resp.Sections = append(resp.Sections, st)
			}

			if jsonOutput {
				return output.WriteJSON(w, resp)
			}
			if len(resp.Sections) == 0 {
				fmt.Fprintln(w, "No rehearsals recorded. Run 'deck present --rehearse' first.")
				return nil
			}
			for i, st := range resp.Sections {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s (≈ %s per run)\n", st.Section, formatMs(st.TotalMs))
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tSLIDE\tVIEWS\tAVG\tLONGEST")
				for _, s := range st.Slides {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", s.Index+1, s.Slide, s.Views, formatMs(s.AverageMs), formatMs(s.LongestMs))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete recorded sessions for this deck")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func formatMs(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(100 * time.Millisecond).String()
}
