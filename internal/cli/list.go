package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/output"
)

func newListCmd(o *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sections of the deck",
		Example: `  deck list
  deck list --deck talk.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			d, err := o.loadDeck()
			if err != nil {
				return outputError(w, err, jsonOutput)
			}

			if jsonOutput {
				resp := output.ListResponse{
					TimestampedResponse: output.NewTimestamped(),
					Deck:                d.ID,
					Title:               d.Title,
					Sections:            make([]output.SectionItem, 0, len(d.Sections)),
					Count:               len(d.Sections),
				}
				for _, sec := range d.Sections {
					item := output.SectionItem{
						ID:          sec.ID,
						Title:       sec.Title,
						Description: sec.Description,
						SlideCount:  sec.Len(),
						Slides:      make([]string, 0, sec.Len()),
					}
					for _, s := range sec.Slides {
						item.Slides = append(item.Slides, s.ID)
					}
					resp.Sections = append(resp.Sections, item)
				}
				return output.WriteJSON(w, resp)
			}

			fmt.Fprintf(w, "%s\n\n", d.Title)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSLIDES")
			for _, sec := range d.Sections {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", sec.ID, sec.Title, sec.Len())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}
