package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/deck"
	"github.com/shahbajlive/deck/internal/output"
)

func newValidateCmd(o *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a deck file for errors and warnings",
		Long: `Load a deck and report problems.

Errors (duplicate slide ids, unknown animation types, bad YAML) make the
command fail. Warnings describe content that loads but presents poorly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			path := o.cfg.Deck
			if len(args) == 1 {
				path = args[0]
			}

			d, err := deck.Load(path)
			if err != nil {
				if jsonOutput {
					resp := output.ValidateResponse{
						TimestampedResponse: output.NewTimestamped(),
						Error:               err.Error(),
						Warnings:            []output.WarningItem{},
					}
					if encErr := output.WriteJSON(w, resp); encErr != nil {
						return encErr
					}
					return errReported
				}
				return err
			}

			warnings := d.Validate()
			if jsonOutput {
				resp := output.ValidateResponse{
					TimestampedResponse: output.NewTimestamped(),
					Valid:               true,
					Sections:            len(d.Sections),
					Slides:              d.SlideCount(),
					Warnings:            make([]output.WarningItem, 0, len(warnings)),
				}
				for _, wn := range warnings {
					resp.Warnings = append(resp.Warnings, output.WarningItem{
						Section: wn.Section,
						Slide:   wn.Slide,
						Message: wn.Message,
					})
				}
				return output.WriteJSON(w, resp)
			}

			name := path
			if name == "" {
				name = "built-in deck"
			}
			fmt.Fprintf(w, "✓ %s: %d sections, %d slides\n", name, len(d.Sections), d.SlideCount())
			for _, wn := range warnings {
				fmt.Fprintf(w, "  ⚠ %s\n", wn)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}
