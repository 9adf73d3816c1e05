package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/deck/internal/output"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no config or deck.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if jsonOutput {
				return output.WriteJSON(w, output.VersionResponse{Version: Version, Commit: Commit, Date: Date})
			}
			fmt.Fprintf(w, "deck %s", Version)
			if Commit != "" {
				fmt.Fprintf(w, " (%s", Commit)
				if Date != "" {
					fmt.Fprintf(w, ", %s", Date)
				}
				fmt.Fprint(w, ")")
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}
