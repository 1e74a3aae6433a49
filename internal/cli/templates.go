package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stackup-dev/stackup/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List supported templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TEMPLATE\tDESCRIPTION")
		for _, t := range scaffold.Templates() {
			id := t.ID()
			if id == scaffold.IDDefault {
				id += " (default)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", id, t.Description())
		}
		return tw.Flush()
	},
}
