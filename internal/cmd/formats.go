package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harrison/dirloader/internal/extractor"
)

// NewFormatsCommand creates the formats command
func NewFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported document formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tEXTENSIONS")
			for _, format := range extractor.NewDefaultRegistry().Formats() {
				fmt.Fprintf(w, "%s\t%s\n", format, strings.Join(format.Extensions(), ", "))
			}
			return w.Flush()
		},
	}
}
