package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fschwar4/cohortflow/pkg/palette"
)

func newColorsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List recognized color names for step records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := 0
			for _, name := range palette.Names() {
				if search != "" && !strings.Contains(name, strings.ToLower(search)) {
					continue
				}
				hex, err := palette.Resolve(name, "", true)
				if err != nil {
					return err
				}
				printKeyValue(name, hex)
				shown++
			}
			printNewline()
			printDetail("%d color names", shown)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter color names by substring")
	return cmd
}
