package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fschwar4/cohortflow/pkg/flow"
	"github.com/fschwar4/cohortflow/pkg/flow/sink"
)

func newPreviewCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview <steps.toml|steps.json>",
		Short: "Render a quick structural preview via Graphviz",
		Long:  "Preview renders the step sequence through Graphviz as a plain node-and-edge SVG. It skips the styled layout entirely and is meant for sanity-checking counts and exclusions before a full render.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := loadSteps(args[0])
			if err != nil {
				return err
			}

			dot, err := flow.ToDOT(steps)
			if err != nil {
				return err
			}
			svg, err := sink.RenderDOT(cmd.Context(), dot)
			if err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = base + "_preview.svg"
			}
			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return err
			}

			printSuccess("Preview of %d steps", len(steps))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output SVG file (default: <steps>_preview.svg)")
	return cmd
}
