package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fschwar4/cohortflow/pkg/style"
)

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List built-in styles and their color gradients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range style.Names() {
				cfg, err := style.Load(name, "", nil)
				if err != nil {
					return err
				}
				fmt.Println(StyleTitle.Render(name))
				printKeyValue("main", cfg.Colors.MainStart+" "+iconArrow+" "+cfg.Colors.MainEnd)
				printKeyValue("exclusion", cfg.Colors.ExclusionStart+" "+iconArrow+" "+cfg.Colors.ExclusionEnd)
				printKeyValue("figsize", fmt.Sprintf("%.0f x %.0f units @ %d dpi",
					cfg.Figure.FigsizeWidth, cfg.Figure.FigsizeHeight, cfg.Figure.DPI))
				printNewline()
			}
			printNextStep("Render with a style", "cohortflow render steps.toml --style colorful")
			return nil
		},
	}
}
