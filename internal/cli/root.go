package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Typically called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the cohortflow CLI under ctx and returns the first command
// error. Logging defaults to info level on stderr; --verbose (-v) switches
// to debug. The logger is attached to the command context and reachable
// via loggerFromContext in every command.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "cohortflow",
		Short:        "Cohortflow renders cohort attrition flow diagrams",
		Long:         `Cohortflow turns an ordered list of cohort steps into a CONSORT-style attrition diagram: a vertical column of boxes with participant counts, connected by arrows, with side boxes explaining every exclusion.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("cohortflow %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newColorsCmd())
	root.AddCommand(newPreviewCmd())

	return root.ExecuteContext(ctx)
}
