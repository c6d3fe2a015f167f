package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fschwar4/cohortflow/pkg/flow"
	"github.com/fschwar4/cohortflow/pkg/flow/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output directory
	name        string   // base file name, defaults to the input file's stem
	formats     []string // export format tokens
	style       string   // built-in style name
	config      string   // optional style override TOML file
	title       string   // optional figure title
	transparent bool     // transparent background
	dpi         int      // raster resolution override
	width       float64  // fixed canvas width in units
	height      float64  // fixed canvas height in units
}

func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{output: ".", style: flow.DefaultStyle}

	cmd := &cobra.Command{
		Use:   "render <steps.toml|steps.json>",
		Short: "Render a cohort flow diagram to image files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "base file name (default: input file name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf, ... (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "built-in style: white (default), colorful")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML file with style overrides")
	cmd.Flags().StringVar(&opts.title, "title", "", "figure title above the diagram")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "transparent background")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "raster resolution override")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in units (requires --height)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in units (requires --width)")

	return cmd
}

// parseFormats parses the --format flag; empty defaults to png.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{"png"}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		formats = append(formats, strings.ToLower(strings.TrimSpace(f)))
	}
	return formats
}

// validateFormats checks every requested token. Besides the sink formats,
// "dot" is accepted and writes the Graphviz source for the preview command.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if f == "dot" || sink.Supported(f) {
			continue
		}
		return fmt.Errorf("invalid format: %s (supported: %s, dot)", f, strings.Join(sink.Formats(), ", "))
	}
	return nil
}

func runRender(ctx context.Context, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	steps, err := loadSteps(path)
	if err != nil {
		return err
	}
	printInfo("Rendering %d steps from %s", len(steps), filepath.Base(path))

	renderOpts := []flow.Option{
		flow.WithStyle(opts.style),
		flow.WithLogger(logger),
	}
	if opts.config != "" {
		renderOpts = append(renderOpts, flow.WithStyleFile(opts.config))
	}
	if opts.title != "" {
		renderOpts = append(renderOpts, flow.WithTitle(opts.title))
	}
	if opts.transparent {
		renderOpts = append(renderOpts, flow.WithTransparent())
	}
	if opts.dpi > 0 {
		renderOpts = append(renderOpts, flow.WithDPI(opts.dpi))
	}
	if opts.width > 0 && opts.height > 0 {
		renderOpts = append(renderOpts, flow.WithFigsize(opts.width, opts.height))
	}

	prog := newProgress(logger)
	fig, _, err := flow.Render(steps, renderOpts...)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d steps", len(steps)))

	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var fileFormats []string
	wantDOT := false
	for _, f := range opts.formats {
		if f == "dot" {
			wantDOT = true
			continue
		}
		fileFormats = append(fileFormats, f)
	}

	spinner := newSpinnerWithContext(ctx, "Exporting "+strings.Join(opts.formats, ", "))
	spinner.Start()
	paths, err := sink.Save(fig, opts.output, name, fileFormats, logger)
	if err == nil && wantDOT {
		var dotPath string
		if dotPath, err = writeDOT(steps, opts.output, name); err == nil {
			paths = append(paths, dotPath)
		}
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		printError("Export failed: %v", err)
		return err
	}

	printSuccess("Exported %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

func writeDOT(steps []flow.Step, dir, name string) (string, error) {
	dot, err := flow.ToDOT(steps)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".dot")
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
