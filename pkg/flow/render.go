package flow

import (
	"fmt"
	"strings"

	"github.com/fschwar4/cohortflow/pkg/canvas"
	"github.com/fschwar4/cohortflow/pkg/flow/layout"
	"github.com/fschwar4/cohortflow/pkg/palette"
	"github.com/fschwar4/cohortflow/pkg/style"
)

const black = "#000000"

// Render lays out the step sequence and emits its draw ops onto a surface.
//
// Validation runs before any drawing: an empty sequence returns
// [ErrEmptyInput], a count that rises or goes negative returns an
// *InvalidSequenceError. Style resolution follows the cascade (built-in
// style, optional style file, per-call overrides); box colors come from
// gradients over the style's endpoints unless palettes or per-step
// overrides say otherwise.
//
// Without WithSurface, Render creates a figure sized to fit the content
// (never smaller than the style's figsize) and returns it with its owned
// surface. With WithSurface, Render draws onto the supplied surface,
// leaves its figure's size and DPI untouched, and returns that figure and
// the same surface pointer.
func Render(steps []Step, opts ...Option) (*canvas.Figure, *canvas.Surface, error) {
	cfg := newRenderConfig(opts)

	if err := validate(steps); err != nil {
		return nil, nil, err
	}

	conf, err := style.Load(cfg.style, cfg.styleFile, cfg.overrides)
	if err != nil {
		return nil, nil, err
	}
	if cfg.dpi > 0 {
		conf.Figure.DPI = cfg.dpi
	}

	mainPal := cfg.mainPalette
	if len(mainPal) == 0 {
		mainPal, err = palette.Gradient(conf.Colors.MainStart, conf.Colors.MainEnd, len(steps))
		if err != nil {
			return nil, nil, err
		}
	}
	exclPal := cfg.exclPalette
	if len(exclPal) == 0 {
		exclPal, err = palette.Gradient(conf.Colors.ExclusionStart, conf.Colors.ExclusionEnd, len(steps))
		if err != nil {
			return nil, nil, err
		}
	}

	inputs, err := buildInputs(steps, conf, mainPal, exclPal)
	if err != nil {
		return nil, nil, err
	}
	l := layout.Plan(inputs, conf)

	var f *canvas.Figure
	var surf *canvas.Surface
	if cfg.surface != nil {
		surf = cfg.surface
		f = surf.Owner()
	} else {
		w, h := cfg.figW, cfg.figH
		if w <= 0 || h <= 0 {
			w = max(conf.Figure.FigsizeWidth, l.Width)
			h = max(conf.Figure.FigsizeHeight, l.Height)
		}
		f = canvas.NewFigure(w, h, conf.Figure.DPI)
		surf = f.Surface()
	}

	if cfg.title != "" {
		f.Title = cfg.title
		f.TitleSize = conf.Figure.TitleFontsize
		f.TitlePad = conf.Figure.TitlePad
		f.TitleBold = conf.Figure.TitleFontweight == "bold"
	}
	if cfg.transparent {
		f.Alpha = 0
		surf.Alpha = 0
	}

	emit(surf, f, l, conf, cfg.title)

	cfg.logger.Debug("rendered flow diagram",
		"steps", len(steps),
		"exclusions", len(l.Exclusions),
		"width", f.Width,
		"height", f.Height,
	)
	return f, surf, nil
}

// buildInputs wraps text, resolves colors, and computes exclusion deltas
// for the planner.
func buildInputs(steps []Step, conf *style.Config, mainPal, exclPal []string) ([]layout.Input, error) {
	lay := conf.Layout
	allowNamed := conf.Colors.AllowNamedColors

	inputs := make([]layout.Input, len(steps))
	for i, s := range steps {
		body := []string{fmt.Sprintf("(n = %d)", s.Count)}
		if desc := strings.TrimSpace(s.Description); desc != "" {
			body = append(body, "")
			body = append(body, Wrap(desc, lay.MainTextWidth)...)
		}

		delta := 0
		if i > 0 {
			delta = steps[i-1].Count - s.Count
		}
		exclLines := Wrap(s.exclusionDescription(), lay.ExclusionTextWidth)
		exclLines = append(exclLines, fmt.Sprintf("(n = %d)", delta))

		fill, err := palette.Resolve(s.mainColor(), mainPal[i%len(mainPal)], allowNamed)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		exclFill, err := palette.Resolve(s.exclusionColor(), exclPal[i%len(exclPal)], allowNamed)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		inputs[i] = layout.Input{
			TitleLines:     Wrap(s.heading(i), lay.MainTitleWidth),
			BodyLines:      body,
			ExclusionLines: exclLines,
			ExclusionCount: delta,
			Fill:           fill,
			ExclusionFill:  exclFill,
		}
	}
	return inputs, nil
}

// emit appends the diagram's draw ops in paint order: connector and branch
// arrows first, then boxes, text, junction dots, and the figure title.
// Content is centered horizontally when the canvas is wider than the
// planned extent and stays top-aligned vertically.
func emit(s *canvas.Surface, f *canvas.Figure, l layout.Layout, conf *style.Config, title string) {
	geo := conf.BoxGeometry
	txt := conf.Text
	ln := conf.Lines

	var xoff float64
	if d := f.Width - l.Width; d > 0 {
		xoff = d / 2
	}

	for _, c := range l.Connectors {
		s.Append(canvas.Arrow{
			X1: c.X + xoff, Y1: c.Y1,
			X2: c.X + xoff, Y2: c.Y2,
			LineWidth: ln.ConnectorLinewidth,
			HeadScale: ln.ArrowMutationScale,
			Stroke:    black,
		})
	}
	for _, b := range l.Branches {
		s.Append(canvas.Arrow{
			X1: b.X1 + xoff, Y1: b.Y,
			X2: b.X2 + xoff, Y2: b.Y,
			LineWidth: ln.ConnectorLinewidth,
			HeadScale: ln.ArrowMutationScale,
			Stroke:    black,
		})
	}

	for _, n := range l.Nodes {
		s.Append(boxRect(n.Box, xoff, n.Fill, geo, ln.BoxLinewidth))
	}
	for _, e := range l.Exclusions {
		s.Append(boxRect(e.Box, xoff, e.Fill, geo, ln.BoxLinewidth))
	}

	for _, n := range l.Nodes {
		cx := n.Box.CenterX() + xoff
		titleTop := n.Box.Top + geo.TextTopPadding
		s.Append(canvas.Text{
			X: cx, Y: titleTop + geo.TitleLineHeight/2,
			Lines:      n.TitleLines,
			Size:       txt.FontsizeTitle,
			LineHeight: geo.TitleLineHeight,
			Bold:       true,
			Color:      black,
		})
		bodyTop := titleTop + geo.TitleLineHeight*float64(len(n.TitleLines)) + geo.TitleBodyGap
		s.Append(canvas.Text{
			X: cx, Y: bodyTop + geo.BodyLineHeight/2,
			Lines:      n.BodyLines,
			Size:       txt.FontsizeMain,
			LineHeight: geo.BodyLineHeight,
			Color:      black,
		})
	}
	for _, e := range l.Exclusions {
		s.Append(canvas.Text{
			X: e.Box.CenterX() + xoff,
			Y: e.Box.CenterY() - geo.BodyLineHeight*float64(len(e.Lines)-1)/2,
			Lines:      e.Lines,
			Size:       txt.FontsizeExclusion,
			LineHeight: geo.BodyLineHeight,
			Italic:     true,
			Color:      black,
		})
	}

	for _, b := range l.Branches {
		s.Append(canvas.Dot{X: b.X1 + xoff, Y: b.Y, R: ln.JunctionRadius, Fill: black})
	}

	if title != "" {
		// Title pad and size are in points; one canvas unit is 72 points.
		s.Append(canvas.Text{
			X: f.Width / 2,
			Y: (conf.Figure.TitlePad + conf.Figure.TitleFontsize/2) / 72,
			Lines:      []string{title},
			Size:       conf.Figure.TitleFontsize,
			LineHeight: conf.Figure.TitleFontsize / 72,
			Bold:       conf.Figure.TitleFontweight == "bold",
			Color:      black,
		})
	}
}

// boxRect inflates the planned rectangle by pad_factor on every side, the
// outward pad of the rounded box outline.
func boxRect(b layout.Box, xoff float64, fill string, geo style.BoxGeometryConfig, lw float64) canvas.Rect {
	p := geo.PadFactor
	return canvas.Rect{
		X: b.Left + xoff - p, Y: b.Top - p,
		W: b.Width() + 2*p, H: b.Height() + 2*p,
		Radius:    geo.CornerRadius,
		LineWidth: lw,
		Fill:      fill,
		Stroke:    black,
	}
}
