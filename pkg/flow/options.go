package flow

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/fschwar4/cohortflow/pkg/canvas"
)

// DefaultStyle is the built-in style used when no option overrides it.
const DefaultStyle = "white"

// Option customizes a Render call.
type Option func(*renderConfig)

type renderConfig struct {
	style       string
	styleFile   string
	overrides   map[string]any
	title       string
	dpi         int
	figW, figH  float64
	mainPalette []string
	exclPalette []string
	transparent bool
	surface     *canvas.Surface
	logger      *log.Logger
}

func newRenderConfig(opts []Option) renderConfig {
	cfg := renderConfig{style: DefaultStyle}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}

// WithStyle selects a built-in style by name.
func WithStyle(name string) Option {
	return func(c *renderConfig) { c.style = name }
}

// WithStyleFile layers a user TOML file over the selected built-in style.
func WithStyleFile(path string) Option {
	return func(c *renderConfig) { c.styleFile = path }
}

// WithOverrides layers a partial configuration tree over the style cascade,
// after any style file. Keys mirror the TOML sections, for example
// {"figure": {"dpi": 300}}.
func WithOverrides(overrides map[string]any) Option {
	return func(c *renderConfig) { c.overrides = overrides }
}

// WithTitle renders a figure title above the diagram.
func WithTitle(title string) Option {
	return func(c *renderConfig) { c.title = title }
}

// WithDPI overrides the style's raster resolution. Ignored when drawing
// onto a borrowed surface.
func WithDPI(dpi int) Option {
	return func(c *renderConfig) { c.dpi = dpi }
}

// WithFigsize fixes the canvas size in units, bypassing the automatic
// grow-to-fit sizing. Ignored when drawing onto a borrowed surface.
func WithFigsize(w, h float64) Option {
	return func(c *renderConfig) { c.figW, c.figH = w, h }
}

// WithMainPalette supplies explicit main-box colors instead of the style's
// gradient. A palette shorter than the step sequence repeats cyclically.
func WithMainPalette(colors []string) Option {
	return func(c *renderConfig) { c.mainPalette = colors }
}

// WithExclusionPalette supplies explicit exclusion-box colors instead of
// the style's gradient. A short palette repeats cyclically.
func WithExclusionPalette(colors []string) Option {
	return func(c *renderConfig) { c.exclPalette = colors }
}

// WithTransparent clears the figure and surface backgrounds.
func WithTransparent() Option {
	return func(c *renderConfig) { c.transparent = true }
}

// WithSurface draws onto a caller-supplied surface instead of creating a
// new figure. The surface and its figure are never resized; the diagram is
// centered horizontally on whatever page they describe.
func WithSurface(s *canvas.Surface) Option {
	return func(c *renderConfig) { c.surface = s }
}

// WithLogger sets the logger for render diagnostics. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(c *renderConfig) { c.logger = logger }
}
