// Package style resolves the visual configuration for cohort flow diagrams.
//
// Configuration is a three-layer cascade merged in strict priority order:
//
//  1. a built-in style shipped as embedded TOML ("white" or "colorful"),
//  2. an optional user TOML file that selectively overrides keys,
//  3. per-call overrides supplied programmatically.
//
// Each layer is deep-merged onto the previous one as a generic key-value
// tree; the merged tree is then decoded into the typed [Config] and
// schema-validated so that a missing or clobbered section is caught at
// merge time rather than at draw time. The embedded defaults are never
// mutated: every merge produces a fresh tree.
package style

import (
	"embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

//go:embed styles/*.toml
var builtins embed.FS

// builtinFiles maps built-in style names to their embedded TOML files.
var builtinFiles = map[string]string{
	"white":    "styles/white.toml",
	"colorful": "styles/colorful.toml",
}

// sections are the top-level tables every resolved configuration must carry.
var sections = []string{"figure", "layout", "box_geometry", "text", "lines", "colors"}

// UnknownStyleError reports a style that could not be resolved: either an
// unregistered built-in name or an override file that does not exist.
type UnknownStyleError struct {
	Name  string
	Path  string
	Known []string
}

func (e *UnknownStyleError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("style config file %q does not exist", e.Path)
	}
	return fmt.Sprintf("unknown built-in style %q (available: %v)", e.Name, e.Known)
}

// Config is the fully resolved style configuration.
type Config struct {
	Figure      FigureConfig      `toml:"figure"`
	Layout      LayoutConfig      `toml:"layout"`
	BoxGeometry BoxGeometryConfig `toml:"box_geometry"`
	Text        TextConfig        `toml:"text"`
	Lines       LinesConfig       `toml:"lines"`
	Colors      ColorsConfig      `toml:"colors"`
}

// FigureConfig controls canvas size, resolution, and title typography.
// Sizes are in canvas units (rendered at DPI pixels per unit), font sizes
// and pads in points.
type FigureConfig struct {
	DPI             int     `toml:"dpi"`
	FigsizeWidth    float64 `toml:"figsize_width"`
	FigsizeHeight   float64 `toml:"figsize_height"`
	TitleFontsize   float64 `toml:"title_fontsize"`
	TitleFontweight string  `toml:"title_fontweight"`
	TitlePad        float64 `toml:"title_pad"`
}

// LayoutConfig controls text wrap widths (characters), box widths, gaps,
// and margins (canvas units).
type LayoutConfig struct {
	MainTitleWidth     int     `toml:"main_title_width"`
	MainTextWidth      int     `toml:"main_text_width"`
	ExclusionTextWidth int     `toml:"exclusion_text_width"`
	MainBoxWidth       float64 `toml:"main_box_width"`
	ExclusionBoxWidth  float64 `toml:"exclusion_box_width"`
	BaseGap            float64 `toml:"base_gap"`
	SideGap            float64 `toml:"side_gap"`
	TopMargin          float64 `toml:"top_margin"`
	BottomMargin       float64 `toml:"bottom_margin"`
	XPadding           float64 `toml:"x_padding"`
}

// BoxGeometryConfig controls per-box sizing: padding, per-line height
// contributions, minimum heights, and corner rounding.
type BoxGeometryConfig struct {
	Padding            float64 `toml:"padding"`
	TitleLineHeight    float64 `toml:"title_line_height"`
	BodyLineHeight     float64 `toml:"body_line_height"`
	TitleBodyGap       float64 `toml:"title_body_gap"`
	TextTopPadding     float64 `toml:"text_top_padding"`
	MinMainHeight      float64 `toml:"min_main_height"`
	MinExclusionHeight float64 `toml:"min_exclusion_height"`
	Clearance          float64 `toml:"clearance"`
	CornerRadius       float64 `toml:"corner_radius"`
	PadFactor          float64 `toml:"pad_factor"`
}

// TextConfig holds font sizes per text role, in points.
type TextConfig struct {
	FontsizeTitle     float64 `toml:"fontsize_title"`
	FontsizeMain      float64 `toml:"fontsize_main"`
	FontsizeExclusion float64 `toml:"fontsize_exclusion"`
}

// LinesConfig controls stroke widths (points), arrowhead scale, and the
// junction marker radius (canvas units).
type LinesConfig struct {
	BoxLinewidth       float64 `toml:"box_linewidth"`
	ConnectorLinewidth float64 `toml:"connector_linewidth"`
	ArrowMutationScale float64 `toml:"arrow_mutation_scale"`
	JunctionRadius     float64 `toml:"junction_radius"`
}

// ColorsConfig holds the gradient endpoints for main and exclusion boxes
// plus the flag permitting named-color strings in step records.
type ColorsConfig struct {
	AllowNamedColors bool   `toml:"allow_named_colors"`
	MainStart        string `toml:"main_start"`
	MainEnd          string `toml:"main_end"`
	ExclusionStart   string `toml:"exclusion_start"`
	ExclusionEnd     string `toml:"exclusion_end"`
}

// Names returns the sorted list of built-in style names.
func Names() []string {
	names := make([]string, 0, len(builtinFiles))
	for n := range builtinFiles {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Load resolves the configuration cascade for the named built-in style.
// path, when non-empty, names a user TOML file merged on top; overrides,
// when non-nil, is a partial tree merged last. Load returns
// *UnknownStyleError for an unregistered name or a missing file.
func Load(name, path string, overrides map[string]any) (*Config, error) {
	file, ok := builtinFiles[name]
	if !ok {
		return nil, &UnknownStyleError{Name: name, Known: Names()}
	}

	data, err := builtins.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read built-in style %q: %w", name, err)
	}
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode built-in style %q: %w", name, err)
	}

	if path != "" {
		user, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, &UnknownStyleError{Path: path}
		}
		if err != nil {
			return nil, fmt.Errorf("read style config %s: %w", path, err)
		}
		var userTree map[string]any
		if err := toml.Unmarshal(user, &userTree); err != nil {
			return nil, fmt.Errorf("decode style config %s: %w", path, err)
		}
		tree = deepMerge(tree, userTree)
	}

	if overrides != nil {
		tree = deepMerge(tree, overrides)
	}

	return decode(tree)
}

// decode converts a merged tree into the typed Config, validating that all
// six sections survived the cascade.
func decode(tree map[string]any) (*Config, error) {
	for _, s := range sections {
		if _, ok := tree[s].(map[string]any); !ok {
			return nil, fmt.Errorf("style config is missing section [%s] after merge", s)
		}
	}

	data, err := toml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode merged style config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode merged style config: %w", err)
	}
	return &cfg, nil
}
