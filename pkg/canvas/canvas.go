// Package canvas holds the backend-neutral drawing model for flow diagrams.
//
// A [Figure] describes the page: its size in canvas units, the raster
// resolution, the background, and the title typography. Its [Surface]
// carries the display list, an ordered slice of [Op] values that sinks
// replay onto a concrete backend (SVG, raster, PGF). Coordinates are in
// canvas units with the origin at the top-left corner and y growing
// downward; one unit maps to DPI pixels in raster output and to 72 pixels
// in vector output. Font and stroke sizes are in points.
package canvas

// Figure describes a drawing page. Width and Height are in canvas units,
// DPI is the raster resolution in pixels per unit. Alpha is the background
// opacity: 1 paints a solid white page, 0 leaves it fully transparent.
type Figure struct {
	Width  float64
	Height float64
	DPI    int
	Alpha  float64

	Title     string
	TitleSize float64
	TitlePad  float64
	TitleBold bool

	surface *Surface
}

// NewFigure creates a figure of the given size with an empty surface and
// an opaque white background.
func NewFigure(width, height float64, dpi int) *Figure {
	f := &Figure{Width: width, Height: height, DPI: dpi, Alpha: 1}
	f.surface = &Surface{owner: f, Alpha: 1}
	return f
}

// Surface returns the figure's drawing surface.
func (f *Figure) Surface() *Surface {
	return f.surface
}

// PixelSize returns the raster dimensions of the figure at its DPI.
func (f *Figure) PixelSize() (w, h int) {
	return int(f.Width*float64(f.DPI) + 0.5), int(f.Height*float64(f.DPI) + 0.5)
}

// Surface is an append-only display list bound to one figure. Alpha is the
// surface's own background opacity, distinct from the page background.
type Surface struct {
	Alpha float64

	owner *Figure
	ops   []Op
}

// Owner returns the figure this surface draws onto.
func (s *Surface) Owner() *Figure {
	return s.owner
}

// Append adds ops to the end of the display list.
func (s *Surface) Append(ops ...Op) {
	s.ops = append(s.ops, ops...)
}

// Ops returns the display list in paint order. The slice is shared; callers
// must not modify it.
func (s *Surface) Ops() []Op {
	return s.ops
}

// Clear empties the display list, keeping the figure untouched.
func (s *Surface) Clear() {
	s.ops = s.ops[:0]
}

// Op is one drawing instruction. The concrete types are [Rect], [Arrow],
// [Dot], and [Text].
type Op interface {
	op()
}

// Rect is a rectangle with optionally rounded corners. Fill and Stroke are
// "#rrggbb" hex colors; an empty string skips that paint. Radius is the
// corner radius in canvas units, LineWidth the stroke width in points.
type Rect struct {
	X, Y      float64
	W, H      float64
	Radius    float64
	LineWidth float64
	Fill      string
	Stroke    string
}

// Arrow is a straight line from (X1, Y1) to (X2, Y2) with a filled
// triangular head at the end point. LineWidth is in points; HeadScale
// sets the head size in points, matching the stroke color.
type Arrow struct {
	X1, Y1    float64
	X2, Y2    float64
	LineWidth float64
	HeadScale float64
	Stroke    string
}

// Dot is a filled circle of radius R canvas units, used for branch
// junction markers.
type Dot struct {
	X, Y float64
	R    float64
	Fill string
}

// Text draws one or more lines centered horizontally on X. Y is the
// vertical center of the first line; each following line advances by
// LineHeight canvas units. Size is in points.
type Text struct {
	X, Y       float64
	Lines      []string
	Size       float64
	LineHeight float64
	Bold       bool
	Italic     bool
	Color      string
}

func (Rect) op()  {}
func (Arrow) op() {}
func (Dot) op()   {}
func (Text) op()  {}
