package sink

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/fschwar4/cohortflow/pkg/canvas"
	"github.com/fschwar4/cohortflow/pkg/fonts"
)

// svgScale is the pixel density of vector output: 72 px per canvas unit,
// so point-denominated sizes map 1:1 to pixels.
const svgScale = 72

// WriteSVG replays the figure's display list as an SVG document.
func WriteSVG(f *canvas.Figure, w io.Writer) error {
	ew := &errWriter{w: w}
	c := svg.New(ew)

	width := px(f.Width)
	height := px(f.Height)
	c.Start(width, height)

	if f.Alpha > 0 {
		c.Rect(0, 0, width, height, fmt.Sprintf("fill:#ffffff;fill-opacity:%.2f", f.Alpha))
	}

	for _, op := range f.Surface().Ops() {
		switch o := op.(type) {
		case canvas.Rect:
			c.Roundrect(px(o.X), px(o.Y), px(o.W), px(o.H), px(o.Radius), px(o.Radius),
				fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.2f", fillOrNone(o.Fill), fillOrNone(o.Stroke), o.LineWidth))
		case canvas.Arrow:
			svgArrow(c, o)
		case canvas.Dot:
			c.Circle(px(o.X), px(o.Y), px(o.R), "fill:"+fillOrNone(o.Fill))
		case canvas.Text:
			svgText(c, o)
		}
	}

	c.End()
	return ew.err
}

func svgArrow(c *svg.SVG, o canvas.Arrow) {
	// Shorten the shaft so it does not poke through the head.
	dx, dy := o.X2-o.X1, o.Y2-o.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	head := o.HeadScale / svgScale // points back to units
	bx, by := o.X2-ux*head, o.Y2-uy*head

	stroke := fillOrNone(o.Stroke)
	c.Line(px(o.X1), px(o.Y1), px(bx), px(by),
		fmt.Sprintf("stroke:%s;stroke-width:%.2f", stroke, o.LineWidth))

	// Triangular head: tip at the end point, base perpendicular to the shaft.
	pxs := []int{px(o.X2), px(bx - uy*head/2), px(bx + uy*head/2)}
	pys := []int{px(o.Y2), px(by + ux*head/2), px(by - ux*head/2)}
	c.Polygon(pxs, pys, "fill:"+stroke)
}

func svgText(c *svg.SVG, o canvas.Text) {
	style := fmt.Sprintf("fill:%s;font-size:%.1fpx;font-family:%s;text-anchor:middle;dominant-baseline:middle",
		fillOrNone(o.Color), o.Size, fonts.Family)
	if o.Bold {
		style += ";font-weight:bold"
	}
	if o.Italic {
		style += ";font-style:italic"
	}
	for i, line := range o.Lines {
		if line == "" {
			continue
		}
		c.Text(px(o.X), px(o.Y+float64(i)*o.LineHeight), line, style)
	}
}

func px(v float64) int {
	return int(math.Round(v * svgScale))
}

func fillOrNone(hex string) string {
	if hex == "" {
		return "none"
	}
	return hex
}

// errWriter remembers the first write failure; svgo itself ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
