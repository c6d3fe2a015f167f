// Package layout computes absolute diagram geometry for cohort flow charts.
//
// The planner takes per-step inputs whose text has already been wrapped and
// produces box rectangles, connector segments, and branch positions in
// canvas units. Coordinates start at the content origin (0, 0) top-left
// with y growing downward; the caller places the content onto its canvas.
package layout

import "github.com/fschwar4/cohortflow/pkg/style"

// Box is an axis-aligned rectangle in canvas units, y growing downward.
type Box struct {
	Left, Top, Right, Bottom float64
}

func (b Box) Width() float64   { return b.Right - b.Left }
func (b Box) Height() float64  { return b.Bottom - b.Top }
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Input is one step prepared for planning. Text is pre-wrapped, one string
// per line. The exclusion fields describe the transition from the previous
// step into this one: ExclusionCount is the number of records dropped on
// that transition, and the exclusion is planned only when it is positive.
// Exclusion fields on the first input are ignored, there is no transition
// into it.
type Input struct {
	TitleLines     []string
	BodyLines      []string
	ExclusionLines []string
	ExclusionCount int
	Fill           string
	ExclusionFill  string
}

// Node is a placed main-column box with its text.
type Node struct {
	Box        Box
	TitleLines []string
	BodyLines  []string
	Fill       string
}

// Exclusion is a placed side box. Index is the node the transition leads
// into (the branch leaves the connector above node Index).
type Exclusion struct {
	Index int
	Box   Box
	Lines []string
	Fill  string
	Delta int
}

// Connector is the vertical arrow between two consecutive main boxes,
// running from Y1 (bottom of the upper box) down to Y2 (top of the lower).
type Connector struct {
	X      float64
	Y1, Y2 float64
}

// Branch is the horizontal arrow from a connector midpoint to an exclusion
// box, with a junction marker at its origin.
type Branch struct {
	Index  int
	X1, X2 float64
	Y      float64
}

// Layout is the planned geometry. Width and Height are the content extent
// including x_padding and the vertical margins; the canvas may be larger.
type Layout struct {
	Nodes      []Node
	Exclusions []Exclusion
	Connectors []Connector
	Branches   []Branch
	Width      float64
	Height     float64
}

// Plan stacks the inputs top to bottom and places exclusion boxes beside
// the connector gaps. The gap between two boxes is base_gap, enlarged when
// an exclusion box plus clearance on both sides would not fit.
func Plan(inputs []Input, cfg *style.Config) Layout {
	lay := cfg.Layout
	geo := cfg.BoxGeometry

	mainLeft := lay.XPadding
	mainRight := mainLeft + lay.MainBoxWidth
	exclLeft := mainRight + lay.SideGap
	exclRight := exclLeft + lay.ExclusionBoxWidth

	var out Layout
	y := lay.TopMargin
	hasExclusion := false
	for i, in := range inputs {
		h := mainHeight(in, geo)

		if i > 0 {
			prev := out.Nodes[i-1].Box
			gap := lay.BaseGap
			var exclH float64
			excl := in.ExclusionCount > 0
			if excl {
				exclH = exclusionHeight(in, geo)
				if need := exclH + 2*geo.Clearance; need > gap {
					gap = need
				}
			}
			y = prev.Bottom + gap
			mid := prev.Bottom + gap/2

			out.Connectors = append(out.Connectors, Connector{
				X:  (mainLeft + mainRight) / 2,
				Y1: prev.Bottom,
				Y2: y,
			})
			if excl {
				hasExclusion = true
				out.Exclusions = append(out.Exclusions, Exclusion{
					Index: i,
					Box:   Box{Left: exclLeft, Top: mid - exclH/2, Right: exclRight, Bottom: mid + exclH/2},
					Lines: in.ExclusionLines,
					Fill:  in.ExclusionFill,
					Delta: in.ExclusionCount,
				})
				out.Branches = append(out.Branches, Branch{
					Index: i,
					X1:    (mainLeft + mainRight) / 2,
					X2:    exclLeft,
					Y:     mid,
				})
			}
		}

		out.Nodes = append(out.Nodes, Node{
			Box:        Box{Left: mainLeft, Top: y, Right: mainRight, Bottom: y + h},
			TitleLines: in.TitleLines,
			BodyLines:  in.BodyLines,
			Fill:       in.Fill,
		})
	}

	right := mainRight
	if hasExclusion {
		right = exclRight
	}
	out.Width = right + lay.XPadding
	if n := len(out.Nodes); n > 0 {
		out.Height = out.Nodes[n-1].Box.Bottom + lay.BottomMargin
	}
	return out
}

func mainHeight(in Input, geo style.BoxGeometryConfig) float64 {
	h := geo.TitleLineHeight*float64(len(in.TitleLines)) +
		geo.BodyLineHeight*float64(len(in.BodyLines)) +
		geo.TitleBodyGap +
		2*geo.TextTopPadding
	return max(h, geo.MinMainHeight)
}

func exclusionHeight(in Input, geo style.BoxGeometryConfig) float64 {
	h := geo.BodyLineHeight*float64(len(in.ExclusionLines)) + 2*geo.TextTopPadding
	return max(h, geo.MinExclusionHeight)
}
