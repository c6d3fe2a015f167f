package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/fschwar4/cohortflow/pkg/canvas"
	"github.com/fschwar4/cohortflow/pkg/palette"
)

// WritePGF emits the figure as TikZ source for \input into a LaTeX
// document. Coordinates are in inches with y growing upward, matching the
// TeX convention; text uses the document's fonts.
func WritePGF(f *canvas.Figure, w io.Writer) error {
	ew := &errWriter{w: w}

	fmt.Fprintln(ew, "% cohort flow diagram, \\input inside a tikzpicture-capable document")
	fmt.Fprintln(ew, "\\begin{tikzpicture}[x=1in, y=1in]")
	if f.Alpha > 0 {
		fmt.Fprintf(ew, "  \\fill[white, opacity=%.2f] (0, 0) rectangle (%.4f, %.4f);\n", f.Alpha, f.Width, f.Height)
	}

	flip := func(y float64) float64 { return f.Height - y }

	for _, op := range f.Surface().Ops() {
		switch o := op.(type) {
		case canvas.Rect:
			fill, err := tikzColor(o.Fill)
			if err != nil {
				return err
			}
			stroke, err := tikzColor(o.Stroke)
			if err != nil {
				return err
			}
			fmt.Fprintf(ew, "  \\draw[draw=%s, fill=%s, line width=%.2fpt, rounded corners=%.2fin] (%.4f, %.4f) rectangle (%.4f, %.4f);\n",
				stroke, fill, o.LineWidth, o.Radius, o.X, flip(o.Y+o.H), o.X+o.W, flip(o.Y))
		case canvas.Arrow:
			stroke, err := tikzColor(o.Stroke)
			if err != nil {
				return err
			}
			fmt.Fprintf(ew, "  \\draw[->, draw=%s, line width=%.2fpt] (%.4f, %.4f) -- (%.4f, %.4f);\n",
				stroke, o.LineWidth, o.X1, flip(o.Y1), o.X2, flip(o.Y2))
		case canvas.Dot:
			fill, err := tikzColor(o.Fill)
			if err != nil {
				return err
			}
			fmt.Fprintf(ew, "  \\fill[%s] (%.4f, %.4f) circle[radius=%.4fin];\n", fill, o.X, flip(o.Y), o.R)
		case canvas.Text:
			if err := pgfText(ew, o, flip); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(ew, "\\end{tikzpicture}")
	return ew.err
}

func pgfText(w io.Writer, o canvas.Text, flip func(float64) float64) error {
	color, err := tikzColor(o.Color)
	if err != nil {
		return err
	}
	font := fmt.Sprintf("\\fontsize{%.1f}{%.1f}\\selectfont", o.Size, o.Size*1.2)
	if o.Bold {
		font += "\\bfseries"
	}
	if o.Italic {
		font += "\\itshape"
	}
	for i, line := range o.Lines {
		if line == "" {
			continue
		}
		y := o.Y + float64(i)*o.LineHeight
		fmt.Fprintf(w, "  \\node[text=%s, font=%s, inner sep=0pt] at (%.4f, %.4f) {%s};\n",
			color, font, o.X, flip(y), escapeTeX(line))
	}
	return nil
}

func tikzColor(hex string) (string, error) {
	if hex == "" {
		return "none", nil
	}
	r, g, b, err := palette.HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("{rgb,255:red,%d;green,%d;blue,%d}", r, g, b), nil
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeTeX(s string) string {
	return texEscaper.Replace(s)
}
