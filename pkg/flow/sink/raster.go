package sink

import (
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/fschwar4/cohortflow/pkg/canvas"
	"github.com/fschwar4/cohortflow/pkg/fonts"
	"github.com/fschwar4/cohortflow/pkg/palette"
)

// Rasterize replays the figure's display list into a pixel image at the
// figure's DPI: one canvas unit maps to DPI pixels, point-denominated
// sizes to value*DPI/72 pixels.
func Rasterize(f *canvas.Figure) (*image.RGBA, error) {
	w, h := f.PixelSize()
	dc := gg.NewContext(w, h)
	scale := float64(f.DPI)
	pt := scale / 72 // pixels per point

	if f.Alpha > 0 {
		dc.SetRGBA(1, 1, 1, f.Alpha)
		dc.Clear()
	}

	for _, op := range f.Surface().Ops() {
		var err error
		switch o := op.(type) {
		case canvas.Rect:
			err = rasterRect(dc, o, scale, pt)
		case canvas.Arrow:
			err = rasterArrow(dc, o, scale, pt)
		case canvas.Dot:
			if err = setHex(dc, o.Fill); err == nil {
				dc.DrawCircle(o.X*scale, o.Y*scale, o.R*scale)
				dc.Fill()
			}
		case canvas.Text:
			err = rasterText(dc, o, scale, float64(f.DPI))
		}
		if err != nil {
			return nil, err
		}
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		img = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	}
	return img, nil
}

func rasterRect(dc *gg.Context, o canvas.Rect, scale, pt float64) error {
	dc.DrawRoundedRectangle(o.X*scale, o.Y*scale, o.W*scale, o.H*scale, o.Radius*scale)
	if o.Fill != "" {
		if err := setHex(dc, o.Fill); err != nil {
			return err
		}
		dc.FillPreserve()
	}
	if o.Stroke != "" {
		if err := setHex(dc, o.Stroke); err != nil {
			return err
		}
		dc.SetLineWidth(o.LineWidth * pt)
		dc.Stroke()
		return nil
	}
	dc.ClearPath()
	return nil
}

func rasterArrow(dc *gg.Context, o canvas.Arrow, scale, pt float64) error {
	dx, dy := o.X2-o.X1, o.Y2-o.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	if err := setHex(dc, o.Stroke); err != nil {
		return err
	}

	ux, uy := dx/length, dy/length
	head := o.HeadScale * pt / scale // head length in units
	bx, by := o.X2-ux*head, o.Y2-uy*head

	dc.SetLineWidth(o.LineWidth * pt)
	dc.DrawLine(o.X1*scale, o.Y1*scale, bx*scale, by*scale)
	dc.Stroke()

	dc.MoveTo(o.X2*scale, o.Y2*scale)
	dc.LineTo((bx-uy*head/2)*scale, (by+ux*head/2)*scale)
	dc.LineTo((bx+uy*head/2)*scale, (by-ux*head/2)*scale)
	dc.ClosePath()
	dc.Fill()
	return nil
}

func rasterText(dc *gg.Context, o canvas.Text, scale, dpi float64) error {
	face := fonts.Regular
	switch {
	case o.Bold:
		face = fonts.Bold
	case o.Italic:
		face = fonts.Italic
	}
	fnt, err := face()
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(fnt, &truetype.Options{Size: o.Size, DPI: dpi}))
	if err := setHex(dc, o.Color); err != nil {
		return err
	}
	for i, line := range o.Lines {
		if line == "" {
			continue
		}
		// ay 0.35 sits the baseline slightly below center, the optical
		// middle for latin text.
		dc.DrawStringAnchored(line, o.X*scale, (o.Y+float64(i)*o.LineHeight)*scale, 0.5, 0.35)
	}
	return nil
}

func setHex(dc *gg.Context, hex string) error {
	r, g, b, err := palette.HexToRGB(hex)
	if err != nil {
		return err
	}
	dc.SetRGBA255(int(r), int(g), int(b), 255)
	return nil
}
