package flow

import (
	"errors"
	"strings"
	"testing"

	"github.com/fschwar4/cohortflow/pkg/canvas"
	"github.com/fschwar4/cohortflow/pkg/palette"
	"github.com/fschwar4/cohortflow/pkg/style"
)

func attritionSteps() []Step {
	return []Step{
		{Heading: "Registered", Count: 350},
		{Heading: "Screened", Count: 150, ExclusionDescription: "Not eligible"},
		{Heading: "Analysed", Count: 120, ExclusionDescription: "Lost to follow-up"},
	}
}

func rects(s *canvas.Surface) []canvas.Rect {
	var out []canvas.Rect
	for _, op := range s.Ops() {
		if r, ok := op.(canvas.Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

func texts(s *canvas.Surface) []canvas.Text {
	var out []canvas.Text
	for _, op := range s.Ops() {
		if t, ok := op.(canvas.Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestRenderValidation(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, _, err := Render(nil)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Render(nil) error = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("increasing count", func(t *testing.T) {
		_, _, err := Render([]Step{{Count: 100}, {Count: 150}})
		var ise *InvalidSequenceError
		if !errors.As(err, &ise) {
			t.Fatalf("Render() error = %v, want *InvalidSequenceError", err)
		}
		if ise.Index != 1 || ise.Count != 150 || ise.Prev != 100 {
			t.Errorf("InvalidSequenceError = %+v, want Index 1, Count 150, Prev 100", ise)
		}
	})

	t.Run("negative count", func(t *testing.T) {
		_, _, err := Render([]Step{{Count: 100}, {Count: -5}})
		var ise *InvalidSequenceError
		if !errors.As(err, &ise) {
			t.Fatalf("Render() error = %v, want *InvalidSequenceError", err)
		}
		if ise.Index != 1 {
			t.Errorf("InvalidSequenceError.Index = %d, want 1", ise.Index)
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		_, _, err := Render(attritionSteps(), WithStyle("neon"))
		var use *style.UnknownStyleError
		if !errors.As(err, &use) {
			t.Errorf("Render() error = %v, want *UnknownStyleError", err)
		}
	})

	t.Run("bad step color", func(t *testing.T) {
		steps := attritionSteps()
		steps[1].Color = "#12345"
		_, _, err := Render(steps)
		var ice *palette.InvalidColorError
		if !errors.As(err, &ice) {
			t.Errorf("Render() error = %v, want *InvalidColorError", err)
		}
	})
}

func TestRenderWhiteStyleFills(t *testing.T) {
	_, s, err := Render(attritionSteps())
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	rs := rects(s)
	if len(rs) != 5 {
		t.Fatalf("got %d boxes, want 3 main + 2 exclusion", len(rs))
	}
	for i, r := range rs {
		if r.Fill != "#ffffff" {
			t.Errorf("rect %d fill = %q, want #ffffff in the default style", i, r.Fill)
		}
		if r.Stroke != "#000000" {
			t.Errorf("rect %d stroke = %q, want black border", i, r.Stroke)
		}
	}
}

func TestRenderColorfulGradient(t *testing.T) {
	_, s, err := Render(attritionSteps(), WithStyle("colorful"))
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	rs := rects(s)
	// Main boxes are emitted before exclusion boxes; gradient endpoints
	// are exact on the first and last step.
	if rs[0].Fill != "#d6eaf8" {
		t.Errorf("first main fill = %q, want gradient start #d6eaf8", rs[0].Fill)
	}
	if rs[2].Fill != "#85c1e9" {
		t.Errorf("last main fill = %q, want gradient end #85c1e9", rs[2].Fill)
	}
}

func TestRenderStepColorOverrides(t *testing.T) {
	steps := attritionSteps()
	steps[0].Color = "#123456"
	steps[1].ColorName = "red"
	steps[2].Color = "#abcdef"
	steps[2].ColorName = "blue"

	_, s, err := Render(steps)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	rs := rects(s)
	if rs[0].Fill != "#123456" {
		t.Errorf("explicit hex override: fill = %q", rs[0].Fill)
	}
	if rs[1].Fill != "#ff0000" {
		t.Errorf("named override: fill = %q, want #ff0000", rs[1].Fill)
	}
	if rs[2].Fill != "#abcdef" {
		t.Errorf("color must win over color_name: fill = %q", rs[2].Fill)
	}
}

func TestRenderNamedColorsDisabled(t *testing.T) {
	steps := attritionSteps()
	steps[0].ColorName = "red"
	_, _, err := Render(steps, WithOverrides(map[string]any{
		"colors": map[string]any{"allow_named_colors": false},
	}))
	var ice *palette.InvalidColorError
	if !errors.As(err, &ice) {
		t.Errorf("Render() error = %v, want *InvalidColorError with named colors disabled", err)
	}
}

func TestRenderTransparent(t *testing.T) {
	f, s, err := Render(attritionSteps())
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if f.Alpha != 1 || s.Alpha != 1 {
		t.Errorf("default alphas = %v/%v, want opaque 1/1", f.Alpha, s.Alpha)
	}

	f, s, err = Render(attritionSteps(), WithTransparent())
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if f.Alpha != 0 || s.Alpha != 0 {
		t.Errorf("transparent alphas = %v/%v, want 0/0", f.Alpha, s.Alpha)
	}
}

func TestRenderBorrowedSurface(t *testing.T) {
	owner := canvas.NewFigure(20, 10, 96)
	borrowed := owner.Surface()

	f, s, err := Render(attritionSteps(),
		WithSurface(borrowed),
		WithFigsize(1, 1),
		WithDPI(300),
	)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if f != owner || s != borrowed {
		t.Fatal("borrowed surface must be returned in identity with its owner")
	}
	if f.Width != 20 || f.Height != 10 || f.DPI != 96 {
		t.Errorf("borrowed figure resized to %vx%v@%d, must stay 20x10@96", f.Width, f.Height, f.DPI)
	}
	if len(s.Ops()) == 0 {
		t.Error("no ops drawn onto the borrowed surface")
	}
}

func TestRenderGrowsCanvasToContent(t *testing.T) {
	steps := []Step{
		{Count: 700}, {Count: 600}, {Count: 500}, {Count: 400},
		{Count: 300}, {Count: 200}, {Count: 100},
	}
	f, _, err := Render(steps)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if f.Width != 12 {
		t.Errorf("Width = %v, want figsize minimum 12", f.Width)
	}
	if f.Height <= 8 {
		t.Errorf("Height = %v, want grown beyond figsize minimum 8", f.Height)
	}
}

func TestRenderDefaultHeadings(t *testing.T) {
	_, s, err := Render([]Step{{Count: 100}, {Heading: "   ", Count: 100}})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	joined := ""
	for _, txt := range texts(s) {
		joined += strings.Join(txt.Lines, "\n") + "\n"
	}
	if !strings.Contains(joined, "Step 1") {
		t.Error("missing default heading Step 1")
	}
	if !strings.Contains(joined, "Step 2") {
		t.Error("whitespace heading should fall back to Step 2")
	}
}

func TestRenderTextContent(t *testing.T) {
	steps := attritionSteps()
	steps[0].Description = "all registered participants"
	_, s, err := Render(steps)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	var bodyFirst, exclLast []string
	var italics int
	for _, txt := range texts(s) {
		if txt.Italic {
			italics++
			exclLast = txt.Lines
		}
		if len(txt.Lines) > 0 && txt.Lines[0] == "(n = 350)" {
			bodyFirst = txt.Lines
		}
	}

	if bodyFirst == nil {
		t.Fatal("no body block starting with \"(n = 350)\"")
	}
	// Count line, blank separator, then the description.
	if len(bodyFirst) < 3 || bodyFirst[1] != "" {
		t.Errorf("body lines = %v, want blank separator before description", bodyFirst)
	}
	if got := strings.Join(bodyFirst[2:], " "); got != "all registered participants" {
		t.Errorf("description lines = %q", got)
	}

	if italics != 2 {
		t.Errorf("italic exclusion blocks = %d, want 2", italics)
	}
	if exclLast[len(exclLast)-1] != "(n = 30)" {
		t.Errorf("exclusion trailer = %q, want \"(n = 30)\"", exclLast[len(exclLast)-1])
	}
	if exclLast[0] != "Lost to follow-up" {
		t.Errorf("exclusion label = %q", exclLast[0])
	}
}

func TestRenderZeroDeltaDrawsNoExclusion(t *testing.T) {
	steps := []Step{
		{Count: 100},
		{Count: 100, ExclusionDescription: "Should not appear", ExclusionColor: "#ff0000"},
	}
	_, s, err := Render(steps)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if n := len(rects(s)); n != 2 {
		t.Errorf("got %d boxes, want 2 main boxes and no exclusion", n)
	}
	for _, op := range s.Ops() {
		if _, ok := op.(canvas.Dot); ok {
			t.Error("zero-delta transition must not draw a junction dot")
		}
	}
}

func TestRenderPaintOrder(t *testing.T) {
	_, s, err := Render(attritionSteps(), WithTitle("Study"))
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	stage := func(op canvas.Op) int {
		switch op.(type) {
		case canvas.Arrow:
			return 0
		case canvas.Rect:
			return 1
		case canvas.Text:
			return 2
		case canvas.Dot:
			return 3
		}
		t.Fatalf("unexpected op %T", op)
		return -1
	}

	ops := s.Ops()
	// The figure title is the final op, after the junction dots.
	last, ok := ops[len(ops)-1].(canvas.Text)
	if !ok || last.Lines[0] != "Study" {
		t.Fatalf("last op = %#v, want the title text", ops[len(ops)-1])
	}
	prev := 0
	for i, op := range ops[:len(ops)-1] {
		st := stage(op)
		if st < prev {
			t.Fatalf("op %d (%T) painted after stage %d", i, op, prev)
		}
		prev = st
	}
}

func TestRenderTitle(t *testing.T) {
	f, _, err := Render(attritionSteps(), WithTitle("Cohort"), WithStyle("colorful"))
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if f.Title != "Cohort" || f.TitleSize != 16 || !f.TitleBold {
		t.Errorf("figure title fields = %q/%v/%v", f.Title, f.TitleSize, f.TitleBold)
	}

	f, _, err = Render(attritionSteps())
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if f.Title != "" {
		t.Errorf("untitled figure has Title %q", f.Title)
	}
}

func TestRenderPaletteOptions(t *testing.T) {
	_, s, err := Render(attritionSteps(),
		WithMainPalette([]string{"#111111", "#222222"}),
		WithExclusionPalette([]string{"#333333"}),
	)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	rs := rects(s)
	want := []string{"#111111", "#222222", "#111111", "#333333", "#333333"}
	for i, r := range rs {
		if r.Fill != want[i] {
			t.Errorf("rect %d fill = %q, want %q (short palettes cycle)", i, r.Fill, want[i])
		}
	}
}
