package canvas

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/osmanip/terminal"
)

type screenCell struct {
	r     rune
	style tcell.Style
}

// recordScreen captures SetContent calls
type recordScreen struct {
	cells map[[2]int]screenCell
}

func newRecordScreen() *recordScreen {
	return &recordScreen{cells: make(map[[2]int]screenCell)}
}

func (s *recordScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = screenCell{r: primary, style: style}
}

func TestDrawTo(t *testing.T) {
	c := newTestCanvas(t, 3, 2, WithOrigin(1, 1))
	c.Put(0, 0, 'a', "red,bold")
	c.Put(2, 1, 'b', "")

	s := newRecordScreen()
	if err := c.DrawTo(s); err != nil {
		t.Fatalf("DrawTo: %v", err)
	}

	if len(s.cells) != 6 {
		t.Errorf("drew %d cells, want 6", len(s.cells))
	}

	got := s.cells[[2]int{1, 1}]
	fg, bg, attrs := got.style.Decompose()
	if got.r != 'a' || fg != tcell.PaletteColor(1) || bg != tcell.ColorDefault || attrs&tcell.AttrBold == 0 {
		t.Errorf("cell (1,1) = %q fg=%v bg=%v attrs=%v, want bold red 'a'", got.r, fg, bg, attrs)
	}

	got = s.cells[[2]int{3, 2}]
	fg, bg, attrs = got.style.Decompose()
	if got.r != 'b' || fg != tcell.ColorDefault || bg != tcell.ColorDefault || attrs != tcell.AttrNone {
		t.Errorf("cell (3,2) = %q fg=%v bg=%v attrs=%v, want plain 'b'", got.r, fg, bg, attrs)
	}
	if _, ok := s.cells[[2]int{0, 0}]; ok {
		t.Error("drew outside the canvas origin")
	}
}

func TestDrawTo_Frame(t *testing.T) {
	c := newTestCanvas(t, 2, 1, WithFrame(FrameLines, ""))
	c.Text(0, 0, "ok", "")

	s := newRecordScreen()
	if err := c.DrawTo(s); err != nil {
		t.Fatalf("DrawTo: %v", err)
	}

	wantRunes := map[[2]int]rune{
		{0, 0}: '┌', {1, 0}: '─', {2, 0}: '─', {3, 0}: '┐',
		{0, 1}: '│', {1, 1}: 'o', {2, 1}: 'k', {3, 1}: '│',
		{0, 2}: '└', {1, 2}: '─', {2, 2}: '─', {3, 2}: '┘',
	}
	if len(s.cells) != len(wantRunes) {
		t.Errorf("drew %d cells, want %d", len(s.cells), len(wantRunes))
	}
	for pos, r := range wantRunes {
		if got := s.cells[pos].r; got != r {
			t.Errorf("cell %v = %q, want %q", pos, got, r)
		}
	}
}

func TestDrawTo_UnsupportedFeature(t *testing.T) {
	c := newTestCanvas(t, 2, 1)
	c.Put(0, 0, 'a', "red")
	c.Put(1, 0, 'b', "glitter")

	s := newRecordScreen()
	err := c.DrawTo(s)

	var ufe *terminal.UnsupportedFeatureError
	if !errors.As(err, &ufe) {
		t.Fatalf("DrawTo error = %v, want UnsupportedFeatureError", err)
	}
	if len(s.cells) != 0 {
		t.Errorf("screen touched before failure: %d cells", len(s.cells))
	}
}

func TestDrawTo_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	p := newTestPlot(t, 5, 5)
	p.Draw(func(x float64) float64 { return x }, '*', "green")
	if err := p.DrawTo(screen); err != nil {
		t.Fatalf("DrawTo: %v", err)
	}

	// Rows past the simulated height are dropped by the screen
	for i := 1; i < 4; i++ {
		r, _, style, _ := screen.GetContent(i, i)
		if r != '*' {
			t.Errorf("screen (%d,%d) = %q, want '*'", i, i, r)
		}
		if fg, _, _ := style.Decompose(); fg != tcell.PaletteColor(2) {
			t.Errorf("screen (%d,%d) fg = %v, want green", i, i, fg)
		}
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Errorf("screen (0,0) = %q, want blank", r)
	}
}

func TestCanvas_RegistryAndStyle(t *testing.T) {
	r := terminal.NewRegistry(terminal.ColorModeTrueColor)
	c, err := New(2, 1, WithRegistry(r))
	if err != nil {
		t.Fatal(err)
	}
	if c.Registry() != r {
		t.Error("Registry() did not return the configured registry")
	}

	got, err := c.Style("bold,red")
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	want, _ := r.Style("bold,red")
	gf, gb, ga := got.Tcell().Decompose()
	wf, wb, wa := want.Tcell().Decompose()
	if gf != wf || gb != wb || ga != wa {
		t.Errorf("Style(bold,red) = fg=%v bg=%v attrs=%v, want fg=%v bg=%v attrs=%v", gf, gb, ga, wf, wb, wa)
	}
	if _, err := c.Style("glitter"); err == nil {
		t.Error("unknown feature accepted")
	}

	d, err := New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d.Registry() != terminal.Default() {
		t.Error("canvas without a registry does not use the default")
	}
}
