package canvas

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/osmanip/terminal"
)

// Screen is the subset of tcell.Screen needed to draw a canvas.
// tcell.Screen and tcell.SimulationScreen satisfy it.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// DrawTo writes every cell, and the frame if any, into screen at the canvas origin.
// Features are decoded once per distinct feature. The caller shows the screen.
func (c *Canvas) DrawTo(screen Screen) error {
	styles := make(map[string]tcell.Style, 8)
	style := func(feature string) (tcell.Style, error) {
		if s, ok := styles[feature]; ok {
			return s, nil
		}
		st, err := c.Style(feature)
		if err != nil {
			return tcell.StyleDefault, err
		}
		s := st.Tcell()
		styles[feature] = s
		return s, nil
	}

	// Resolve everything before touching the screen
	for _, cell := range c.cells {
		if _, err := style(cell.Feature); err != nil {
			return err
		}
	}

	ox, oy := c.originX, c.originY
	if fr, framed := c.border(); framed {
		fs, err := style(c.frameFeature)
		if err != nil {
			return err
		}
		right, bottom := ox+c.width+1, oy+c.height+1
		screen.SetContent(ox, oy, fr.tl, nil, fs)
		screen.SetContent(right, oy, fr.tr, nil, fs)
		screen.SetContent(ox, bottom, fr.bl, nil, fs)
		screen.SetContent(right, bottom, fr.br, nil, fs)
		for x := ox + 1; x < right; x++ {
			screen.SetContent(x, oy, fr.h, nil, fs)
			screen.SetContent(x, bottom, fr.h, nil, fs)
		}
		for y := oy + 1; y < bottom; y++ {
			screen.SetContent(ox, y, fr.v, nil, fs)
			screen.SetContent(right, y, fr.v, nil, fs)
		}
		ox++
		oy++
	}

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			s := styles[cell.Feature]
			screen.SetContent(ox+x, oy+y, cell.Rune, nil, s)
		}
	}
	return nil
}

// Style returns the decoded style of a feature using the canvas registry
func (c *Canvas) Style(feature string) (terminal.Style, error) {
	return c.registry.Style(feature)
}
