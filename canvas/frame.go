package canvas

// FrameStyle selects the border drawn around a rendered canvas
type FrameStyle uint8

const (
	FrameNone  FrameStyle = iota
	FrameASCII            // +-|
	FrameLines            // box drawing
)

// frameRunes holds corners and edges: top-left, top-right, bottom-left, bottom-right, horizontal, vertical
type frameRunes struct {
	tl, tr, bl, br, h, v rune
}

var frameSets = map[FrameStyle]frameRunes{
	FrameASCII: {'+', '+', '+', '+', '-', '|'},
	FrameLines: {'┌', '┐', '└', '┘', '─', '│'},
}

// ParseFrameStyle resolves a flag value
func ParseFrameStyle(s string) FrameStyle {
	switch s {
	case "ascii":
		return FrameASCII
	case "lines":
		return FrameLines
	default:
		return FrameNone
	}
}

// border returns the frame runes and whether a frame is drawn
func (c *Canvas) border() (frameRunes, bool) {
	fr, ok := frameSets[c.frame]
	return fr, ok
}
