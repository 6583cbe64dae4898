package terminal

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrInvisible Attr = 1 << 6
	AttrStrike    Attr = 1 << 7
)

// Style is the decoded form of an SGR parameter list
type Style struct {
	Fg    tcell.Color
	Bg    tcell.Color
	Attrs Attr
}

// DefaultStyle has terminal default colors and no attributes
var DefaultStyle = Style{Fg: tcell.ColorDefault, Bg: tcell.ColorDefault}

// DecodeStyle interprets an SGR parameter list such as "1;38;5;208".
// Unknown codes are ignored, as a terminal would.
func DecodeStyle(params string) Style {
	s := DefaultStyle
	if params == "" {
		return s
	}

	fields := strings.Split(params, ";")
	codes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			n = -1
		}
		codes = append(codes, n)
	}

	for i := 0; i < len(codes); i++ {
		c := codes[i]
		switch {
		case c == 0:
			s = DefaultStyle
		case c == 1:
			s.Attrs |= AttrBold
		case c == 2:
			s.Attrs |= AttrDim
		case c == 3:
			s.Attrs |= AttrItalic
		case c == 4, c == 21:
			s.Attrs |= AttrUnderline
		case c == 5:
			s.Attrs |= AttrBlink
		case c == 7:
			s.Attrs |= AttrReverse
		case c == 8:
			s.Attrs |= AttrInvisible
		case c == 9:
			s.Attrs |= AttrStrike
		case c == 22:
			s.Attrs &^= AttrBold | AttrDim
		case c == 23:
			s.Attrs &^= AttrItalic
		case c == 24:
			s.Attrs &^= AttrUnderline
		case c == 25:
			s.Attrs &^= AttrBlink
		case c == 27:
			s.Attrs &^= AttrReverse
		case c == 28:
			s.Attrs &^= AttrInvisible
		case c == 29:
			s.Attrs &^= AttrStrike
		case c >= 30 && c <= 37:
			s.Fg = tcell.PaletteColor(c - 30)
		case c >= 90 && c <= 97:
			s.Fg = tcell.PaletteColor(c - 90 + 8)
		case c == 39:
			s.Fg = tcell.ColorDefault
		case c >= 40 && c <= 47:
			s.Bg = tcell.PaletteColor(c - 40)
		case c >= 100 && c <= 107:
			s.Bg = tcell.PaletteColor(c - 100 + 8)
		case c == 49:
			s.Bg = tcell.ColorDefault
		case c == 38, c == 48:
			color, used := decodeExtendedColor(codes[i+1:])
			if used == 0 {
				// Malformed extended color consumes the rest, as xterm does
				i = len(codes)
				continue
			}
			if c == 38 {
				s.Fg = color
			} else {
				s.Bg = color
			}
			i += used
		}
	}
	return s
}

// decodeExtendedColor reads "5;N" or "2;R;G;B", returning the count of codes consumed
func decodeExtendedColor(codes []int) (tcell.Color, int) {
	if len(codes) >= 2 && codes[0] == 5 && codes[1] >= 0 && codes[1] <= 255 {
		return tcell.PaletteColor(codes[1]), 2
	}
	if len(codes) >= 4 && codes[0] == 2 {
		for _, v := range codes[1:4] {
			if v < 0 || v > 255 {
				return tcell.ColorDefault, 0
			}
		}
		return tcell.NewRGBColor(int32(codes[1]), int32(codes[2]), int32(codes[3])), 4
	}
	return tcell.ColorDefault, 0
}

// Tcell converts the style for tcell screens
func (s Style) Tcell() tcell.Style {
	ts := tcell.StyleDefault.Foreground(s.Fg).Background(s.Bg)
	if s.Attrs&AttrBold != 0 {
		ts = ts.Bold(true)
	}
	if s.Attrs&AttrDim != 0 {
		ts = ts.Dim(true)
	}
	if s.Attrs&AttrItalic != 0 {
		ts = ts.Italic(true)
	}
	if s.Attrs&AttrUnderline != 0 {
		ts = ts.Underline(true)
	}
	if s.Attrs&AttrBlink != 0 {
		ts = ts.Blink(true)
	}
	if s.Attrs&AttrReverse != 0 {
		ts = ts.Reverse(true)
	}
	if s.Attrs&AttrStrike != 0 {
		ts = ts.StrikeThrough(true)
	}
	// tcell has no concealed attribute; hide by matching foreground to background
	if s.Attrs&AttrInvisible != 0 {
		ts = ts.Foreground(s.Bg)
	}
	return ts
}

// Style resolves a composite feature string into a decoded Style
func (r *Registry) Style(feature string) (Style, error) {
	p, err := r.ComposeParams(feature)
	if err != nil {
		return DefaultStyle, err
	}
	return DecodeStyle(p), nil
}
