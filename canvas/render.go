package canvas

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/lixenwraith/osmanip/terminal"
)

// emitter accumulates render output, coalescing features across consecutive cells
type emitter struct {
	buf      []byte
	registry *terminal.Registry

	// sgr caches the composed sequence per distinct feature, so lookup errors are
	// decided once per feature rather than once per cell
	sgr  map[string][]byte
	last string
}

func newEmitter(r *terminal.Registry, capacity int) *emitter {
	return &emitter{
		buf:      make([]byte, 0, capacity),
		registry: r,
		sgr:      make(map[string][]byte, 8),
	}
}

// style emits a single combined SGR sequence when the feature changes.
// Attributes of the previous feature are always reset first.
func (e *emitter) style(feature string) error {
	if feature == e.last {
		return nil
	}
	seq, ok := e.sgr[feature]
	if !ok {
		if feature == "" {
			seq = []byte(terminal.Reset)
		} else {
			p, err := e.registry.ComposeParams(feature)
			if err != nil {
				return err
			}
			seq = make([]byte, 0, len(p)+5)
			seq = append(seq, terminal.CSI...)
			seq = append(seq, '0', ';')
			seq = append(seq, p...)
			seq = append(seq, 'm')
		}
		e.sgr[feature] = seq
	}
	e.buf = append(e.buf, seq...)
	e.last = feature
	return nil
}

func (e *emitter) put(r rune, feature string) error {
	if err := e.style(feature); err != nil {
		return err
	}
	if r < utf8.RuneSelf {
		e.buf = append(e.buf, byte(r))
	} else {
		e.buf = utf8.AppendRune(e.buf, r)
	}
	return nil
}

func (e *emitter) raw(s string) {
	e.buf = append(e.buf, s...)
}

// finish leaves the terminal with default attributes
func (e *emitter) finish() {
	if e.last != "" {
		e.raw(terminal.Reset)
		e.last = ""
	}
}

// rows returns the number of output rows including the frame
func (c *Canvas) rows() int {
	if _, framed := c.border(); framed {
		return c.height + 2
	}
	return c.height
}

// emitRows writes every output row in row-major order; lineStart runs before each row
func (c *Canvas) emitRows(e *emitter, lineStart func(row int)) error {
	fr, framed := c.border()
	rows := c.rows()

	for ry := 0; ry < rows; ry++ {
		lineStart(ry)

		if framed && (ry == 0 || ry == rows-1) {
			left, right := fr.tl, fr.tr
			if ry != 0 {
				left, right = fr.bl, fr.br
			}
			if err := e.put(left, c.frameFeature); err != nil {
				return err
			}
			for i := 0; i < c.width; i++ {
				if err := e.put(fr.h, c.frameFeature); err != nil {
					return err
				}
			}
			if err := e.put(right, c.frameFeature); err != nil {
				return err
			}
			continue
		}

		y := ry
		if framed {
			y--
			if err := e.put(fr.v, c.frameFeature); err != nil {
				return err
			}
		}
		for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
			if err := e.put(cell.Rune, cell.Feature); err != nil {
				return err
			}
		}
		if framed {
			if err := e.put(fr.v, c.frameFeature); err != nil {
				return err
			}
		}
	}

	e.finish()
	return nil
}

// AppendRender appends the absolute rendering of the canvas to b
func (c *Canvas) AppendRender(b []byte) ([]byte, error) {
	e := newEmitter(c.registry, len(b)+c.rows()*(c.width+16))
	e.buf = append(e.buf, b...)

	// Every row start is a non-sequential jump
	err := c.emitRows(e, func(row int) {
		e.buf = terminal.AppendMoveTo(e.buf, c.originX, c.originY+row)
	})
	if err != nil {
		return b, err
	}
	return e.buf, nil
}

// Render writes the grid at its origin using absolute cursor positioning.
// Output depends only on the current grid state, origin and frame.
// Nothing is written if a cell holds an unsupported feature.
func (c *Canvas) Render(w io.Writer) error {
	out, err := c.AppendRender(nil)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("canvas render: %w", err)
	}
	return nil
}

// Refresh writes the grid inline at the cursor, rows separated by CRLF.
// After the first successful call it first moves back to the first row, redrawing in place.
func (c *Canvas) Refresh(w io.Writer) error {
	rows := c.rows()
	e := newEmitter(c.registry, rows*(c.width+8))

	if c.drawn {
		e.raw(terminal.Up(rows - 1))
		e.raw("\r")
	}

	err := c.emitRows(e, func(row int) {
		if row > 0 {
			e.raw("\r\n")
		}
	})
	if err != nil {
		return err
	}

	if _, err := w.Write(e.buf); err != nil {
		return fmt.Errorf("canvas refresh: %w", err)
	}
	c.drawn = true
	return nil
}
