// Package canvas provides a character grid with per-cell display features that renders
// itself to ANSI terminals, and a plotting variant mapping real coordinates onto the grid.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/osmanip/terminal"
)

// ErrInvalidDimension is matched by InvalidDimensionError via errors.Is
var ErrInvalidDimension = errors.New("invalid canvas dimension")

// InvalidDimensionError reports a zero or negative canvas size
type InvalidDimensionError struct {
	Width, Height int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid canvas dimension %dx%d", e.Width, e.Height)
}

func (e *InvalidDimensionError) Is(target error) bool {
	return target == ErrInvalidDimension
}

// ReplacementRune is stored in place of runes that do not occupy exactly one column
const ReplacementRune = '?'

// Cell is one grid position
type Cell struct {
	Rune    rune
	Feature string // composite feature string, "" is terminal default
}

// blank is the default cell
var blank = Cell{Rune: ' '}

// widthCond measures runes independent of locale so grids render identically everywhere
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Canvas is a dense width×height grid of cells, row-major.
//
// Canvas is NOT safe for concurrent mutation; a single writer is assumed.
// Coordinates outside [0,width)×[0,height) are ignored by every drawing method.
type Canvas struct {
	cells  []Cell
	width  int
	height int

	registry *terminal.Registry

	originX, originY int
	frame            FrameStyle
	frameFeature     string

	// drawn is set after the first successful Refresh
	drawn bool
}

// Option configures a Canvas at construction
type Option func(*Canvas)

// WithRegistry selects the feature registry used when rendering
func WithRegistry(r *terminal.Registry) Option {
	return func(c *Canvas) {
		c.registry = r
	}
}

// WithOrigin sets the screen position (0-indexed) of the canvas top-left corner for Render
func WithOrigin(x, y int) Option {
	return func(c *Canvas) {
		c.originX, c.originY = max(x, 0), max(y, 0)
	}
}

// WithFrame draws a border around the grid when rendering
func WithFrame(style FrameStyle, feature string) Option {
	return func(c *Canvas) {
		c.frame = style
		c.frameFeature = feature
	}
}

// New creates a canvas with all cells blank
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidDimensionError{Width: width, Height: height}
	}

	c := &Canvas{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	c.Clear()

	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = terminal.Default()
	}
	return c, nil
}

// Size returns the width and height of the canvas
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Registry returns the feature registry used for rendering
func (c *Canvas) Registry() *terminal.Registry {
	return c.registry
}

// SetFrame changes the border drawn around the grid
func (c *Canvas) SetFrame(style FrameStyle, feature string) {
	c.frame = style
	c.frameFeature = feature
}

// SetOrigin moves the absolute render position
func (c *Canvas) SetOrigin(x, y int) {
	c.originX, c.originY = max(x, 0), max(y, 0)
}

// inBounds returns true if in grid bounds
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the cell at (x, y); ok is false out of range
func (c *Canvas) Get(x, y int) (cell Cell, ok bool) {
	if !c.inBounds(x, y) {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

// Put overwrites one cell. Out of range is a no-op.
// Runes that are not exactly one column wide are stored as ReplacementRune.
func (c *Canvas) Put(x, y int, r rune, feature string) {
	if !c.inBounds(x, y) {
		return
	}
	if widthCond.RuneWidth(r) != 1 {
		r = ReplacementRune
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Feature: feature}
}

// Clear resets every cell to blank with no feature
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// Fill sets every cell to the same rune and feature
func (c *Canvas) Fill(r rune, feature string) {
	if widthCond.RuneWidth(r) != 1 {
		r = ReplacementRune
	}
	for i := range c.cells {
		c.cells[i] = Cell{Rune: r, Feature: feature}
	}
}

// String returns the grid characters without escapes, rows joined by newlines
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
			sb.WriteRune(cell.Rune)
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
