package canvas

import (
	"errors"
	"math"
)

// ErrZeroScale is returned when a plot scale is zero or not finite
var ErrZeroScale = errors.New("plot scale must be finite and non-zero")

// Plot is a Canvas addressed in real coordinates.
//
// Column x represents realX = offsetX + x*scaleX and row y represents
// realY = offsetY + y*scaleY. Real values map back to the grid with floor.
// Rows grow downward, as on the terminal.
type Plot struct {
	*Canvas

	offsetX, offsetY float64
	scaleX, scaleY   float64
}

// NewPlot creates a plot with offset (0,0) and scale (1,1)
func NewPlot(width, height int, opts ...Option) (*Plot, error) {
	c, err := New(width, height, opts...)
	if err != nil {
		return nil, err
	}
	return &Plot{
		Canvas: c,
		scaleX: 1,
		scaleY: 1,
	}, nil
}

// SetOffset sets the real coordinates represented by grid origin
func (p *Plot) SetOffset(x, y float64) {
	p.offsetX, p.offsetY = x, y
}

// SetScale sets the real distance covered by one grid step.
// Zero or non-finite values are rejected and the previous scale kept.
func (p *Plot) SetScale(x, y float64) error {
	if !finite(x) || !finite(y) || x == 0 || y == 0 {
		return ErrZeroScale
	}
	p.scaleX, p.scaleY = x, y
	return nil
}

func (p *Plot) OffsetX() float64 { return p.offsetX }
func (p *Plot) OffsetY() float64 { return p.offsetY }
func (p *Plot) ScaleX() float64  { return p.scaleX }
func (p *Plot) ScaleY() float64  { return p.scaleY }

// Real returns the real coordinates of grid position (x, y)
func (p *Plot) Real(x, y int) (float64, float64) {
	return p.offsetX + float64(x)*p.scaleX, p.offsetY + float64(y)*p.scaleY
}

// Grid maps real coordinates to a grid position; ok is false off-canvas or for non-finite input
func (p *Plot) Grid(realX, realY float64) (x, y int, ok bool) {
	fx, okX := p.column(realX)
	fy, okY := p.row(realY)
	if !okX || !okY {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	return x, y, p.inBounds(x, y)
}

// column converts a real x to a grid column without clamping
func (p *Plot) column(realX float64) (float64, bool) {
	v := math.Floor((realX - p.offsetX) / p.scaleX)
	return v, finite(v) && math.Abs(v) < math.MaxInt32
}

// row converts a real y to a grid row without clamping
func (p *Plot) row(realY float64) (float64, bool) {
	v := math.Floor((realY - p.offsetY) / p.scaleY)
	return v, finite(v) && math.Abs(v) < math.MaxInt32
}

// Draw plots f once per column with rune r. Column x samples offsetX + x*scaleX, so the
// columns [0, width) cover exactly the representable domain for either sign of scaleX.
// Columns where f is not finite are skipped. Points whose row is 0 or beyond the
// last row are clipped silently. Calls accumulate; later draws overwrite earlier ones.
func (p *Plot) Draw(f func(float64) float64, r rune, feature string) {
	for x := 0; x < p.width; x++ {
		realX := p.offsetX + float64(x)*p.scaleX
		realY := f(realX)
		if !finite(realY) {
			continue
		}
		fy, ok := p.row(realY)
		if !ok || fy <= 0 || fy >= float64(p.height) {
			continue
		}
		p.Put(x, int(fy), r, feature)
	}
}

// DrawAxes marks the row holding real y = 0 and the column holding real x = 0,
// when they fall on the canvas
func (p *Plot) DrawAxes(r rune, feature string) {
	if fy, ok := p.row(0); ok && fy >= 0 && fy < float64(p.height) {
		p.HLine(0, p.width-1, int(fy), r, feature)
	}
	if fx, ok := p.column(0); ok && fx >= 0 && fx < float64(p.width) {
		p.VLine(int(fx), 0, p.height-1, r, feature)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
