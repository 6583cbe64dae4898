package canvas

import "github.com/rivo/uniseg"

// Line draws a line between two points using Bresenham's algorithm, clipped per point
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, feature string) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		c.Put(x0, y0, r, feature)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// HLine draws a horizontal line from x0 to x1 inclusive
func (c *Canvas) HLine(x0, x1, y int, r rune, feature string) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	// Clip to canvas bounds
	x0 = max(x0, 0)
	x1 = min(x1, c.width-1)
	for x := x0; x <= x1; x++ {
		c.Put(x, y, r, feature)
	}
}

// VLine draws a vertical line from y0 to y1 inclusive
func (c *Canvas) VLine(x, y0, y1 int, r rune, feature string) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	y0 = max(y0, 0)
	y1 = min(y1, c.height-1)
	for y := y0; y <= y1; y++ {
		c.Put(x, y, r, feature)
	}
}

// Rect draws the outline of a w×h rectangle with its top-left corner at (x, y)
func (c *Canvas) Rect(x, y, w, h int, r rune, feature string) {
	if w <= 0 || h <= 0 {
		return
	}
	c.HLine(x, x+w-1, y, r, feature)
	c.HLine(x, x+w-1, y+h-1, r, feature)
	c.VLine(x, y, y+h-1, r, feature)
	c.VLine(x+w-1, y, y+h-1, r, feature)
}

// Text writes s starting at (x, y), one cell per grapheme cluster, clipped at the edges
func (c *Canvas) Text(x, y int, s string, feature string) {
	if y < 0 || y >= c.height {
		return
	}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if x >= c.width {
			return
		}
		c.Put(x, y, g.Runes()[0], feature)
		x++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
