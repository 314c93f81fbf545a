// Package plot draws joystick traces on a braille character canvas. Each
// terminal cell holds a 2x4 grid of dots, and the plotted area always spans
// [-1, 1] on both axes.
package plot

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const brailleBase = 0x2800

// dotBits[row][col] is the braille bit of a dot inside a cell.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Layer orders what is drawn in a cell. Higher layers win the cell color.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerGrid
	LayerPrevious
	LayerCurrent
)

// Styles colors each layer and the position marker.
type Styles struct {
	Grid     lipgloss.Style
	Previous lipgloss.Style
	Current  lipgloss.Style
	Marker   lipgloss.Style
}

// Canvas is a fixed-size braille drawing surface.
type Canvas struct {
	cols, rows int
	dots       []uint8
	layers     []Layer

	marker    rune
	markerCol int
	markerRow int
	hasMarker bool
}

// New returns an empty canvas of cols x rows terminal cells. Sizes below one
// cell are raised to one.
func New(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Canvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]uint8, cols*rows),
		layers: make([]Layer, cols*rows),
		marker: '●',
	}
}

// Clone returns an independent copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := *c
	out.dots = append([]uint8(nil), c.dots...)
	out.layers = append([]Layer(nil), c.layers...)
	return &out
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// DotWidth returns the width in dots.
func (c *Canvas) DotWidth() int { return c.cols * 2 }

// DotHeight returns the height in dots.
func (c *Canvas) DotHeight() int { return c.rows * 4 }

// SetMarkerRune changes the rune drawn at the marked position.
func (c *Canvas) SetMarkerRune(r rune) { c.marker = r }

// Clear erases all dots and the marker.
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
		c.layers[i] = LayerNone
	}
	c.hasMarker = false
}

// Set turns on the dot at (px, py), with py growing downwards. Dots outside
// the canvas are ignored.
func (c *Canvas) Set(px, py int, layer Layer) {
	if px < 0 || py < 0 || px >= c.DotWidth() || py >= c.DotHeight() {
		return
	}
	i := (py/4)*c.cols + px/2
	c.dots[i] |= dotBits[py%4][px%2]
	if layer > c.layers[i] {
		c.layers[i] = layer
	}
}

// IsSet reports whether the dot at (px, py) is on.
func (c *Canvas) IsSet(px, py int) bool {
	if px < 0 || py < 0 || px >= c.DotWidth() || py >= c.DotHeight() {
		return false
	}
	return c.dots[(py/4)*c.cols+px/2]&dotBits[py%4][px%2] != 0
}

// Line draws a straight line between two dots using Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, layer Layer) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.Set(x0, y0, layer)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// ToDot maps a position in [-1, 1] x [-1, 1] to dot coordinates, with +y at
// the top. Values outside the range are clamped and NaN maps to the center.
func (c *Canvas) ToDot(x, y float64) (int, int) {
	return scale(x, c.DotWidth()), c.DotHeight() - 1 - scale(y, c.DotHeight())
}

func scale(v float64, n int) int {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(-1, math.Min(1, v))
	p := int(math.Round((v + 1) / 2 * float64(n-1)))
	return p
}

// Polyline connects consecutive points of xs and ys. The shorter slice
// bounds the number of points.
func (c *Canvas) Polyline(xs, ys []float64, layer Layer) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return
	}
	px, py := c.ToDot(xs[0], ys[0])
	c.Set(px, py, layer)
	for i := 1; i < n; i++ {
		qx, qy := c.ToDot(xs[i], ys[i])
		c.Line(px, py, qx, qy, layer)
		px, py = qx, qy
	}
}

// Grid draws the x and y axes through the origin.
func (c *Canvas) Grid() {
	cx, cy := c.ToDot(0, 0)
	for px := 0; px < c.DotWidth(); px += 2 {
		c.Set(px, cy, LayerGrid)
	}
	for py := 0; py < c.DotHeight(); py += 2 {
		c.Set(cx, py, LayerGrid)
	}
}

// Mark places the marker rune in the cell containing (x, y).
func (c *Canvas) Mark(x, y float64) {
	px, py := c.ToDot(x, y)
	c.markerCol, c.markerRow = px/2, py/4
	c.hasMarker = true
}

// Lines returns the canvas as plain text, one string per row.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var b strings.Builder
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.cellRune(col, row))
		}
		lines[row] = b.String()
	}
	return lines
}

// Render returns the canvas with each cell styled by its top layer.
func (c *Canvas) Render(styles Styles) string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var b strings.Builder
		for col := 0; col < c.cols; col++ {
			r := string(c.cellRune(col, row))
			switch {
			case c.isMarker(col, row):
				b.WriteString(styles.Marker.Render(r))
			case c.layers[row*c.cols+col] == LayerCurrent:
				b.WriteString(styles.Current.Render(r))
			case c.layers[row*c.cols+col] == LayerPrevious:
				b.WriteString(styles.Previous.Render(r))
			case c.layers[row*c.cols+col] == LayerGrid:
				b.WriteString(styles.Grid.Render(r))
			default:
				b.WriteString(r)
			}
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) isMarker(col, row int) bool {
	return c.hasMarker && col == c.markerCol && row == c.markerRow
}

func (c *Canvas) cellRune(col, row int) rune {
	if c.isMarker(col, row) {
		return c.marker
	}
	return rune(brailleBase + int(c.dots[row*c.cols+col]))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
