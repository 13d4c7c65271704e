package ui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/frame"
)

// Canvas is a frame.Surface backed by terminal cells. Each cell shows two
// vertically stacked pixels with the upper half block glyph, so surface
// pixels are roughly square. Text is kept on a separate layer with one
// rune per cell.
type Canvas struct {
	w, h   int
	px     []color.RGBA
	text   []textCell
	bg     color.RGBA
	cursor frame.Cursor
}

type textCell struct {
	r   rune
	fg  color.RGBA
	set bool
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Rows returns the number of terminal rows the canvas occupies.
func (c *Canvas) Rows() int {
	return (c.h + 1) / 2
}

// Size implements frame.Surface.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

// Resize implements frame.Surface.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == c.w && h == c.h {
		return
	}
	c.w, c.h = w, h
	c.px = make([]color.RGBA, w*h)
	c.text = make([]textCell, w*c.Rows())
}

// Clear implements frame.Surface.
func (c *Canvas) Clear(bg color.Color) {
	c.bg = toRGBA(bg)
	for i := range c.px {
		c.px[i] = c.bg
	}
	for i := range c.text {
		c.text[i] = textCell{}
	}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[y*c.w+x] = col
}

// At returns the pixel at (x, y), or the background outside the canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return c.bg
	}
	return c.px[y*c.w+x]
}

// Circle implements frame.Surface. A circle always covers at least the
// pixel containing its center.
func (c *Canvas) Circle(cx, cy, d float64, fill color.Color) {
	col := toRGBA(fill)
	r := d / 2
	x0 := int(math.Max(0, math.Floor(cx-r)))
	x1 := int(math.Min(float64(c.w-1), math.Ceil(cx+r)))
	y0 := int(math.Max(0, math.Floor(cy-r)))
	y1 := int(math.Min(float64(c.h-1), math.Ceil(cy+r)))

	r2 := r * r
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.set(x, y, col)
			}
		}
	}
	c.set(int(math.Floor(cx)), int(math.Floor(cy)), col)
}

// Rect implements frame.Surface.
func (c *Canvas) Rect(x, y, w, h float64, p frame.Paint) {
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	x1, y1 := int(math.Round(x+w)), int(math.Round(y+h))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	if p.Fill != nil {
		col := toRGBA(p.Fill)
		for yy := y0; yy < y1; yy++ {
			for xx := x0; xx < x1; xx++ {
				c.set(xx, yy, col)
			}
		}
	}

	if p.Stroke != nil && p.StrokeWeight > 0 {
		col := toRGBA(p.Stroke)
		t := int(math.Max(1, math.Round(p.StrokeWeight)))
		for yy := y0; yy < y1; yy++ {
			for xx := x0; xx < x1; xx++ {
				if xx < x0+t || xx >= x1-t || yy < y0+t || yy >= y1-t {
					c.set(xx, yy, col)
				}
			}
		}
	}
}

// Text implements frame.Surface. Lines are wrapped to the box width in
// cells and centered in the box; the size hint is ignored.
func (c *Canvas) Text(s string, x, y, w, h float64, st frame.TextStyle) {
	cols := int(math.Floor(w))
	if cols < 1 || c.w == 0 {
		return
	}
	lines := frame.WrapText(s, cols)
	fg := toRGBA(st.Color)

	// Rows are two pixels tall.
	midRow := (y + h/2) / 2
	startRow := int(math.Floor(midRow - float64(len(lines))/2))
	if startRow < int(math.Floor(y/2)) {
		startRow = int(math.Floor(y / 2))
	}

	for i, line := range lines {
		row := startRow + i
		if row < 0 || row >= c.Rows() {
			continue
		}
		runes := []rune(line)
		col := int(math.Floor(x + (w-float64(len(runes)))/2))
		for j, r := range runes {
			cx := col + j
			if cx < 0 || cx >= c.w {
				continue
			}
			c.text[row*c.w+cx] = textCell{r: r, fg: fg, set: true}
		}
	}
}

// SetCursor implements frame.Surface. Terminals have no pointer shape, so
// the hint is shown in the status line instead.
func (c *Canvas) SetCursor(cur frame.Cursor) {
	c.cursor = cur
}

// Cursor returns the last cursor hint.
func (c *Canvas) Cursor() frame.Cursor {
	return c.cursor
}

// TextAt returns the rune on the text layer at (col, row), or 0.
func (c *Canvas) TextAt(col, row int) rune {
	if col < 0 || row < 0 || col >= c.w || row >= c.Rows() {
		return 0
	}
	cell := c.text[row*c.w+col]
	if !cell.set {
		return 0
	}
	return cell.r
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

type cellStyle struct {
	fg, bg color.RGBA
}

// Render draws rows [from, from+n) clipped to width cols.
func (c *Canvas) Render(from, n, cols int) string {
	if cols > c.w {
		cols = c.w
	}
	var b strings.Builder
	for row := from; row < from+n; row++ {
		if row >= c.Rows() {
			b.WriteString(strings.Repeat(" ", cols))
		} else {
			c.renderRow(&b, row, cols)
		}
		if row < from+n-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) renderRow(b *strings.Builder, row, cols int) {
	var run strings.Builder
	var cur cellStyle
	started := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle().Foreground(hexColor(cur.fg)).Background(hexColor(cur.bg))
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for x := 0; x < cols; x++ {
		top := c.At(x, row*2)
		bottom := c.At(x, row*2+1)

		var glyph rune
		var st cellStyle
		if cell := c.text[row*c.w+x]; cell.set {
			glyph, st = cell.r, cellStyle{fg: cell.fg, bg: top}
		} else if top == bottom {
			glyph, st = ' ', cellStyle{fg: top, bg: top}
		} else {
			glyph, st = '▀', cellStyle{fg: top, bg: bottom}
		}

		if !started || st != cur {
			flush()
			cur = st
			started = true
		}
		run.WriteRune(glyph)
	}
	flush()
}
