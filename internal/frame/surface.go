// Package frame drives one visualizer frame: it sizes the drawing surface,
// lays out the active screen, hit-tests the pointer and dispatches clicks.
// Hosts supply the Surface and the Pointer sample.
package frame

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/geom"
)

// Cursor is the pointer shape hint.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Paint describes how a rectangle is filled and outlined. A nil color
// disables that part.
type Paint struct {
	Fill         color.Color
	Stroke       color.Color
	StrokeWeight float64
}

// TextStyle describes a text block.
type TextStyle struct {
	Size  float64
	Color color.Color
}

// Surface is the immediate-mode drawing target. Coordinates are surface
// pixels with the origin at the top-left.
type Surface interface {
	// Size returns the current surface size.
	Size() (w, h int)

	// Resize sets the surface size. Content is discarded.
	Resize(w, h int)

	// Clear fills the whole surface with bg.
	Clear(bg color.Color)

	// Circle draws a filled circle of diameter d centered at (cx, cy).
	Circle(cx, cy, d float64, fill color.Color)

	// Rect draws a w×h rectangle with top-left (x, y).
	Rect(x, y, w, h float64, p Paint)

	// Text draws s word-wrapped to the box and centered in it.
	Text(s string, x, y, w, h float64, st TextStyle)

	// SetCursor sets the pointer shape hint.
	SetCursor(c Cursor)
}

// Pointer is one sample of the mouse in surface coordinates.
type Pointer struct {
	Pos  geom.Coordinate
	Down bool
}

// Viewport is the visible window size. Proportional sizing is based on it,
// not on the (possibly taller) surface.
type Viewport struct {
	Width  float64
	Height float64
}

// WrapText breaks s into lines of at most cols cells, preserving explicit
// newlines. Hosts use it to implement Surface.Text.
func WrapText(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		wrapped := lipgloss.NewStyle().Width(cols).Render(para)
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, strings.TrimRight(l, " "))
		}
	}
	return lines
}
