package ui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/frame"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func newCanvas(w, h int) *Canvas {
	c := NewCanvas()
	c.Resize(w, h)
	c.Clear(black)
	return c
}

func TestCanvasRows(t *testing.T) {
	tests := []struct {
		h    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{7, 4},
		{44, 22},
	}

	for _, tt := range tests {
		c := newCanvas(4, tt.h)
		if got := c.Rows(); got != tt.want {
			t.Errorf("Rows() with h=%d = %d, want %d", tt.h, got, tt.want)
		}
	}
}

func TestCanvasCircle(t *testing.T) {
	c := newCanvas(20, 20)
	c.Circle(10, 10, 8, red)

	if got := c.At(10, 10); got != red {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := c.At(10, 7); got != red {
		t.Errorf("pixel inside radius = %v, want red", got)
	}
	if got := c.At(1, 1); got != black {
		t.Errorf("pixel outside circle = %v, want background", got)
	}
	if got := c.At(15, 10); got != black {
		t.Errorf("pixel just past radius = %v, want background", got)
	}
}

func TestCanvasTinyCircleVisible(t *testing.T) {
	c := newCanvas(10, 10)
	c.Circle(3.2, 4.9, 0.3, blue)

	if got := c.At(3, 4); got != blue {
		t.Errorf("tiny circle should cover its center pixel, got %v", got)
	}
}

func TestCanvasCircleClipped(t *testing.T) {
	c := newCanvas(10, 10)
	// Mostly off-canvas; must not panic.
	c.Circle(-50, 5, 120, red)
	c.Circle(5, 500, 4, red)

	if got := c.At(0, 5); got != red {
		t.Errorf("clipped circle should still cover visible pixels, got %v", got)
	}
}

func TestCanvasRect(t *testing.T) {
	c := newCanvas(20, 10)
	c.Rect(2, 2, 10, 6, frame.Paint{Fill: blue, Stroke: red, StrokeWeight: 1})

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"top left corner", 2, 2, red},
		{"top edge", 6, 2, red},
		{"bottom edge", 6, 7, red},
		{"right edge", 11, 4, red},
		{"interior", 6, 4, blue},
		{"outside", 15, 4, black},
		{"below", 6, 8, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCanvasRectFillOnly(t *testing.T) {
	c := newCanvas(10, 10)
	c.Rect(0, 4, 10, 1, frame.Paint{Fill: red})

	for x := 0; x < 10; x++ {
		if got := c.At(x, 4); got != red {
			t.Fatalf("At(%d, 4) = %v, want red", x, got)
		}
	}
	if got := c.At(0, 5); got != black {
		t.Errorf("At(0, 5) = %v, want background", got)
	}
}

func TestCanvasTextCentered(t *testing.T) {
	c := newCanvas(20, 6)
	c.Text("hi", 0, 0, 20, 6, frame.TextStyle{Color: red})

	if got := c.TextAt(9, 1); got != 'h' {
		t.Errorf("TextAt(9, 1) = %q, want 'h'", got)
	}
	if got := c.TextAt(10, 1); got != 'i' {
		t.Errorf("TextAt(10, 1) = %q, want 'i'", got)
	}
	if got := c.TextAt(9, 0); got != 0 {
		t.Errorf("TextAt(9, 0) = %q, want empty", got)
	}
}

func TestCanvasTextWraps(t *testing.T) {
	c := newCanvas(10, 10)
	c.Text("alpha beta", 0, 0, 6, 10, frame.TextStyle{Color: red})

	var rows []string
	for row := 0; row < c.Rows(); row++ {
		var b strings.Builder
		for col := 0; col < 10; col++ {
			if r := c.TextAt(col, row); r != 0 {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			rows = append(rows, b.String())
		}
	}

	if len(rows) != 2 || rows[0] != "alpha" || rows[1] != "beta" {
		t.Errorf("wrapped rows = %q, want [alpha beta]", rows)
	}
}

func TestCanvasClearResetsText(t *testing.T) {
	c := newCanvas(10, 4)
	c.Text("x", 0, 0, 10, 4, frame.TextStyle{Color: red})
	c.Clear(black)

	for col := 0; col < 10; col++ {
		if r := c.TextAt(col, 1); r != 0 {
			t.Fatalf("TextAt(%d, 1) = %q after Clear, want empty", col, r)
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := newCanvas(6, 4)
	c.Rect(0, 0, 6, 1, frame.Paint{Fill: red})
	c.Text("ok", 0, 2, 6, 2, frame.TextStyle{Color: red})

	out := c.Render(0, 3, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Render returned %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "▀") {
		t.Errorf("row with different halves should use half blocks, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "ok") {
		t.Errorf("text row should contain label, got %q", lines[1])
	}
}

func TestCanvasCursor(t *testing.T) {
	c := NewCanvas()
	if c.Cursor() != frame.CursorDefault {
		t.Errorf("initial cursor = %v, want default", c.Cursor())
	}
	c.SetCursor(frame.CursorPointer)
	if c.Cursor() != frame.CursorPointer {
		t.Errorf("cursor = %v, want pointer", c.Cursor())
	}
}
