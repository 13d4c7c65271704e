package gui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/litescript/ls-orrery/internal/frame"
)

// Face7x13 metrics.
const (
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
	lineSpacing = 1.25
)

// screen adapts an ebiten image to frame.Surface. The logical surface may
// be taller than the window; offY is the scroll offset and anything
// outside the window is skipped.
type screen struct {
	dst   *ebiten.Image
	offY  float64
	viewH float64

	w, h   int
	cursor frame.Cursor
}

func (s *screen) Size() (int, int) {
	return s.w, s.h
}

func (s *screen) Resize(w, h int) {
	s.w, s.h = w, h
}

func (s *screen) Clear(bg color.Color) {
	s.dst.Fill(bg)
}

func (s *screen) visible(top, bottom float64) bool {
	return bottom >= s.offY && top <= s.offY+s.viewH
}

func (s *screen) Circle(cx, cy, d float64, fill color.Color) {
	r := math.Max(d/2, 0.5)
	if !s.visible(cy-r, cy+r) {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy-s.offY), float32(r), fill, true)
}

func (s *screen) Rect(x, y, w, h float64, p frame.Paint) {
	if !s.visible(y, y+h) {
		return
	}
	fx, fy, fw, fh := float32(x), float32(y-s.offY), float32(w), float32(h)
	if p.Fill != nil {
		vector.DrawFilledRect(s.dst, fx, fy, fw, fh, p.Fill, true)
	}
	if p.Stroke != nil && p.StrokeWeight > 0 {
		vector.StrokeRect(s.dst, fx, fy, fw, fh, float32(p.StrokeWeight), p.Stroke, true)
	}
}

// Text wraps s to the box and draws each line centered. The bitmap face
// is scaled to the requested size.
func (s *screen) Text(str string, x, y, w, h float64, st frame.TextStyle) {
	size := st.Size
	if size <= 0 {
		size = glyphHeight
	}
	scale := size / glyphHeight
	charW := glyphWidth * scale
	lineH := glyphHeight * scale * lineSpacing

	cols := int(math.Floor(w / charW))
	if cols < 1 || st.Color == nil {
		return
	}
	lines := frame.WrapText(str, cols)

	top := y + (h-float64(len(lines))*lineH)/2
	if top < y {
		top = y
	}
	if !s.visible(top, top+float64(len(lines))*lineH) {
		return
	}

	for i, line := range lines {
		if line == "" {
			continue
		}
		lw := float64(len([]rune(line))) * charW
		lx := x + (w-lw)/2
		baseline := top + float64(i)*lineH + (lineH-glyphHeight*scale)/2 + glyphAscent*scale

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(lx, baseline-s.offY)
		op.ColorScale.ScaleWithColor(st.Color)
		op.Filter = ebiten.FilterLinear
		text.DrawWithOptions(s.dst, line, basicfont.Face7x13, op)
	}
}

func (s *screen) SetCursor(c frame.Cursor) {
	if c == s.cursor {
		return
	}
	s.cursor = c
	switch c {
	case frame.CursorPointer:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
