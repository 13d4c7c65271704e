package frame

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/layout"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// Region labels. Tests and status lines refer to them.
const (
	LabelScale    = "Scale"
	LabelDistance = "Distance"
	LabelCredits  = "Credits"
	LabelMenu     = "Menu"
	LabelGoBack   = "Go Back"
)

func (d *Driver) text(s Surface, str string, x, y, w, h float64) {
	s.Text(str, x, y, w, h, TextStyle{Size: d.cfg.TextSize, Color: d.cfg.Theme.Text})
}

// button draws a labeled box and registers it as a region.
func (d *Driver) button(s Surface, ptr Pointer, label string, x, y, w, h float64, a action) {
	stroke := d.cfg.Theme.BoxStroke
	if geom.PointInRectangle(ptr.Pos, x, y, w, h) {
		stroke = d.cfg.Theme.BoxHover
	}
	s.Rect(x, y, w, h, Paint{
		Fill:         d.cfg.Theme.BoxFill,
		Stroke:       stroke,
		StrokeWeight: d.cfg.StrokeWeight,
	})
	d.text(s, label, x, y, w, h)
	d.addRect(label, x, y, w, h, a)
}

// cornerButton draws a small button in the top-left corner of the surface.
func (d *Driver) cornerButton(s Surface, ptr Pointer, label string, a action) {
	w := d.cfg.BoxWidth / 2
	h := d.cfg.BoxHeight
	d.button(s, ptr, label, d.cfg.Margin, d.cfg.Margin, w, h, a)
}

func (d *Driver) drawStars(s Surface, w, h float64) {
	if d.starsW != w || d.starsH != h {
		d.stars = Starfield(d.cfg.Stars, w, h, d.cfg.Seed)
		d.starsW, d.starsH = w, h
	}
	for _, st := range d.stars {
		s.Circle(st.X, st.Y, st.Size, st.Color)
	}
}

func (d *Driver) drawMenu(s Surface, ptr Pointer, w, h float64) {
	title := d.cfg.TitleSize * 2
	s.Text("Solar System", 0, h*0.08, w, title, TextStyle{Size: d.cfg.TitleSize, Color: d.cfg.Theme.Sun})

	status := d.app.Status()
	var hint string
	switch {
	case status.Loaded:
		hint = fmt.Sprintf("%d planets loaded", status.Planets)
	case status.Err != nil:
		hint = fmt.Sprintf("Could not load planet data: %v", status.Err)
	default:
		hint = "Loading planet data..."
	}
	s.Text(hint, 0, h*0.08+title, w, d.cfg.TextSize*2, TextStyle{Size: d.cfg.TextSize, Color: d.cfg.Theme.Dim})

	bw := math.Min(d.cfg.BoxWidth, w*0.6)
	bh := d.cfg.BoxHeight
	gap := bh / 2
	x := (w - bw) / 2
	y := h/2 - (3*bh+2*gap)/2

	items := []struct {
		label string
		mode  state.ViewMode
	}{
		{LabelScale, state.ModeScale},
		{LabelDistance, state.ModeDistance},
		{LabelCredits, state.ModeCredits},
	}
	for i, it := range items {
		d.button(s, ptr, it.label, x, y+float64(i)*(bh+gap), bw, bh, action{kind: actionMode, mode: it.mode})
	}
}

func (d *Driver) drawScale(s Surface, ptr Pointer, lay layout.Result) {
	if lay.Empty {
		w, h := s.Size()
		d.text(s, "Waiting for planet data...", 0, 0, float64(w), float64(h))
		d.cornerButton(s, ptr, LabelMenu, action{kind: actionMode, mode: state.ModeUninitialized})
		return
	}

	s.Circle(lay.Sun.Center.X, lay.Sun.Center.Y, lay.Sun.Diameter, d.cfg.Theme.Sun)

	for _, b := range lay.Bodies {
		s.Circle(b.Center.X, b.Center.Y, b.Diameter, b.Planet.RGBA())

		// Name to the right of the planet.
		lx := b.Center.X + b.Radius() + d.cfg.Margin
		s.Text(b.Planet.Name, lx, b.Center.Y-d.cfg.TextSize, d.cfg.BoxWidth, d.cfg.TextSize*2,
			TextStyle{Size: d.cfg.TextSize, Color: d.cfg.Theme.Dim})

		d.addBody(b.Planet.Name, b, action{kind: actionSelect, planet: b.Planet})
	}

	d.cornerButton(s, ptr, LabelMenu, action{kind: actionMode, mode: state.ModeUninitialized})
}

func (d *Driver) drawDetail(s Surface, ptr Pointer, w, h float64) {
	p := d.selected
	short := geom.ShortestSide(w, h)

	diam := short * 0.3
	top := h * 0.06
	s.Circle(w/2, top+diam/2, diam, p.RGBA())

	textTop := top + diam + d.cfg.Margin
	bh := d.cfg.BoxHeight
	textH := h - textTop - bh - 3*d.cfg.Margin
	if textH < d.cfg.TextSize*2 {
		textH = d.cfg.TextSize * 2
	}
	d.text(s, p.Details(), w*0.1, textTop, w*0.8, textH)

	bw := math.Min(d.cfg.BoxWidth, w*0.6)
	d.button(s, ptr, LabelGoBack, (w-bw)/2, h-bh-d.cfg.Margin, bw, bh, action{kind: actionClearSelection})
}

func (d *Driver) drawDistance(s Surface, ptr Pointer, lay layout.Result, w, h float64) {
	if lay.Empty {
		d.text(s, "Waiting for planet data...", 0, 0, w, h)
		d.cornerButton(s, ptr, LabelMenu, action{kind: actionMode, mode: state.ModeUninitialized})
		return
	}

	axisY := lay.Sun.Center.Y
	s.Rect(lay.Sun.Center.X, axisY, w-lay.Sun.Center.X, 1, Paint{Fill: d.cfg.Theme.Axis})
	s.Circle(lay.Sun.Center.X, axisY, lay.Sun.Diameter, d.cfg.Theme.Sun)

	// Labels alternate above and below the axis so neighbours don't collide.
	for i, b := range lay.Bodies {
		s.Circle(b.Center.X, b.Center.Y, b.Diameter, b.Planet.RGBA())

		ly := b.Center.Y - b.Radius() - d.cfg.Margin - d.cfg.TextSize*2
		if i%2 == 1 {
			ly = b.Center.Y + b.Radius() + d.cfg.Margin
		}
		lw := d.cfg.BoxWidth / 2
		s.Text(b.Planet.Name, b.Center.X-lw/2, ly, lw, d.cfg.TextSize*2,
			TextStyle{Size: d.cfg.TextSize, Color: d.cfg.Theme.Dim})
	}

	scale := fmt.Sprintf("%.1f million km per pixel", 1/(lay.DistanceMultiplier*1e6))
	if lay.DistanceMultiplier == 0 {
		scale = "all planets at the sun"
	}
	s.Text(scale, 0, h-d.cfg.TextSize*3, w, d.cfg.TextSize*2, TextStyle{Size: d.cfg.TextSize, Color: d.cfg.Theme.Dim})

	d.cornerButton(s, ptr, LabelMenu, action{kind: actionMode, mode: state.ModeUninitialized})
}

func (d *Driver) drawCredits(s Surface, ptr Pointer, w, h float64) {
	credits := fmt.Sprintf("Solar System Visualizer v%s\n\n"+
		"Planet data: NASA planetary fact sheets\n"+
		"Terminal rendering: Bubble Tea and Lip Gloss\n"+
		"Window rendering: Ebitengine\n\n"+
		"Click a planet in the scale view to learn more about it.",
		version.Version)
	d.text(s, credits, w*0.1, h*0.1, w*0.8, h*0.6)

	bw := math.Min(d.cfg.BoxWidth, w*0.6)
	bh := d.cfg.BoxHeight
	d.button(s, ptr, LabelGoBack, (w-bw)/2, h-bh-d.cfg.Margin*2, bw, bh, action{kind: actionMode, mode: state.ModeUninitialized})
}
