package frame

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/layout"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/planet"
	"github.com/litescript/ls-orrery/internal/state"
)

type actionKind int

const (
	actionMode actionKind = iota
	actionSelect
	actionClearSelection
)

// action is what a click on a region does. Exactly one kind per region.
type action struct {
	kind   actionKind
	mode   state.ViewMode
	planet *planet.Planet
}

// region is an interactive area drawn during the current frame.
type region struct {
	label    string
	contains func(geom.Coordinate) bool
	act      action
}

// Info describes the most recent frame. Hosts use it for status lines,
// tests use it to check layout and hit-testing.
type Info struct {
	Mode          state.ViewMode
	SurfaceWidth  int
	SurfaceHeight int
	Layout        layout.Result
	Hovered       string
	Cursor        Cursor
	Regions       []string
	PressEdge     bool
}

// Driver owns the per-frame mutable state: view mode, press-edge flag
// and the selected planet. It must only be used from the frame goroutine.
type Driver struct {
	cfg     Config
	app     *state.App
	machine *state.Machine
	log     *logging.Logger

	selected *planet.Planet
	wasDown  bool

	regions []region
	stars   []Star
	starsW  float64
	starsH  float64

	info Info
}

// New creates a driver in the menu screen.
func New(app *state.App, cfg Config, log *logging.Logger) *Driver {
	if log == nil {
		log = logging.Discard()
	}
	return &Driver{
		cfg:     cfg,
		app:     app,
		machine: state.NewMachine(app.Ready),
		log:     log,
	}
}

// Mode returns the active view mode.
func (d *Driver) Mode() state.ViewMode {
	return d.machine.Mode()
}

// Selected returns the planet being inspected, or nil.
func (d *Driver) Selected() *planet.Planet {
	return d.selected
}

// Info returns a description of the last frame drawn.
func (d *Driver) Info() Info {
	return d.info
}

// Request asks for a view transition outside of a click (keyboard
// shortcuts). Rejections are logged and returned.
func (d *Driver) Request(mode state.ViewMode) error {
	err := d.machine.Request(mode)
	if err != nil {
		d.log.Warn("transition ignored: %v", err)
		return err
	}
	d.selected = nil
	d.log.Debug("view mode -> %s", mode)
	return nil
}

// Select inspects the named planet. It only applies in Scale mode and to
// planets in the loaded catalog.
func (d *Driver) Select(name string) bool {
	if d.Mode() != state.ModeScale {
		return false
	}
	p := d.app.Catalog().Get(name)
	if p == nil {
		return false
	}
	d.selected = p
	return true
}

// Back clears the selection if there is one, otherwise returns to the menu.
func (d *Driver) Back() {
	if d.selected != nil {
		d.selected = nil
		return
	}
	if d.Mode() != state.ModeUninitialized {
		_ = d.Request(state.ModeUninitialized)
	}
}

// Frame runs one frame: size, clear, draw the active screen, hit-test,
// update the cursor and handle at most one click.
func (d *Driver) Frame(s Surface, vp Viewport, ptr Pointer) {
	mode := d.Mode()
	mode.MustValid()

	// MinWidth only floors the surface; layouts fit the real window.
	width := math.Max(vp.Width, d.cfg.MinWidth)
	planets := d.app.Catalog().Planets()

	// The scale layout decides the surface height, so it is computed
	// before resizing and reused for drawing.
	var lay layout.Result
	height := vp.Height
	switch mode {
	case state.ModeUninitialized:
	case state.ModeScale:
		if d.selected == nil {
			lay = layout.Scale(planets, vp.Width, vp.Height)
			if !lay.Empty {
				height = math.Ceil(lay.RequiredHeight)
			}
		}
	case state.ModeDistance:
		lay = layout.Distance(planets, vp.Width, vp.Height)
	case state.ModeCredits:
		height = math.Max(vp.Height, d.cfg.CreditsMinHeight)
	default:
		panic(fmt.Sprintf("frame: unhandled view mode %s", mode))
	}

	s.Resize(int(width), int(math.Ceil(height)))
	s.Clear(d.cfg.Theme.Background)
	d.regions = d.regions[:0]

	switch mode {
	case state.ModeUninitialized:
		d.drawStars(s, width, height)
		d.drawMenu(s, ptr, width, height)
	case state.ModeScale:
		if d.selected != nil {
			d.drawDetail(s, ptr, width, height)
		} else {
			d.drawScale(s, ptr, lay)
		}
	case state.ModeDistance:
		d.drawDistance(s, ptr, lay, width, height)
	case state.ModeCredits:
		d.drawStars(s, width, height)
		d.drawCredits(s, ptr, width, height)
	}

	hovered := d.hit(ptr.Pos)
	cursor := CursorDefault
	if hovered != nil {
		cursor = CursorPointer
	}
	s.SetCursor(cursor)

	edge := ptr.Down && !d.wasDown
	d.wasDown = ptr.Down

	sw, sh := s.Size()
	d.info = Info{
		Mode:          mode,
		SurfaceWidth:  sw,
		SurfaceHeight: sh,
		Layout:        lay,
		Cursor:        cursor,
		PressEdge:     edge,
		Regions:       d.regionLabels(),
	}
	if hovered != nil {
		d.info.Hovered = hovered.label
	}

	if edge && hovered != nil {
		d.perform(hovered.act)
	}
}

// hit returns the topmost region under p. Regions drawn later are on top.
func (d *Driver) hit(p geom.Coordinate) *region {
	for i := len(d.regions) - 1; i >= 0; i-- {
		if d.regions[i].contains(p) {
			return &d.regions[i]
		}
	}
	return nil
}

func (d *Driver) regionLabels() []string {
	labels := make([]string, len(d.regions))
	for i, r := range d.regions {
		labels[i] = r.label
	}
	return labels
}

func (d *Driver) perform(a action) {
	switch a.kind {
	case actionMode:
		_ = d.Request(a.mode)
	case actionSelect:
		d.selected = a.planet
		d.log.Debug("selected %s", a.planet.Name)
	case actionClearSelection:
		d.selected = nil
	default:
		panic(fmt.Sprintf("frame: unknown action kind %d", a.kind))
	}
}

func (d *Driver) addRect(label string, x, y, w, h float64, a action) {
	d.regions = append(d.regions, region{
		label: label,
		contains: func(p geom.Coordinate) bool {
			return geom.PointInRectangle(p, x, y, w, h)
		},
		act: a,
	})
}

func (d *Driver) addBody(label string, b layout.Body, a action) {
	d.regions = append(d.regions, region{
		label:    label,
		contains: b.Contains,
		act:      a,
	})
}
