package frame

import (
	"bytes"
	"context"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/planet"
	"github.com/litescript/ls-orrery/internal/state"
)

// op is one recorded drawing call.
type op struct {
	kind       string
	x, y, w, h float64
	text       string
	fill       color.Color
}

// recorder is a Surface that remembers what was drawn in the last frame.
type recorder struct {
	w, h    int
	ops     []op
	cursor  Cursor
	resizes int
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Resize(w, h int) {
	r.w, r.h = w, h
	r.ops = r.ops[:0]
	r.resizes++
}

func (r *recorder) Clear(bg color.Color) {
	r.ops = append(r.ops, op{kind: "clear", fill: bg})
}

func (r *recorder) Circle(cx, cy, d float64, fill color.Color) {
	r.ops = append(r.ops, op{kind: "circle", x: cx, y: cy, w: d, h: d, fill: fill})
}

func (r *recorder) Rect(x, y, w, h float64, p Paint) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, w: w, h: h, fill: p.Fill})
}

func (r *recorder) Text(s string, x, y, w, h float64, st TextStyle) {
	r.ops = append(r.ops, op{kind: "text", x: x, y: y, w: w, h: h, text: s, fill: st.Color})
}

func (r *recorder) SetCursor(c Cursor) { r.cursor = c }

// center returns the middle of the box whose label is text.
func (r *recorder) center(t *testing.T, text string) geom.Coordinate {
	t.Helper()
	for _, o := range r.ops {
		if o.kind == "text" && o.text == text {
			return geom.Pt(o.x+o.w/2, o.y+o.h/2)
		}
	}
	t.Fatalf("no text %q drawn", text)
	return geom.Coordinate{}
}

func (r *recorder) has(text string) bool {
	for _, o := range r.ops {
		if o.kind == "text" && strings.Contains(o.text, text) {
			return true
		}
	}
	return false
}

var vp800 = Viewport{Width: 800, Height: 600}

func newTestDriver(t *testing.T, loaded bool) (*Driver, *state.App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.New(logging.LevelDebug)
	log.SetOutput(&buf)

	app := state.NewApp(state.DefaultConfig())
	if loaded {
		out := state.OutcomeFrom(planet.EmbeddedSource{}.Load(context.Background()))
		if err := app.SetCatalog(out); err != nil {
			t.Fatalf("SetCatalog: %v", err)
		}
	}
	return New(app, DefaultConfig(), log), app, &buf
}

// click runs a press frame followed by a release frame at p.
func click(d *Driver, s *recorder, vp Viewport, p geom.Coordinate) {
	d.Frame(s, vp, Pointer{Pos: p, Down: true})
	d.Frame(s, vp, Pointer{Pos: p})
}

func TestDriverStartsOnMenu(t *testing.T) {
	d, _, _ := newTestDriver(t, false)
	s := &recorder{}

	d.Frame(s, Viewport{Width: 500, Height: 400}, Pointer{})

	if d.Mode() != state.ModeUninitialized {
		t.Errorf("mode = %v, want uninitialized", d.Mode())
	}
	if s.w != 688 || s.h != 400 {
		t.Errorf("surface = %dx%d, want 688x400 (width floor)", s.w, s.h)
	}
	if !s.has("Loading planet data") {
		t.Error("menu should show a loading hint before the catalog arrives")
	}
	want := []string{LabelScale, LabelDistance, LabelCredits}
	if got := d.Info().Regions; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("regions = %v, want %v", got, want)
	}
}

func TestDriverRejectsTransitionBeforeReady(t *testing.T) {
	d, app, buf := newTestDriver(t, false)
	s := &recorder{}
	d.Frame(s, vp800, Pointer{})

	click(d, s, vp800, s.center(t, LabelScale))
	if d.Mode() != state.ModeUninitialized {
		t.Errorf("mode = %v, want uninitialized before the catalog loads", d.Mode())
	}
	if !strings.Contains(buf.String(), "transition ignored") {
		t.Errorf("rejected transition not logged: %q", buf.String())
	}

	// Once the catalog lands, the same click works.
	out := state.OutcomeFrom(planet.EmbeddedSource{}.Load(context.Background()))
	if err := app.SetCatalog(out); err != nil {
		t.Fatalf("SetCatalog: %v", err)
	}
	click(d, s, vp800, s.center(t, LabelScale))
	if d.Mode() != state.ModeScale {
		t.Errorf("mode = %v, want scale", d.Mode())
	}
}

func TestDriverPressEdgeFiresOnce(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	d.Frame(s, vp800, Pointer{})
	p := s.center(t, LabelScale)

	for i := 0; i < 5; i++ {
		d.Frame(s, vp800, Pointer{Pos: p, Down: true})
		if i == 0 && !d.Info().PressEdge {
			t.Error("first pressed frame should be a press edge")
		}
		if i > 0 && d.Info().PressEdge {
			t.Errorf("frame %d: held press reported as an edge", i)
		}
	}

	if d.Mode() != state.ModeScale {
		t.Errorf("mode = %v, want scale", d.Mode())
	}
	if n := d.machine.Transitions(); n != 1 {
		t.Errorf("transitions = %d, want exactly 1 for a held press", n)
	}
	if d.Selected() != nil {
		t.Errorf("held press selected %s; a click must do one thing", d.Selected().Name)
	}
}

func TestDriverCursorHint(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	d.Frame(s, vp800, Pointer{})
	p := s.center(t, LabelCredits)

	d.Frame(s, vp800, Pointer{Pos: p})
	if s.cursor != CursorPointer {
		t.Errorf("cursor over Credits = %v, want pointer", s.cursor)
	}
	if d.Info().Hovered != LabelCredits {
		t.Errorf("Hovered = %q, want %q", d.Info().Hovered, LabelCredits)
	}

	d.Frame(s, vp800, Pointer{Pos: geom.Pt(2, 2)})
	if s.cursor != CursorDefault {
		t.Errorf("cursor over background = %v, want default", s.cursor)
	}

	// Hover alone never clicks.
	if d.Mode() != state.ModeUninitialized {
		t.Errorf("hover changed mode to %v", d.Mode())
	}
}

func enterScale(t *testing.T, d *Driver, s *recorder, vp Viewport) {
	t.Helper()
	d.Frame(s, vp, Pointer{})
	click(d, s, vp, s.center(t, LabelScale))
	d.Frame(s, vp, Pointer{})
	if d.Mode() != state.ModeScale {
		t.Fatalf("mode = %v, want scale", d.Mode())
	}
}

func TestDriverScaleSizing(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	enterScale(t, d, s, vp800)

	lay := d.Info().Layout
	if lay.Empty {
		t.Fatal("scale layout is empty")
	}
	if s.w != 800 {
		t.Errorf("surface width = %d, want 800", s.w)
	}
	if want := int(math.Ceil(lay.RequiredHeight)); s.h != want {
		t.Errorf("surface height = %d, want ceil(RequiredHeight) = %d", s.h, want)
	}

	// The last planet drawn plus one spacer ends exactly at RequiredHeight,
	// and nothing is drawn below the surface.
	var last op
	for _, o := range s.ops {
		if o.kind == "circle" {
			last = o
		}
	}
	bottom := last.y + last.h/2
	if math.Abs(bottom+lay.Spacer-lay.RequiredHeight) > 1e-9 {
		t.Errorf("last bottom + spacer = %v, want %v", bottom+lay.Spacer, lay.RequiredHeight)
	}
	if bottom > float64(s.h) {
		t.Errorf("last planet bottom %v is off the %d px surface", bottom, s.h)
	}

	// Largest planet is 90% of the short side.
	var largest float64
	for _, b := range lay.Bodies {
		largest = math.Max(largest, b.Diameter)
	}
	if math.Abs(largest-540) > 1e-9 {
		t.Errorf("largest planet = %v px, want 540", largest)
	}
}

func TestDriverNarrowWindowLayout(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	narrow := Viewport{Width: 500, Height: 900}
	enterScale(t, d, s, narrow)

	// The surface keeps its width floor but the planets fit the window.
	if s.w != 688 {
		t.Errorf("surface width = %d, want 688", s.w)
	}
	lay := d.Info().Layout
	var largest float64
	for _, b := range lay.Bodies {
		largest = math.Max(largest, b.Diameter)
		if b.Center.X-b.Radius() < 0 || b.Center.X+b.Radius() > narrow.Width {
			t.Errorf("%s spans x=[%v, %v], outside the %v px window",
				b.Planet.Name, b.Center.X-b.Radius(), b.Center.X+b.Radius(), narrow.Width)
		}
	}
	if math.Abs(largest-450) > 1e-9 {
		t.Errorf("largest planet = %v px, want 450", largest)
	}

	d.Back()
	if err := d.Request(state.ModeDistance); err != nil {
		t.Fatalf("Request(distance): %v", err)
	}
	d.Frame(s, narrow, Pointer{})
	lay = d.Info().Layout
	var farthest float64
	for _, b := range lay.Bodies {
		farthest = math.Max(farthest, b.Center.X-lay.Sun.Center.X)
	}
	if math.Abs(farthest-450) > 1e-9 {
		t.Errorf("farthest planet offset = %v px, want 450", farthest)
	}
}

func TestDriverSelectAndGoBack(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	enterScale(t, d, s, vp800)

	earth := d.Info().Layout.Bodies[2]
	if earth.Planet.Name != "Earth" {
		t.Fatalf("third body = %s, want Earth", earth.Planet.Name)
	}

	click(d, s, vp800, earth.Center)
	if d.Selected() == nil || d.Selected().Name != "Earth" {
		t.Fatalf("Selected = %v, want Earth", d.Selected())
	}
	if d.Mode() != state.ModeScale {
		t.Errorf("selecting changed mode to %v", d.Mode())
	}

	// Detail screen is drawn at window size.
	d.Frame(s, vp800, Pointer{})
	if s.h != 600 {
		t.Errorf("detail surface height = %d, want 600", s.h)
	}
	if !s.has("Diameter: 12,742 km") {
		t.Error("detail text missing Earth's diameter")
	}

	click(d, s, vp800, s.center(t, LabelGoBack))
	if d.Selected() != nil {
		t.Errorf("Selected = %s after Go Back, want nil", d.Selected().Name)
	}
	if d.Mode() != state.ModeScale {
		t.Errorf("Go Back left scale mode: %v", d.Mode())
	}
}

func TestDriverMenuButtonReturnsToMenu(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	enterScale(t, d, s, vp800)

	click(d, s, vp800, s.center(t, LabelMenu))
	if d.Mode() != state.ModeUninitialized {
		t.Errorf("mode = %v, want uninitialized", d.Mode())
	}
}

func TestDriverCredits(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	short := Viewport{Width: 800, Height: 300}
	d.Frame(s, short, Pointer{})
	click(d, s, short, s.center(t, LabelCredits))
	if d.Mode() != state.ModeCredits {
		t.Fatalf("mode = %v, want credits", d.Mode())
	}

	d.Frame(s, short, Pointer{})
	if s.h != 480 {
		t.Errorf("credits surface height = %d, want 480 floor", s.h)
	}
	if !s.has("Solar System Visualizer") {
		t.Error("credits text missing")
	}

	click(d, s, short, s.center(t, LabelGoBack))
	if d.Mode() != state.ModeUninitialized {
		t.Errorf("mode = %v, want uninitialized", d.Mode())
	}
}

func TestDriverDistance(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}
	d.Frame(s, vp800, Pointer{})
	click(d, s, vp800, s.center(t, LabelDistance))
	d.Frame(s, vp800, Pointer{})

	if d.Mode() != state.ModeDistance {
		t.Fatalf("mode = %v, want distance", d.Mode())
	}
	if s.w != 800 || s.h != 600 {
		t.Errorf("distance surface = %dx%d, want window size", s.w, s.h)
	}
	lay := d.Info().Layout
	if len(lay.Bodies) != 8 {
		t.Errorf("distance layout has %d bodies, want 8", len(lay.Bodies))
	}

	// Planets are not clickable here; a click on one does nothing.
	click(d, s, vp800, lay.Bodies[4].Center)
	if d.Selected() != nil || d.Mode() != state.ModeDistance {
		t.Errorf("click on planet in distance view: mode=%v selected=%v", d.Mode(), d.Selected())
	}

	// No direct jump to scale.
	if err := d.Request(state.ModeScale); err == nil {
		t.Error("distance -> scale should be rejected")
	}
}

func TestDriverEmptyCatalogTolerated(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelDebug)
	log.SetOutput(&buf)
	app := state.NewApp(state.Config{RequireCatalog: false})
	d := New(app, DefaultConfig(), log)
	s := &recorder{}

	if err := d.Request(state.ModeScale); err != nil {
		t.Fatalf("Request: %v", err)
	}
	d.Frame(s, vp800, Pointer{})
	if !d.Info().Layout.Empty {
		t.Error("layout should be empty without a catalog")
	}
	if s.h != 600 {
		t.Errorf("surface height = %d, want window height", s.h)
	}
	for _, o := range s.ops {
		if o.kind == "circle" {
			t.Fatal("nothing should be drawn without a catalog")
		}
	}
}

func TestDriverKeyboardHelpers(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	s := &recorder{}

	if d.Select("Earth") {
		t.Error("Select outside scale mode should fail")
	}
	enterScale(t, d, s, vp800)
	if d.Select("Pluto") {
		t.Error("Select of unknown planet should fail")
	}
	if !d.Select("Mars") || d.Selected().Name != "Mars" {
		t.Error("Select(Mars) failed")
	}

	d.Back()
	if d.Selected() != nil || d.Mode() != state.ModeScale {
		t.Errorf("first Back: selected=%v mode=%v", d.Selected(), d.Mode())
	}
	d.Back()
	if d.Mode() != state.ModeUninitialized {
		t.Errorf("second Back: mode=%v, want uninitialized", d.Mode())
	}

	// Leaving the scale view drops any selection.
	enterScale(t, d, s, vp800)
	d.Select("Mars")
	if err := d.Request(state.ModeUninitialized); err != nil {
		t.Fatalf("Request(uninitialized): %v", err)
	}
	if d.Selected() != nil {
		t.Errorf("selection %s survived leaving scale", d.Selected().Name)
	}
}

func TestDriverUnknownModePanics(t *testing.T) {
	d, _, _ := newTestDriver(t, true)
	defer func() {
		if recover() == nil {
			t.Error("out-of-range mode should panic")
		}
	}()
	_ = d.Request(state.ViewMode(7))
}

func TestWrapText(t *testing.T) {
	lines := WrapText("the quick brown fox jumps\n\nover", 10)
	want := []string{"the quick", "brown fox", "jumps", "", "over"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("WrapText = %q, want %q", lines, want)
	}
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
}

func TestStarfieldDeterministic(t *testing.T) {
	a := Starfield(20, 800, 600, 7)
	b := Starfield(20, 800, 600, 7)
	if len(a) != 20 {
		t.Fatalf("len = %d, want 20", len(a))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Size != b[i].Size {
			t.Fatalf("star %d differs between identical seeds", i)
		}
		if a[i].X < 0 || a[i].X > 800 || a[i].Y < 0 || a[i].Y > 600 {
			t.Errorf("star %d out of bounds: (%v, %v)", i, a[i].X, a[i].Y)
		}
	}
	if Starfield(0, 800, 600, 1) != nil {
		t.Error("zero stars should return nil")
	}
}

func TestStarfieldNamedStars(t *testing.T) {
	stars := Starfield(4, 720, 360, 1)

	// Sirius: RA 101.287, Dec -16.716
	wantX := (1 - 101.287/360) * 720
	wantY := (90 + 16.716) / 180 * 360
	if math.Abs(stars[0].X-wantX) > 1e-9 || math.Abs(stars[0].Y-wantY) > 1e-9 {
		t.Errorf("first star at (%v, %v), want Sirius at (%v, %v)", stars[0].X, stars[0].Y, wantX, wantY)
	}
	if stars[0].Size <= stars[1].Size {
		t.Errorf("Sirius size %v should exceed Canopus size %v", stars[0].Size, stars[1].Size)
	}
	for i, s := range stars[2:] {
		if s.Size > 2 {
			t.Errorf("filler star %d size = %v, want <= 2", i, s.Size)
		}
	}
}
