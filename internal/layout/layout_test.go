package layout

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/planet"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Abs(b))
}

func testPlanet(name string, radius, distanceMillionKm float64) *planet.Planet {
	p, _, err := planet.New(planet.Attributes{
		Name:               name,
		RadiusKm:           radius,
		DistanceMillionKm:  distanceMillionKm,
		RotationPeriodDays: 1,
		OrbitalPeriodDays:  1,
		Color:              "#FFF",
	})
	if err != nil {
		panic(err)
	}
	return p
}

func bundled(t *testing.T) []*planet.Planet {
	t.Helper()
	res, err := planet.Parse(planet.Bundled())
	if err != nil {
		t.Fatalf("Parse bundled: %v", err)
	}
	return res.Catalog.Planets()
}

func TestScaleMercuryVenus(t *testing.T) {
	planets := []*planet.Planet{
		testPlanet("Mercury", 2439.7, 57.9),
		testPlanet("Venus", 6051.8, 108.2),
	}

	res := Scale(planets, 800, 600)
	if res.Empty {
		t.Fatal("layout should not be empty")
	}

	wantM := 540 / 12103.6
	if !approx(res.Multiplier, wantM) {
		t.Errorf("Multiplier = %v, want %v", res.Multiplier, wantM)
	}

	venus := res.Bodies[1]
	if !approx(venus.Diameter, 540) {
		t.Errorf("Venus diameter = %v, want 540", venus.Diameter)
	}

	mercury := res.Bodies[0]
	wantMercury := 540 * 2439.7 / 6051.8
	if !approx(mercury.Diameter, wantMercury) {
		t.Errorf("Mercury diameter = %v, want %v", mercury.Diameter, wantMercury)
	}
	if math.Abs(mercury.Diameter-217.69) > 0.01 {
		t.Errorf("Mercury diameter = %v, want ~217.69", mercury.Diameter)
	}
	if res.Spacer != 60 {
		t.Errorf("Spacer = %v, want 60", res.Spacer)
	}
}

func TestScaleLargestFillsTarget(t *testing.T) {
	sizes := []struct{ w, h float64 }{
		{800, 600}, {600, 800}, {1920, 1080}, {120, 80}, {688, 2000},
	}

	for _, sz := range sizes {
		res := Scale(bundled(t), sz.w, sz.h)
		want := TargetFraction * math.Min(sz.w, sz.h)

		var largest float64
		for _, b := range res.Bodies {
			largest = math.Max(largest, b.Diameter)
		}
		if !approx(largest, want) {
			t.Errorf("%vx%v: largest diameter = %v, want %v", sz.w, sz.h, largest, want)
		}
	}
}

func TestScaleSinglePlanet(t *testing.T) {
	res := Scale([]*planet.Planet{testPlanet("Solo", 1000, 1)}, 400, 300)
	if len(res.Bodies) != 1 {
		t.Fatalf("Bodies = %d, want 1", len(res.Bodies))
	}
	if !approx(res.Bodies[0].Diameter, 270) {
		t.Errorf("diameter = %v, want 270", res.Bodies[0].Diameter)
	}
}

func TestScaleEmpty(t *testing.T) {
	res := Scale(nil, 800, 600)
	if !res.Empty || len(res.Bodies) != 0 || res.RequiredHeight != 0 {
		t.Errorf("empty catalog layout = %+v", res)
	}
	if res := Scale(bundled(t), 0, 600); !res.Empty {
		t.Error("zero-width window should produce an empty layout")
	}
}

func TestScaleSizingMatchesPlacement(t *testing.T) {
	res := Scale(bundled(t), 1024, 768)

	sunBottom := res.Sun.Center.Y + res.Sun.Radius()
	if res.Sun.Center.Y != 0 {
		t.Errorf("sun center y = %v, want 0", res.Sun.Center.Y)
	}
	if res.Sun.Center.X != 512 {
		t.Errorf("sun center x = %v, want 512", res.Sun.Center.X)
	}
	if !approx(res.Sun.Diameter, planet.SunDiameterKm*res.Multiplier) {
		t.Errorf("sun diameter = %v, want %v", res.Sun.Diameter, planet.SunDiameterKm*res.Multiplier)
	}

	// Walk the stack the way a renderer would and check nothing drifts.
	prevBottom := sunBottom
	for i, b := range res.Bodies {
		top := b.Center.Y - b.Radius()
		if !approx(top-prevBottom, res.Spacer) {
			t.Errorf("body %d gap = %v, want spacer %v", i, top-prevBottom, res.Spacer)
		}
		if b.Center.X != 512 {
			t.Errorf("body %d not centered: x = %v", i, b.Center.X)
		}
		prevBottom = b.Center.Y + b.Radius()
	}

	if !approx(res.RequiredHeight, prevBottom+res.Spacer) {
		t.Errorf("RequiredHeight = %v, want last bottom + spacer = %v", res.RequiredHeight, prevBottom+res.Spacer)
	}

	// Closed-form accounting.
	want := res.Sun.Radius() + res.Spacer
	for _, b := range res.Bodies {
		want += b.Diameter + res.Spacer
	}
	if !approx(res.RequiredHeight, want) {
		t.Errorf("RequiredHeight = %v, want %v", res.RequiredHeight, want)
	}
}

func TestScaleMinimumVisibleSize(t *testing.T) {
	planets := []*planet.Planet{
		testPlanet("Giant", 1e7, 1),
		testPlanet("Speck", 1, 2),
	}
	res := Scale(planets, 800, 600)
	if res.Bodies[1].Diameter != planet.MinScreenSize {
		t.Errorf("Speck diameter = %v, want %v", res.Bodies[1].Diameter, planet.MinScreenSize)
	}
}

func TestBodyContains(t *testing.T) {
	res := Scale(bundled(t), 800, 600)
	for _, b := range res.Bodies {
		if !b.Contains(b.Center) {
			t.Errorf("%s does not contain its center", b.Planet.Name)
		}
		edge := geom.Pt(b.Center.X+b.Radius(), b.Center.Y)
		if !b.Contains(edge) {
			t.Errorf("%s does not contain its edge", b.Planet.Name)
		}
		outside := geom.Pt(b.Center.X+b.Radius()+0.01, b.Center.Y)
		if b.Contains(outside) {
			t.Errorf("%s contains a point past its edge", b.Planet.Name)
		}
	}
}

func TestDistanceLayout(t *testing.T) {
	planets := bundled(t)
	res := Distance(planets, 1000, 500)
	if res.Empty {
		t.Fatal("layout should not be empty")
	}

	short := 500.0
	if res.Sun.Center.X != DistanceMarginFraction*short || res.Sun.Center.Y != 250 {
		t.Errorf("sun center = %v", res.Sun.Center)
	}

	var farthest Body
	for _, b := range res.Bodies {
		if b.Center.Y != 250 {
			t.Errorf("%s not on axis: y = %v", b.Planet.Name, b.Center.Y)
		}
		if b.Center.X > farthest.Center.X {
			farthest = b
		}
		if b.Diameter < planet.MinScreenSize {
			t.Errorf("%s below minimum size", b.Planet.Name)
		}
	}
	if farthest.Planet.Name != "Neptune" {
		t.Errorf("farthest = %s, want Neptune", farthest.Planet.Name)
	}
	if !approx(farthest.Center.X-res.Sun.Center.X, TargetFraction*short) {
		t.Errorf("Neptune offset = %v, want %v", farthest.Center.X-res.Sun.Center.X, TargetFraction*short)
	}

	// Positions increase with distance (bundled catalog is ordered by distance).
	for i := 1; i < len(res.Bodies); i++ {
		if res.Bodies[i].Center.X <= res.Bodies[i-1].Center.X {
			t.Errorf("body %d not right of body %d", i, i-1)
		}
	}

	var largest float64
	for _, b := range res.Bodies {
		largest = math.Max(largest, b.Diameter)
	}
	if !approx(largest, DistanceLargestBodyFraction*short) {
		t.Errorf("largest body = %v, want %v", largest, DistanceLargestBodyFraction*short)
	}
}

func TestDistanceAllAtSun(t *testing.T) {
	res := Distance([]*planet.Planet{testPlanet("A", 10, 0), testPlanet("B", 20, 0)}, 400, 400)
	for _, b := range res.Bodies {
		if b.Center.X != res.Sun.Center.X {
			t.Errorf("%s x = %v, want sun x %v", b.Planet.Name, b.Center.X, res.Sun.Center.X)
		}
	}
}

func TestDistanceEmpty(t *testing.T) {
	if res := Distance(nil, 800, 600); !res.Empty {
		t.Error("empty catalog should produce an empty layout")
	}
}

func TestKmPerPixel(t *testing.T) {
	if !math.IsInf(Result{}.KmPerPixel(), 1) {
		t.Error("zero multiplier should give infinite km per pixel")
	}
	if got := (Result{Multiplier: 0.5}).KmPerPixel(); got != 2 {
		t.Errorf("KmPerPixel = %v, want 2", got)
	}
}
