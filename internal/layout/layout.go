// Package layout computes where the sun and planets go on the drawing
// surface. It is pure arithmetic: no drawing, no input.
package layout

import (
	"math"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/planet"
)

// Proportions of the short side used by both layouts.
const (
	TargetFraction = 0.9
	SpacerFraction = 0.1

	// Distance mode only.
	DistanceMarginFraction      = 0.05
	DistanceSunFraction         = 0.1
	DistanceLargestBodyFraction = 0.05
)

// Body is a planet (or the sun) placed on the surface.
type Body struct {
	Planet   *planet.Planet // nil for the sun
	Center   geom.Coordinate
	Diameter float64
}

// Radius returns half the rendered diameter.
func (b Body) Radius() float64 {
	return b.Diameter / 2
}

// Contains reports whether p falls on the body's circle.
func (b Body) Contains(p geom.Coordinate) bool {
	return geom.PointInCircle(p, b.Center.X, b.Center.Y, b.Radius())
}

// Result is a computed layout.
type Result struct {
	// Empty is set when there were no planets; nothing should be drawn.
	Empty bool

	// Multiplier converts km to pixels for body sizes.
	Multiplier float64

	// DistanceMultiplier converts km from the sun to pixels. Distance
	// layout only.
	DistanceMultiplier float64

	// Spacer is the gap between consecutive bodies in Scale layout.
	Spacer float64

	// RequiredHeight is the vertical extent the layout needs.
	RequiredHeight float64

	Sun    Body
	Bodies []Body
}

// KmPerPixel is the inverse of Multiplier.
func (r Result) KmPerPixel() float64 {
	if r.Multiplier == 0 {
		return math.Inf(1)
	}
	return 1 / r.Multiplier
}

// extent returns the largest diameter and the greatest distance from the
// sun among planets.
func extent(planets []*planet.Planet) (largest, farthest float64) {
	for _, p := range planets {
		largest = math.Max(largest, p.Diameter())
		farthest = math.Max(farthest, p.DistanceFromSunKm)
	}
	return largest, farthest
}

// Scale stacks the sun and every planet top to bottom, sized relative to
// each other. The largest planet is drawn at 90% of the short side.
//
// The sun's center sits at y=0 so its bottom edge is the top of the stack.
// Each planet then takes its diameter plus one spacer; RequiredHeight is
// the running offset after the last planet, so the surface sized from it
// always fits the drawing exactly.
func Scale(planets []*planet.Planet, width, height float64) Result {
	if len(planets) == 0 {
		return Result{Empty: true}
	}

	short := geom.ShortestSide(width, height)
	largest, _ := extent(planets)
	if !(largest > 0) || !(short > 0) {
		return Result{Empty: true}
	}

	m := TargetFraction * short / largest
	spacer := SpacerFraction * short
	centerX := width / 2

	sunD := planet.SunDiameterKm * m
	res := Result{
		Multiplier: m,
		Spacer:     spacer,
		Sun:        Body{Center: geom.Pt(centerX, 0), Diameter: sunD},
		Bodies:     make([]Body, 0, len(planets)),
	}

	y := sunD/2 + spacer
	for _, p := range planets {
		d := p.RenderedDiameter(m)
		res.Bodies = append(res.Bodies, Body{
			Planet:   p,
			Center:   geom.Pt(centerX, y+d/2),
			Diameter: d,
		})
		y += d + spacer
	}
	res.RequiredHeight = y
	return res
}

// Distance lines the planets up along a horizontal axis at positions
// proportional to their distance from the sun. The farthest planet sits
// 90% of the short side to the right of the sun's center.
//
// Planet sizes use their own multiplier so the largest planet is 5% of
// the short side; the minimum visible size still applies.
func Distance(planets []*planet.Planet, width, height float64) Result {
	if len(planets) == 0 {
		return Result{Empty: true}
	}

	short := geom.ShortestSide(width, height)
	largest, farthest := extent(planets)
	if !(largest > 0) || !(short > 0) {
		return Result{Empty: true}
	}

	m := DistanceLargestBodyFraction * short / largest
	var dm float64
	if farthest > 0 {
		dm = TargetFraction * short / farthest
	}

	centerY := height / 2
	sunX := DistanceMarginFraction * short
	res := Result{
		Multiplier:         m,
		DistanceMultiplier: dm,
		RequiredHeight:     height,
		Sun:                Body{Center: geom.Pt(sunX, centerY), Diameter: DistanceSunFraction * short},
		Bodies:             make([]Body, 0, len(planets)),
	}

	for _, p := range planets {
		res.Bodies = append(res.Bodies, Body{
			Planet:   p,
			Center:   geom.Pt(sunX+p.DistanceFromSunKm*dm, centerY),
			Diameter: p.RenderedDiameter(m),
		})
	}
	return res
}
