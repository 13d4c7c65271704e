// Package planet holds the planet entity, catalog ingestion and the
// sources a catalog can be loaded from.
package planet

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/litescript/ls-orrery/internal/logging"
)

const (
	// SunRadiusKm is the mean solar radius.
	SunRadiusKm = 696340.0

	// SunDiameterKm is the sun's real diameter, used to size it in Scale mode.
	SunDiameterKm = 2 * SunRadiusKm

	// MinScreenSize is the smallest rendered diameter in pixels. Planets
	// never vanish regardless of scale.
	MinScreenSize = 2

	// KmPerMillion converts the catalog's distance unit to km.
	KmPerMillion = 1e6

	// KmPerAU is one astronomical unit in km.
	KmPerAU = 149597870.7
)

var log = logging.Discard()

// SetLogger sets the logger used for color diagnostics.
func SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	log = l
}

// Attributes are the validated-on-construction inputs to New.
type Attributes struct {
	Name               string
	RadiusKm           float64
	DistanceMillionKm  float64
	RotationPeriodDays float64
	OrbitalPeriodDays  float64
	Color              string
}

// Planet is an immutable body in the catalog.
type Planet struct {
	Name               string
	RadiusKm           float64
	DistanceFromSunKm  float64
	RotationPeriodDays float64
	OrbitalPeriodDays  float64
	Color              string
}

// Validation errors returned by New.
var (
	ErrNoName         = errors.New("missing name")
	ErrRadius         = errors.New("radius must be positive")
	ErrDistance       = errors.New("distance from sun must be non-negative")
	ErrOrbitalPeriod  = errors.New("orbital period must be positive")
	ErrRotationPeriod = errors.New("rotation period must be finite")
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// New validates attrs and builds a Planet. A bad color is not an error:
// it is replaced with White and reported in the returned warnings.
func New(attrs Attributes) (*Planet, []string, error) {
	name := strings.TrimSpace(attrs.Name)
	switch {
	case name == "":
		return nil, nil, ErrNoName
	case !finite(attrs.RadiusKm) || attrs.RadiusKm <= 0:
		return nil, nil, fmt.Errorf("%s: %w (got %v)", name, ErrRadius, attrs.RadiusKm)
	case !finite(attrs.DistanceMillionKm) || attrs.DistanceMillionKm < 0:
		return nil, nil, fmt.Errorf("%s: %w (got %v)", name, ErrDistance, attrs.DistanceMillionKm)
	case !finite(attrs.OrbitalPeriodDays) || attrs.OrbitalPeriodDays <= 0:
		return nil, nil, fmt.Errorf("%s: %w (got %v)", name, ErrOrbitalPeriod, attrs.OrbitalPeriodDays)
	case !finite(attrs.RotationPeriodDays):
		return nil, nil, fmt.Errorf("%s: %w", name, ErrRotationPeriod)
	}

	var warnings []string
	c, ok := NormalizeColor(attrs.Color)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: invalid color %q, using %s", name, attrs.Color, White))
	}

	return &Planet{
		Name:               name,
		RadiusKm:           attrs.RadiusKm,
		DistanceFromSunKm:  attrs.DistanceMillionKm * KmPerMillion,
		RotationPeriodDays: attrs.RotationPeriodDays,
		OrbitalPeriodDays:  attrs.OrbitalPeriodDays,
		Color:              c,
	}, warnings, nil
}

// Diameter returns 2 × radius in km.
func (p *Planet) Diameter() float64 {
	return 2 * p.RadiusKm
}

// ScreenSize returns the rendered diameter in whole pixels at the given
// scale, never less than MinScreenSize.
func (p *Planet) ScreenSize(kmPerPixel float64) int {
	if !(kmPerPixel > 0) {
		return MinScreenSize
	}
	size := math.Floor(p.Diameter() / kmPerPixel)
	if !(size >= MinScreenSize) {
		return MinScreenSize
	}
	if size > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(size)
}

// RenderedDiameter is the fractional form of ScreenSize used by the
// layout: diameter × multiplier, never less than MinScreenSize.
func (p *Planet) RenderedDiameter(multiplier float64) float64 {
	d := p.Diameter() * multiplier
	if !(d >= MinScreenSize) {
		return MinScreenSize
	}
	return d
}

// RGB returns the planet color as 0-255 channels. A color that fails to
// parse falls back to white.
func (p *Planet) RGB() (r, g, b uint8) {
	c, ok := parseColor(p.Color)
	if !ok {
		log.Warn("planet %s: stored color %q does not parse, using white", p.Name, p.Color)
		return 255, 255, 255
	}
	return c.RGB255()
}

// RGBA returns the planet color as an opaque color.RGBA.
func (p *Planet) RGBA() color.RGBA {
	r, g, b := p.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// DistanceAU returns the distance from the sun in astronomical units.
func (p *Planet) DistanceAU() float64 {
	return p.DistanceFromSunKm / KmPerAU
}

// Retrograde reports whether the planet rotates backwards.
func (p *Planet) Retrograde() bool {
	return p.RotationPeriodDays < 0
}

// Details returns the multi-line description shown when the planet is
// selected.
func (p *Planet) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	fmt.Fprintf(&b, "Radius: %s km\n", formatNumber(p.RadiusKm))
	fmt.Fprintf(&b, "Diameter: %s km\n", formatNumber(p.Diameter()))
	fmt.Fprintf(&b, "Distance from Sun: %s million km (%.2f AU)\n",
		formatNumber(p.DistanceFromSunKm/KmPerMillion), p.DistanceAU())

	rot := math.Abs(p.RotationPeriodDays)
	if p.Retrograde() {
		fmt.Fprintf(&b, "Rotation period: %s days (retrograde)\n", formatNumber(rot))
	} else {
		fmt.Fprintf(&b, "Rotation period: %s days\n", formatNumber(rot))
	}
	fmt.Fprintf(&b, "Orbital period: %s days (%.2f Earth years)",
		formatNumber(p.OrbitalPeriodDays), p.OrbitalPeriodDays/365.25)
	return b.String()
}

// formatNumber prints v with thousands separators and at most two decimals.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
