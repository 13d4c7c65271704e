package frame

import (
	"image/color"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Star is one point of the background starfield.
type Star struct {
	X, Y  float64
	Size  float64
	Color color.Color
}

// Starfield generates n stars spread over a w×h area. Half of them are the
// brightest named stars placed by their sky coordinates; the rest are
// random faint filler. The same seed and size always give the same field.
func Starfield(n int, w, h float64, seed int64) []Star {
	if n <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	stars := make([]Star, 0, n)

	for _, cs := range astro.DefaultStarCatalog().Brightest(n / 2) {
		x, y := cs.ChartPosition(w, h)
		stars = append(stars, Star{
			X:     math.Min(math.Max(x, 0), w),
			Y:     math.Min(math.Max(y, 0), h),
			Size:  cs.DisplaySize(),
			Color: starColor(rng, 0.4+cs.Brightness()*0.6),
		})
	}

	for len(stars) < n {
		stars = append(stars, Star{
			X:     rng.Float64() * w,
			Y:     rng.Float64() * h,
			Size:  1 + float64(rng.Intn(2)),
			Color: starColor(rng, 0.4+rng.Float64()*0.4),
		})
	}
	return stars
}

// starColor is mostly white with a faint blue or orange cast.
func starColor(rng *rand.Rand, value float64) color.RGBA {
	hue := 30.0
	if rng.Intn(2) == 0 {
		hue = 220
	}
	c := colorful.Hsv(hue, 0.05+rng.Float64()*0.25, value)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
