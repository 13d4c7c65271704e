package frame

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the colors used by every screen.
type Theme struct {
	Background color.Color
	Text       color.Color
	Dim        color.Color
	Sun        color.Color
	BoxFill    color.Color
	BoxStroke  color.Color
	BoxHover   color.Color
	Axis       color.Color
}

func hex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.White
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: hex("#05060f"),
		Text:       hex("#f2f2f2"),
		Dim:        hex("#8a8fa3"),
		Sun:        hex("#fdb813"),
		BoxFill:    hex("#1b1f33"),
		BoxStroke:  hex("#c8cbe0"),
		BoxHover:   hex("#ffd75f"),
		Axis:       hex("#3a3f5c"),
	}
}

// Config holds sizing constants. Units are surface pixels.
type Config struct {
	// MinWidth is the surface width floor. It keeps menu and credits text
	// from wrapping awkwardly on narrow windows.
	MinWidth float64

	// CreditsMinHeight is the surface height floor on the credits screen.
	CreditsMinHeight float64

	TextSize  float64
	TitleSize float64

	// Upper bounds for button boxes; boxes shrink on small windows.
	BoxWidth  float64
	BoxHeight float64

	// Margin around fixed controls.
	Margin float64

	// StrokeWeight for box outlines.
	StrokeWeight float64

	Stars int
	Seed  int64

	Theme Theme
}

// DefaultConfig returns configuration for a pixel canvas.
func DefaultConfig() Config {
	return Config{
		MinWidth:         688,
		CreditsMinHeight: 480,
		TextSize:         16,
		TitleSize:        32,
		BoxWidth:         240,
		BoxHeight:        56,
		Margin:           12,
		StrokeWeight:     2,
		Stars:            160,
		Seed:             1,
		Theme:            DefaultTheme(),
	}
}
