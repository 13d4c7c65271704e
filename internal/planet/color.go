package planet

import (
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// White is the substitute for any color that fails validation.
const White = "#FFFFFF"

var hexColorRe = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is a 3- or 6-digit hex color with an
// optional leading '#'.
func ValidColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// NormalizeColor returns s in canonical "#RRGGBB" form. The second result
// is false when s is not a valid hex color, in which case White is returned.
func NormalizeColor(s string) (string, bool) {
	m := hexColorRe.FindStringSubmatch(s)
	if m == nil {
		return White, false
	}
	digits := m[1]
	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}
	return "#" + strings.ToUpper(digits), true
}

// parseColor converts a hex color into a colorful.Color.
func parseColor(s string) (colorful.Color, bool) {
	norm, ok := NormalizeColor(s)
	if !ok {
		return colorful.Color{R: 1, G: 1, B: 1}, false
	}
	c, err := colorful.Hex(norm)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}, false
	}
	return c, true
}
