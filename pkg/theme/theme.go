// Package theme derives display colors from a palette and the light/dark mode.
// All functions are pure, so colors are recomputed on every render and never cached with feed data.
package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode is the display theme mode
type Mode int

// theme modes
const (
	Light Mode = iota
	Dark
)

const (
	contrastLight = "#fff"
	contrastDark  = "rgba(0, 0, 0, 0.87)"
)

// String returns mode name
func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Palette is the base color configuration
type Palette struct {
	Primary           string  // hex
	Secondary         string  // hex
	TonalOffset       float64 // light variant offset, dark variant uses 1.5x
	ContrastThreshold float64 // minimal contrast ratio for white text
}

// Colors is a background/foreground pair
type Colors struct {
	Background string
	Foreground string
}

// Scheme is the set of page level colors for a mode
type Scheme struct {
	Mode      Mode
	Page      string
	Paper     string
	Text      string
	TextMuted string
	AppBar    Colors
	Accent    string // secondary color, tab indicator
}

// DefaultPalette returns the stock palette
func DefaultPalette() Palette {
	return Palette{
		Primary:           "#6750A4",
		Secondary:         "#625B71",
		TonalOffset:       0.2,
		ContrastThreshold: 3,
	}
}

// Validate checks that palette colors parse and offsets are in range
func (p Palette) Validate() error {
	if _, err := colorful.Hex(p.Primary); err != nil {
		return fmt.Errorf("invalid primary color %q: %w", p.Primary, err)
	}
	if _, err := colorful.Hex(p.Secondary); err != nil {
		return fmt.Errorf("invalid secondary color %q: %w", p.Secondary, err)
	}
	if p.TonalOffset < 0 || p.TonalOffset > 1 {
		return fmt.Errorf("tonal offset must be between 0 and 1, got %v", p.TonalOffset)
	}
	if p.ContrastThreshold < 1 || p.ContrastThreshold > 21 {
		return fmt.Errorf("contrast threshold must be between 1 and 21, got %v", p.ContrastThreshold)
	}
	return nil
}

// PrimaryLight returns the lightened primary color
func (p Palette) PrimaryLight() string {
	return lighten(mustHex(p.Primary), p.TonalOffset).Hex()
}

// PrimaryDark returns the darkened primary color
func (p Palette) PrimaryDark() string {
	return darken(mustHex(p.Primary), p.TonalOffset*1.5).Hex()
}

// Freebie returns freebie card colors: primary light variant in light mode,
// dark variant in dark mode, with the contrast text for that background
func (p Palette) Freebie(mode Mode) Colors {
	bg := p.PrimaryLight()
	if mode == Dark {
		bg = p.PrimaryDark()
	}
	return Colors{Background: bg, Foreground: p.ContrastText(bg)}
}

// Scheme returns page colors for the mode
func (p Palette) Scheme(mode Mode) Scheme {
	primary := mustHex(p.Primary).Hex()
	s := Scheme{
		Mode:      mode,
		Page:      "#fff",
		Paper:     "#fff",
		Text:      contrastDark,
		TextMuted: "rgba(0, 0, 0, 0.6)",
		AppBar:    Colors{Background: primary, Foreground: p.ContrastText(primary)},
		Accent:    mustHex(p.Secondary).Hex(),
	}
	if mode == Dark {
		s.Page = "#121212"
		s.Paper = "#1e1e1e"
		s.Text = contrastLight
		s.TextMuted = "rgba(255, 255, 255, 0.7)"
		// dark app bar stays on the paper color, primary goes to accents
		s.AppBar = Colors{Background: "#272727", Foreground: contrastLight}
	}
	return s
}

// ContrastText returns white if its contrast ratio against bg reaches the threshold, dark text otherwise
func (p Palette) ContrastText(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return contrastDark
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	if ContrastRatio(c, white) >= p.ContrastThreshold {
		return contrastLight
	}
	return contrastDark
}

// ContrastRatio returns WCAG contrast ratio between two colors, in [1, 21]
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func lighten(c colorful.Color, coef float64) colorful.Color {
	return colorful.Color{R: c.R + (1-c.R)*coef, G: c.G + (1-c.G)*coef, B: c.B + (1-c.B)*coef}.Clamped()
}

func darken(c colorful.Color, coef float64) colorful.Color {
	return colorful.Color{R: c.R * (1 - coef), G: c.G * (1 - coef), B: c.B * (1 - coef)}.Clamped()
}

// mustHex parses a validated hex color, invalid input falls back to black
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
