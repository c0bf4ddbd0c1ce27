package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/AvengeMedia/dankvscode/internal/vscode"
	"github.com/lucasb-eyer/go-colorful"
)

// TerminalKeys lists the workbench color keys for the 16 ANSI colors in
// palette order.
var TerminalKeys = []string{
	"terminal.ansiBlack",
	"terminal.ansiRed",
	"terminal.ansiGreen",
	"terminal.ansiYellow",
	"terminal.ansiBlue",
	"terminal.ansiMagenta",
	"terminal.ansiCyan",
	"terminal.ansiWhite",
	"terminal.ansiBrightBlack",
	"terminal.ansiBrightRed",
	"terminal.ansiBrightGreen",
	"terminal.ansiBrightYellow",
	"terminal.ansiBrightBlue",
	"terminal.ansiBrightMagenta",
	"terminal.ansiBrightCyan",
	"terminal.ansiBrightWhite",
}

// ParseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa. The alpha channel is
// discarded.
func ParseHex(hex string) (colorful.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(h) {
	case 3, 6:
	case 4:
		h = h[:3]
	case 8:
		h = h[:6]
	default:
		return colorful.Color{}, fmt.Errorf("invalid hex color: %q", hex)
	}
	return colorful.Hex("#" + h)
}

func sRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func Luminance(c colorful.Color) float64 {
	return 0.2126*sRGBToLinear(c.R) + 0.7152*sRGBToLinear(c.G) + 0.0722*sRGBToLinear(c.B)
}

// ContrastRatio is the WCAG contrast ratio between two colors.
func ContrastRatio(fg, bg colorful.Color) float64 {
	lumFg := Luminance(fg)
	lumBg := Luminance(bg)
	lighter := math.Max(lumFg, lumBg)
	darker := math.Min(lumFg, lumBg)
	return (lighter + 0.05) / (darker + 0.05)
}

// DetectType reports whether a theme with the given editor background is
// "light" or "dark". Unparseable backgrounds count as dark.
func DetectType(background string) string {
	c, err := ParseHex(background)
	if err != nil {
		return "dark"
	}
	luminance := 0.299*c.R + 0.587*c.G + 0.114*c.B
	if luminance > 0.5 {
		return "light"
	}
	return "dark"
}

// TerminalFragment builds a theme fragment that sets the 16 terminal ANSI
// colors. Values are normalized to lowercase #rrggbb.
func TerminalFragment(colors []string) (vscode.Theme, error) {
	if len(colors) != len(TerminalKeys) {
		return vscode.Theme{}, fmt.Errorf("terminal palette needs %d colors, got %d", len(TerminalKeys), len(colors))
	}

	fragment := vscode.Theme{Colors: make(map[string]string, len(colors))}
	for i, hex := range colors {
		c, err := ParseHex(hex)
		if err != nil {
			return vscode.Theme{}, fmt.Errorf("%s: %w", TerminalKeys[i], err)
		}
		fragment.Colors[TerminalKeys[i]] = c.Clamped().Hex()
	}
	return fragment, nil
}
