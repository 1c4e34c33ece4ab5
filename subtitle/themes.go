package subtitle

import (
	"fmt"
	"strings"
)

// ColorPair is a fill color plus its outline, both "#RRGGBB"
type ColorPair struct {
	Color  string
	Stroke string
}

// ColorTheme styles the three word states during narration playback
type ColorTheme struct {
	Name    string
	Unread  ColorPair
	Reading ColorPair
	Read    ColorPair
	Title   ColorPair
}

// ColorThemes are the built-in subtitle color palettes
var ColorThemes = map[string]ColorTheme{
	"classic_gold": {
		Name:    "Classic Gold",
		Unread:  ColorPair{"#000000", "#8B4513"},
		Reading: ColorPair{"#FFD700", "#8B4513"},
		Read:    ColorPair{"#8B4513", "#FFD700"},
		Title:   ColorPair{"#8B4513", "#FFD700"},
	},
	"elegant_blue": {
		Name:    "Elegant Blue",
		Unread:  ColorPair{"#1E3A8A", "#93C5FD"},
		Reading: ColorPair{"#60A5FA", "#1E3A8A"},
		Read:    ColorPair{"#E0F2FE", "#60A5FA"},
		Title:   ColorPair{"#E0F2FE", "#60A5FA"},
	},
	"warm_sunset": {
		Name:    "Warm Sunset",
		Unread:  ColorPair{"#7C2D12", "#FED7AA"},
		Reading: ColorPair{"#FB923C", "#7C2D12"},
		Read:    ColorPair{"#FEF3C7", "#FB923C"},
		Title:   ColorPair{"#FEF3C7", "#FB923C"},
	},
	"fresh_green": {
		Name:    "Fresh Green",
		Unread:  ColorPair{"#14532D", "#86EFAC"},
		Reading: ColorPair{"#22C55E", "#14532D"},
		Read:    ColorPair{"#DCFCE7", "#22C55E"},
		Title:   ColorPair{"#DCFCE7", "#22C55E"},
	},
	"purple_dream": {
		Name:    "Purple Dream",
		Unread:  ColorPair{"#4C1D95", "#D8B4FE"},
		Reading: ColorPair{"#C084FC", "#4C1D95"},
		Read:    ColorPair{"#F3E8FF", "#C084FC"},
		Title:   ColorPair{"#F3E8FF", "#C084FC"},
	},
	"ink_wash": {
		Name:    "Ink Wash",
		Unread:  ColorPair{"#000000", "#9CA3AF"},
		Reading: ColorPair{"#6B7280", "#000000"},
		Read:    ColorPair{"#D1D5DB", "#6B7280"},
		Title:   ColorPair{"#D1D5DB", "#6B7280"},
	},
}

// DefaultColorTheme is used when a request names no theme
const DefaultColorTheme = "classic_gold"

// Theme resolves a theme key, falling back to the default
func Theme(key string) ColorTheme {
	if t, ok := ColorThemes[key]; ok {
		return t
	}
	return ColorThemes[DefaultColorTheme]
}

// assColor converts "#RRGGBB" to the ASS &HBBGGRR& form.
// Invalid input maps to white.
func assColor(hex string) string {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return "&H00FFFFFF"
	}
	rr, gg, bb := h[0:2], h[2:4], h[4:6]
	return fmt.Sprintf("&H00%s%s%s", strings.ToUpper(bb), strings.ToUpper(gg), strings.ToUpper(rr))
}
