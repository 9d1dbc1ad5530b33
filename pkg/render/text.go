package render

import "unicode/utf8"

// Font sizes for cell text.
const (
	labelFontSize = 12
	valueFontSize = 10
)

// avgCharWidth approximates the width of a sans-serif glyph as a fraction
// of the font size. Good enough for fit decisions; SVG viewers do the real
// shaping.
const avgCharWidth = 0.6

// textWidth estimates the rendered width of s in pixels at the given font size.
func textWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * avgCharWidth
}

// fitLabel returns s, truncated with an ellipsis if needed, so that it fits
// within maxWidth pixels. Returns "" when nothing readable fits.
func fitLabel(s string, maxWidth int, fontSize float64) string {
	if textWidth(s, fontSize) <= float64(maxWidth) {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if textWidth(string(runes)+"…", fontSize) <= float64(maxWidth) {
			return string(runes) + "…"
		}
	}
	return ""
}
