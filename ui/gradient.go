package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GradientText colors each column of s along a linear blend from startHex to
// endHex. Multi-line input gets the same horizontal gradient on every line so
// block art stays visually coherent.
func GradientText(s, startHex, endHex string) string {
	sr, sg, sb := parseHex(startHex)
	er, eg, eb := parseHex(endHex)

	lines := strings.Split(s, "\n")
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	if width <= 1 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(startHex)).Render(s)
	}

	var out strings.Builder
	for li, line := range lines {
		if li > 0 {
			out.WriteByte('\n')
		}
		for i, r := range []rune(line) {
			t := float64(i) / float64(width-1)
			c := fmt.Sprintf("#%02x%02x%02x",
				lerp(sr, er, t), lerp(sg, eg, t), lerp(sb, eb, t))
			out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
		}
	}
	return out.String()
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func parseHex(hex string) (r, g, b uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0xe0, 0xde, 0xf4
	}
	pr, _ := strconv.ParseUint(hex[0:2], 16, 8)
	pg, _ := strconv.ParseUint(hex[2:4], 16, 8)
	pb, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return uint8(pr), uint8(pg), uint8(pb)
}
