package overlay

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// PlaceOverlay composites fg on top of bg at the given cell coordinates.
// When center is true, x and y are ignored and fg is centered within bg.
// When shadow is true, a one-cell drop shadow is rendered beneath fg.
func PlaceOverlay(x, y int, fg, bg string, shadow, center bool) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	bgHeight := len(bgLines)
	fgHeight := len(fgLines)

	if shadow {
		shadowchar := lipgloss.NewStyle().Foreground(lipgloss.Color("#1f1d2e")).Render("░")
		var sb strings.Builder
		for i := 0; i <= fgHeight; i++ {
			if i == 0 {
				sb.WriteString(" " + strings.Repeat(" ", fgWidth))
			} else {
				sb.WriteString(" " + strings.Repeat(shadowchar, fgWidth))
			}
			if i < fgHeight {
				sb.WriteByte('\n')
			}
		}
		fg = PlaceOverlay(0, 0, fg, sb.String(), false, false)
		fgLines, fgWidth = getLines(fg)
		fgHeight = len(fgLines)
	}

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clampInt(x, 0, bgWidth-fgWidth)
	y = clampInt(y, 0, bgHeight-fgHeight)

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(strings.Repeat(" ", lineWidth-rightWidth-pos))
		}
		b.WriteString(right)
	}

	return b.String()
}

// getLines splits a string into lines, additionally returning the widest
// printable width.
func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); widest < w {
			widest = w
		}
	}
	return lines, widest
}

// cutLeft drops printable characters from the left, keeping any ANSI
// sequences still in effect for the remainder.
func cutLeft(s string, cutWidth int) string {
	var (
		pos    int
		isAnsi bool
		ab     bytes.Buffer
		b      bytes.Buffer
	)
	for _, c := range s {
		var w int
		if c == ansi.Marker || isAnsi {
			isAnsi = true
			ab.WriteRune(c)
			if ansi.IsTerminator(c) {
				isAnsi = false
				if bytes.HasSuffix(ab.Bytes(), []byte("[0m")) {
					ab.Reset()
				}
			}
		} else {
			w = runewidth.RuneWidth(c)
		}

		if pos >= cutWidth {
			if b.Len() == 0 && ab.Len() > 0 {
				b.Write(ab.Bytes())
			}
			b.WriteRune(c)
		}
		pos += w
	}
	return b.String()
}
