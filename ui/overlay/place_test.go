package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainBg(width, height int) string {
	line := strings.Repeat(".", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = line
	}
	return strings.Join(rows, "\n")
}

func TestPlaceOverlay_Basic(t *testing.T) {
	got := PlaceOverlay(1, 1, "XX", plainBg(5, 3), false, false)

	assert.Equal(t, ".....\n.XX..\n.....", got)
}

func TestPlaceOverlay_Center(t *testing.T) {
	got := PlaceOverlay(0, 0, "XX", plainBg(6, 3), false, true)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "..XX..", lines[1])
	assert.Equal(t, "......", lines[0])
	assert.Equal(t, "......", lines[2])
}

func TestPlaceOverlay_ClampsToEdges(t *testing.T) {
	// x way past the right edge clamps to the last column that fits.
	got := PlaceOverlay(99, 0, "XX", plainBg(5, 1), false, false)
	assert.Equal(t, "...XX", got)

	got = PlaceOverlay(-3, 0, "XX", plainBg(5, 1), false, false)
	assert.Equal(t, "XX...", got)
}

func TestPlaceOverlay_ForegroundCoversBackground(t *testing.T) {
	fg := plainBg(6, 4)
	got := PlaceOverlay(0, 0, fg, "ab", false, false)
	assert.Equal(t, fg, got, "a foreground at least as large as the background replaces it")
}

func TestPlaceOverlay_PreservesLineWidths(t *testing.T) {
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("#eb6f92")).Render(strings.Repeat("ab", 10))
	bg := styled + "\n" + styled + "\n" + styled

	got := PlaceOverlay(4, 1, "##", bg, false, false)
	for _, line := range strings.Split(got, "\n") {
		assert.Equal(t, 20, ansi.PrintableRuneWidth(line))
	}
	assert.Contains(t, strings.Split(got, "\n")[1], "##")
}

func TestPlaceOverlay_ShadowAddsRowAndColumn(t *testing.T) {
	got := PlaceOverlay(0, 0, "AB", plainBg(8, 4), true, false)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "AB"))
	assert.Contains(t, lines[1], "░", "drop shadow renders under the overlay")
}

func TestCutLeft(t *testing.T) {
	assert.Equal(t, "cde", cutLeft("abcde", 2))
	assert.Equal(t, "", cutLeft("ab", 5))

	// ANSI sequences in effect at the cut point survive it.
	styled := "\x1b[31mabcdef\x1b[0m"
	rest := cutLeft(styled, 3)
	assert.True(t, strings.HasPrefix(rest, "\x1b[31m"))
	assert.Contains(t, rest, "def")
	assert.Equal(t, 3, ansi.PrintableRuneWidth(rest))
}

func TestGetLines(t *testing.T) {
	lines, widest := getLines("ab\nabcd\na")
	assert.Len(t, lines, 3)
	assert.Equal(t, 4, widest)

	// Styling does not count toward the printable width.
	styled := lipgloss.NewStyle().Bold(true).Render("abcd")
	_, widest = getLines(styled)
	assert.Equal(t, 4, widest)
}
