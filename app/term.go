package app

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// setTerminalBackground emits OSC 11 to set the terminal's default background
// color. Returns a function that restores the original default via OSC 111.
// This makes every ANSI reset (\033[0m) fall back to the app background
// instead of the terminal's configured default (usually black).
func setTerminalBackground(hexColor string) func() {
	return setTermBg(os.Stdout, hexColor)
}

func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	fmt.Fprintf(w, "\033]11;%s\033\\", hexColor)

	return func() {
		fmt.Fprint(w, "\033]111\033\\")
	}
}

// padToHeight extends the view with blank lines so the alt-screen renderer
// never leaves stale content below it. Width padding is not needed: OSC 11
// already makes unstyled cells the right color.
func padToHeight(s string, height int) string {
	if height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
