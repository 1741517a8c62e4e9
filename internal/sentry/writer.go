package sentry

import (
	"io"
	"regexp"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level represents the severity level for the sentry writer.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// linePreamble matches the prefix the log package puts on every line
// ("ERROR: 2026/01/02 15:04:05 client.go:42: "). The source location is
// captured so events can be tagged with it instead of burying it in the
// message text.
var linePreamble = regexp.MustCompile(`^[A-Z]+: \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} ([^ :]+\.go:\d+): `)

// Writer wraps an io.Writer and forwards log messages to Sentry.
// Errors become Sentry events tagged with their source location; warnings
// and info become breadcrumbs.
type Writer struct {
	inner io.Writer
	level Level
}

// NewWriter creates a Writer that tees to inner and forwards to Sentry.
func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

// splitPreamble strips the logger preamble from a line, returning the
// source location and the bare message. Lines without a preamble come back
// unchanged with an empty source.
func splitPreamble(line string) (source, msg string) {
	if m := linePreamble.FindStringSubmatch(line); m != nil {
		return m[1], line[len(m[0]):]
	}
	return "", line
}

func (w *Writer) Write(p []byte) (int, error) {
	// Always write to the original destination first.
	n, err := w.inner.Write(p)

	if !enabled {
		return n, err
	}

	line := strings.TrimSpace(string(p))
	if line == "" {
		return n, err
	}
	source, msg := splitPreamble(line)

	switch w.level {
	case LevelError:
		gosentry.WithScope(func(scope *gosentry.Scope) {
			if source != "" {
				scope.SetTag("log.source", source)
			}
			gosentry.CaptureMessage(msg)
		})
	case LevelWarning:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelWarning,
			Category: "log",
			Message:  msg,
		})
	case LevelInfo:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelInfo,
			Category: "log",
			Message:  msg,
		})
	}

	return n, err
}
