// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"log/slog"
	"strings"
)

// slogWriter receives the output of the standard logger. A leading level
// word such as "ERROR:" or "WARN" selects the slog level, everything else is
// logged at debug level.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")

	for _, l := range []struct {
		prefix string
		level  slog.Level
	}{
		{"ERROR", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"INFO", slog.LevelInfo},
	} {
		if rest, ok := strings.CutPrefix(msg, l.prefix); ok && rest != "" {
			slog.Log(context.Background(), l.level, strings.TrimLeft(rest, ": "))
			return len(p), nil
		}
	}

	slog.Debug(msg)
	return len(p), nil
}
