// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

func TestLogging_DirectSlogInfo(t *testing.T) {
	capture := NewTestLogCapture()
	defer capture.Install(slog.LevelInfo)()

	slog.Info("test info")

	assert.True(t, capture.ContainsAll("test info", "level=INFO"))
}

func TestLogging_LogProxy(t *testing.T) {
	capture := NewTestLogCapture()
	defer capture.Install(slog.LevelDebug)()
	lw := &slogWriter{}
	log.SetOutput(lw)
	log.SetFlags(0)

	log.Print("ERROR: something broke")
	log.Print("WARN careful")
	log.Print("plain message")

	entries := capture.GetEntries()
	require.Len(t, entries, 3)
	assert.Contains(t, entries[0], "level=ERROR")
	assert.Contains(t, entries[0], `msg="something broke"`)
	assert.Contains(t, entries[1], "level=WARN")
	assert.Contains(t, entries[1], "msg=careful")
	assert.Contains(t, entries[2], "level=DEBUG")
}

func TestMultiLevelHandler(t *testing.T) {
	file := NewTestLogCapture()
	console := NewTestLogCapture()

	handler := NewMultiLevelHandler(
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(handler).With("run", "2xyz")

	logger.Debug("parsed document")
	logger.Warn("slow server")

	assert.Len(t, file.GetEntries(), 2)
	assert.True(t, file.ContainsAll("parsed document", "slow server", "run=2xyz"))
	assert.Len(t, console.GetEntries(), 1)
	assert.True(t, console.ContainsAll("slow server", "run=2xyz"))

	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiLevelHandler_WithoutConsole(t *testing.T) {
	file := NewTestLogCapture()
	handler := NewMultiLevelHandler(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo}), nil)

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))

	slog.New(handler.WithGroup("upload")).Info("created", "id", "book_1")
	assert.True(t, file.ContainsAll("upload.id=book_1"))
}

func TestSetupClientLogging(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	path := filepath.Join(t.TempDir(), "logs", "xmlupload.log")
	require.NoError(t, SetupClientLogging(pkgmodel.LoggingConfig{
		FilePath:        path,
		FileLogLevel:    slog.LevelDebug,
		ConsoleLogLevel: NoLoggingLevel,
	}))

	slog.Debug("written to file", "resource", "book_1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
	assert.Contains(t, string(data), "resource=book_1")
}
