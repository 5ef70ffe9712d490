// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/platform-engineering-labs/xmlupload/internal/util"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

// SetupInitialLogging is used until the configuration has been read.
func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStandardLog()
}

// SetupClientLogging writes every record at or above the file level to a
// rotating log file and mirrors records at or above the console level to
// stderr, keeping stdout free for progress output.
func SetupClientLogging(cfg pkgmodel.LoggingConfig) error {
	filePath := util.ExpandHomePath(cfg.FilePath)
	if err := util.EnsureFileFolderHierarchy(filePath); err != nil {
		slog.Error("Failed to create log folder hierarchy", "error", err)
		return err
	}

	lumber := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		Compress:   true,
	}

	var consoleHandler slog.Handler
	if cfg.ConsoleLogLevel != NoLoggingLevel {
		consoleHandler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.ConsoleLogLevel,
			TimeFormat: time.Kitchen,
		})
	}

	handler := NewMultiLevelHandler(
		tint.NewHandler(lumber, &tint.Options{
			Level:      cfg.FileLogLevel,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}),
		consoleHandler,
	)

	slog.SetDefault(slog.New(handler))
	redirectStandardLog()

	return nil
}

// overwrite standard log so it's always redirected to slog, in case some deep
// dep is using it
func redirectStandardLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

// MultiLevelHandler fans records out to a file handler and an optional
// console handler, each with its own level.
type MultiLevelHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func NewMultiLevelHandler(file slog.Handler, console slog.Handler) *MultiLevelHandler {
	return &MultiLevelHandler{
		fileHandler:    file,
		consoleHandler: console,
	}
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler.Enabled(ctx, level) {
		return true
	}
	return h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level)
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}

	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{
		fileHandler: h.fileHandler.WithAttrs(attrs),
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{
		fileHandler: h.fileHandler.WithGroup(name),
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}

	return newHandler
}
