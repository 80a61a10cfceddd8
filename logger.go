// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false, so slog
// returns before formatting the message or its attributes.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

// silent is the logger in effect until SetLogger installs another one.
var silent = slog.New(discardHandler{})

// current holds the active logger and is never empty.
var current = newLoggerCell(silent)

func newLoggerCell(l *slog.Logger) *atomic.Pointer[slog.Logger] {
	p := new(atomic.Pointer[slog.Logger])
	p.Store(l)
	return p
}

// SetLogger routes the log output of paper, render, shape and app to l.
// A nil l restores the silent default. It may be called while frames are
// being rendered on other goroutines.
//
// Levels:
//   - [slog.LevelDebug]: cache slot and buffer activity, once per frame
//   - [slog.LevelInfo]: adapter, device and surface lifecycle
//   - [slog.LevelWarn]: frame errors the run loop recovers from
//   - [slog.LevelError]: errors that stop the run loop
//
//	paper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
