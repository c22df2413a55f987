package batcher

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so callers skip
// building the record at all.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used by batcher and package upload.
// Passing nil silences logging again, which is also the default.
// It may be called concurrently with logging.
//
// Records emitted:
//   - [slog.LevelDebug] "batcher: finalize" with batches, touched,
//     rewritten, shifted and removed counts; "upload: buffer created" and
//     "upload: buffer released"
//   - [slog.LevelWarn] "batcher: entry rejected" when Add gets a weight
//     above the batch capacity
//
// Uploaders pass the logger on to adapters that have a SetLogger method;
// backend/native logs buffer creation at Debug, shared-device setup at Info
// and dropped writes at Warn.
//
//	batcher.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the installed logger. It never returns nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
