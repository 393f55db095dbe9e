package dither

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/voidcluster/dither/compute"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by dither and propagates it to the
// compute package so back-end selection and dispatch logging share the
// same configuration. Pass nil to restore the silent default.
//
// Log levels used:
//   - Info: back-end selected (compute.Select), generation finished
//     (Generate).
//   - Warn: a back-end failed to initialize and Select fell back to the
//     next one.
//
// No Debug-level records are emitted; the homogenizer and ranker do not
// log per iteration.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	compute.SetLogger(l)
}

// Logger returns the current logger used by dither.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
