package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// SourceKey is the attribute carrying the caller as "internal/<pkg path>/<file>.go:<line>".
const SourceKey = "caller"

type sourceHandler struct {
	handler slog.Handler
	from    slog.Leveler
}

// NewSourceHandler adds the caller to records at or above from. Paths are cut
// at the module's internal/ directory so ledger logs read the same on every
// build host. The wrapped handler must have AddSource disabled.
func NewSourceHandler(handler slog.Handler, from slog.Leveler) slog.Handler {
	return &sourceHandler{handler: handler, from: from}
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.from.Level() && r.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := fs.Next()
		r.AddAttrs(slog.String(SourceKey, callerPath(f.File)+":"+strconv.Itoa(f.Line)))
	}
	return h.handler.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{handler: h.handler.WithAttrs(attrs), from: h.from}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{handler: h.handler.WithGroup(name), from: h.from}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func callerPath(file string) string {
	if i := strings.LastIndex(file, "/internal/"); i >= 0 {
		return file[i+1:]
	}
	if i := strings.LastIndex(file, "/cmd/"); i >= 0 {
		return file[i+1:]
	}
	return file
}
