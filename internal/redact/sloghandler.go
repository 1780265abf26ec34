package redact

import (
	"context"
	"log/slog"
)

// Handler wraps a slog.Handler and redacts every string-valued attribute
// and the message itself before delegating, so no secret reaches log output
// regardless of where the log call originates.
type Handler struct {
	inner    slog.Handler
	redactor *Redactor
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a redacting handler around inner.
func NewHandler(inner slog.Handler, redactor *Redactor) *Handler {
	return &Handler{inner: inner, redactor: redactor}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, h.redactor.Redact(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.redactAttr(a)
	}
	return &Handler{inner: h.inner.WithAttrs(clean), redactor: h.redactor}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), redactor: h.redactor}
}

// redactAttr redacts string values, recursing into groups.
func (h *Handler) redactAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.redactor.Redact(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		clean := make([]any, 0, len(group))
		for _, g := range group {
			clean = append(clean, h.redactAttr(g))
		}
		return slog.Group(a.Key, clean...)
	default:
		return a
	}
}
