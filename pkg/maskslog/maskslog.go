// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides an slog.Handler which hides the values of
// selected attributes, e.g. parameter values which may hold passwords.
package maskslog

import (
	"context"
	"log/slog"
)

// Mask is the replacement value of every masked attribute.
const Mask = "****"

// Handler is an slog.Handler.
type Handler struct {
	slog slog.Handler
	keys map[string]struct{}
}

// NewHandler returns a Handler which replaces the value of every
// attribute named by keys with [Mask] before passing records on to h.
func NewHandler(h slog.Handler, keys ...string) *Handler {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return &Handler{
		slog: h,
		keys: m,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	nr := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.slog.Handle(ctx, nr)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return &Handler{
		slog: h.slog.WithAttrs(masked),
		keys: h.keys,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		slog: h.slog.WithGroup(name),
		keys: h.keys,
	}
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]any, len(group))
		for i, ga := range group {
			masked[i] = h.mask(ga)
		}
		return slog.Group(a.Key, masked...)
	}
	if _, ok := h.keys[a.Key]; !ok {
		return a
	}
	return slog.String(a.Key, Mask)
}
