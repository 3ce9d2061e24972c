package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // slog attribute used for tag filtering

// filteringHandler drops records by tag, package or file before handing
// them to the wrapped handler.
type filteringHandler struct {
	base    slog.Handler
	filters *filterSets
	tag     string // tag attached through WithAttrs, if any
}

func newFilteringHandler(base slog.Handler, filters *filterSets) *filteringHandler {
	return &filteringHandler{base: base, filters: filters}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.filters == nil {
		return h.base.Handle(ctx, r)
	}

	pkg, file := sourceOf(r)
	if !allowed(h.filters.enabledPackages, h.filters.disabledPackages, pkg) {
		return nil
	}
	if !allowed(h.filters.enabledFiles, h.filters.disabledFiles, file) {
		return nil
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})
	if tag == "" {
		// Untagged records are dropped only when a tag allow-list exists.
		if h.filters.enabledTags != nil {
			return nil
		}
	} else if !allowed(h.filters.enabledTags, h.filters.disabledTags, tag) {
		return nil
	}

	return h.base.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &filteringHandler{base: h.base.WithAttrs(attrs), filters: h.filters, tag: h.tag}
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = strings.ToLower(a.Value.String())
		}
	}
	return next
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{base: h.base.WithGroup(name), filters: h.filters, tag: h.tag}
}

// allowed applies a disabled set (wins) and an optional enabled set.
// An empty name is never filtered.
func allowed(enabled, disabled map[string]struct{}, name string) bool {
	if name == "" {
		return true
	}
	name = strings.ToLower(name)
	if _, found := disabled[name]; found {
		return false
	}
	if enabled != nil {
		_, found := enabled[name]
		return found
	}
	return true
}

// sourceOf returns the package directory and base file name of the record's caller.
func sourceOf(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}
