package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2026-03-01T10:04:05Z INFO [pipeline] (summarizing) – stage complete words=70
//
// The component and stage fields move into the prefix. Everything else is
// rendered as key=value pairs in the order it was attached.
type consoleHandler struct {
	out       *lockedWriter
	level     slog.Leveler
	addSource bool
	group     string
	preset    []field
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{out: &lockedWriter{w: w}, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = appendFields(slices.Clip(h.preset), h.group, attrs)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := slices.Clone(h.preset)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendFields(fields, h.group, []slog.Attr{attr})
		return true
	})
	component, fields := takeField(fields, FieldComponent)
	stage, fields := takeField(fields, FieldStage)

	when := record.Time
	if when.IsZero() {
		when = time.Now()
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}

	var line strings.Builder
	line.WriteString(when.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	line.WriteString(levelLabel(record.Level))
	if component != "" {
		fmt.Fprintf(&line, " [%s]", component)
	}
	if stage != "" {
		fmt.Fprintf(&line, " (%s)", stage)
	}
	line.WriteString(" – ")
	line.WriteString(msg)
	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&line, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range fields {
		line.WriteByte(' ')
		line.WriteString(f.key)
		line.WriteByte('=')
		line.WriteString(renderValue(f.value))
	}
	line.WriteByte('\n')

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	_, err := io.WriteString(h.out.w, line.String())
	return err
}

// appendFields flattens attrs into dst, joining group names with dots.
func appendFields(dst []field, group string, attrs []slog.Attr) []field {
	for _, attr := range attrs {
		value := attr.Value.Resolve()
		switch {
		case attr.Equal(slog.Attr{}):
		case value.Kind() == slog.KindGroup:
			inner := group
			if attr.Key != "" {
				inner += attr.Key + "."
			}
			dst = appendFields(dst, inner, value.Group())
		case attr.Key == "":
		default:
			dst = append(dst, field{key: group + attr.Key, value: value})
		}
	}
	return dst
}

// takeField drops every field named key and returns the first one's value.
func takeField(fields []field, key string) (string, []field) {
	var first string
	kept := fields[:0]
	for _, f := range fields {
		if f.key != key {
			kept = append(kept, f)
			continue
		}
		if first == "" {
			first = f.value.String()
		}
	}
	return first, kept
}

var levelLabels = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func levelLabel(level slog.Level) string {
	idx := (int(level) - int(slog.LevelDebug)) / 4
	return levelLabels[min(max(idx, 0), len(levelLabels)-1)]
}

// renderValue quotes anything that would break key=value parsing.
func renderValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
