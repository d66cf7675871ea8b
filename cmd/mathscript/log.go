package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for log output.
var (
	logKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	logInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	logWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	logErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return logErrorStyle
	case l >= slog.LevelWarn:
		return logWarnStyle
	case l >= slog.LevelInfo:
		return logInfoStyle
	default:
		return logDebugStyle
	}
}

// prettyHandler is a compact colorized slog.Handler for terminal diagnostics.
type prettyHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(&prettyHandler{
		opts: slog.HandlerOptions{Level: level},
		mu:   &sync.Mutex{},
		w:    w,
	})
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString(levelStyle(r.Level).Render(r.Level.String()))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	buf.WriteByte(' ')
	buf.WriteString(logKeyStyle.Render(a.Key + "="))
	fmt.Fprintf(buf, "%v", a.Value.Any())
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func (h *prettyHandler) WithGroup(string) slog.Handler {
	// Groups are not rendered; attrs keep their plain keys.
	return h
}
