package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/lenslabs/plint/internal/output"
)

type handler struct {
	dst io.Writer

	escaper *strings.Replacer
	level   *slog.LevelVar
	mtx     sync.Mutex
	noColor bool
}

func newHandler(dst io.Writer, level *slog.LevelVar, noColor bool) *handler {
	h := handler{
		mtx:     sync.Mutex{},
		dst:     dst,
		level:   level,
		noColor: noColor,
		escaper: strings.NewReplacer(`"`, `\"`),
	}
	return &h
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, record slog.Record) error {
	buf := bytes.NewBuffer(make([]byte, 0, 128))

	var lc output.ColorFn
	switch record.Level {
	case slog.LevelInfo:
		lc = output.MakeWhite
	case slog.LevelError:
		lc = output.MakeRed
	case slog.LevelWarn:
		lc = output.MakeYellow
	case slog.LevelDebug:
		lc = output.MakeMagneta
	default:
		lc = output.MakeWhite
	}
	h.printKey(buf, "level")
	h.printVal(buf, record.Level.String(), lc)
	_, _ = buf.WriteRune(' ')
	h.printKey(buf, "msg")
	h.printVal(buf, record.Message, output.MakeWhite)

	record.Attrs(func(attr slog.Attr) bool {
		_, _ = buf.WriteRune(' ')
		h.appendAttr(buf, attr)
		return true
	})
	_, _ = buf.WriteRune('\n')

	h.mtx.Lock()
	defer h.mtx.Unlock()

	if _, err := buf.WriteTo(h.dst); err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	return nil
}

func (h *handler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *handler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *handler) printKey(buf *bytes.Buffer, s string) {
	_, _ = buf.WriteString(output.MaybeColor(output.MakeGray, h.noColor, "%s", s+"="))
}

func (h *handler) printVal(buf *bytes.Buffer, s string, color output.ColorFn) {
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") && strings.Contains(s, " ") {
		s = "\"" + h.escaper.Replace(s) + "\""
	}
	_, _ = buf.WriteString(output.MaybeColor(color, h.noColor, "%s", s))
}

func (h *handler) appendAttr(buf *bytes.Buffer, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()

	h.printKey(buf, attr.Key)

	// nolint: exhaustive
	switch attr.Value.Kind() {
	case slog.KindAny:
		switch attr.Value.Any().(type) {
		case error:
			h.printVal(buf, formatString(attr), output.MakeRed)
		default:
			h.printVal(buf, formatAny(attr), output.MakeCyan)
		}
	case slog.KindString:
		h.printVal(buf, formatString(attr), output.MakeCyan)
	default:
		h.printVal(buf, formatAny(attr), output.MakeBlue)
	}
}

func formatAny(attr slog.Attr) string {
	data, err := json.Marshal(attr.Value.Any())
	if err != nil {
		return attr.Value.String()
	}
	return string(data)
}

func formatString(attr slog.Attr) string {
	return strings.ReplaceAll(attr.Value.String(), "\n", "\\n")
}
