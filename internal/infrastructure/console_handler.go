package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// consoleHandler renders records as a single human-readable line:
//
//	2024-05-01 10:00:00 info    server started port=5000
//
// Levels are colored through a lipgloss renderer bound to the output, so
// writers that are not terminals get plain text. Multi-line values such as
// stack traces are printed indented below the record.
type consoleHandler struct {
	opts   slog.HandlerOptions
	styles consoleStyles

	preformatted []byte
	groups       []string

	mu *sync.Mutex
	w  io.Writer
}

type consoleStyles struct {
	time   lipgloss.Style
	key    lipgloss.Style
	levels map[slog.Level]lipgloss.Style
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return consoleStyles{
		time: r.NewStyle().Faint(true),
		key:  r.NewStyle().Faint(true),
		levels: map[slog.Level]lipgloss.Style{
			LevelError:   color("9").Bold(true),
			LevelWarn:    color("11"),
			LevelInfo:    color("10"),
			LevelHTTP:    color("13"),
			LevelVerbose: color("14"),
			LevelDebug:   color("12"),
			LevelSilly:   color("8"),
		},
	}
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &consoleHandler{
		opts:   *opts,
		styles: newConsoleStyles(lipgloss.NewRenderer(w)),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	if !r.Time.IsZero() {
		buf = append(buf, h.styles.time.Render(r.Time.Format(TimeFormat))...)
		buf = append(buf, ' ')
	}

	level := fmt.Sprintf("%-7s", levelName(r.Level))
	if style, ok := h.styles.levels[r.Level]; ok {
		level = style.Render(level)
	}
	buf = append(buf, level...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)
	buf = append(buf, h.preformatted...)

	var trailers []string
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, &trailers, h.groups, a)
		return true
	})
	buf = append(buf, '\n')

	for _, t := range trailers {
		for _, line := range strings.Split(strings.TrimRight(t, "\n"), "\n") {
			buf = append(buf, "    "...)
			buf = append(buf, line...)
			buf = append(buf, '\n')
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.preformatted = slices.Clone(h.preformatted)
	for _, a := range attrs {
		h2.preformatted = h.appendAttr(h2.preformatted, nil, h.groups, a)
	}
	return &h2
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(slices.Clip(h.groups), name)
	return &h2
}

// appendAttr writes a as " key=value". Nested groups are flattened with dotted
// keys. Multi-line strings go to trailers when it is non-nil.
func (h *consoleHandler) appendAttr(buf []byte, trailers *[]string, groups []string, a slog.Attr) []byte {
	if rep := h.opts.ReplaceAttr; rep != nil && a.Value.Kind() != slog.KindGroup {
		a = rep(groups, a)
	}
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return buf
		}
		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
		}
		for _, ga := range attrs {
			buf = h.appendAttr(buf, trailers, groups, ga)
		}
		return buf
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + a.Key
	}

	value := a.Value.String()
	if trailers != nil && a.Value.Kind() == slog.KindString && strings.Contains(value, "\n") {
		*trailers = append(*trailers, value)
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, h.styles.key.Render(key+"=")...)
	buf = append(buf, quoteIfNeeded(value)...)
	return buf
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\n\r") {
		return strconv.Quote(s)
	}
	return s
}
