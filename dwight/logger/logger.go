package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeHTTP      LogType = "HTTP"
	TypeDB        LogType = "DB"
	TypeDiscord   LogType = "DSC"
	TypeTranscode LogType = "FFM"
	TypeSystem    LogType = "SYS"
)

// disgo's rest client is chatty at debug level.
var skippedMessages = []string{
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
}

type Options struct {
	Level     slog.Leveler
	AddSource bool
	Format    string
	Service   string
	Color     bool
}

// New returns a JSON handler when Format is "json" and the coloured console handler otherwise.
func New(w io.Writer, opts Options) slog.Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if strings.EqualFold(opts.Format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		})
	}
	return NewHandler(w, opts)
}

type CustomHandler struct {
	opts  Options
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
	group string
}

func NewHandler(w io.Writer, opts Options) *CustomHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.Service == "" {
		opts.Service = "Dwight"
	}
	return &CustomHandler{
		opts: opts,
		mu:   &sync.Mutex{},
		out:  w,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

func (h *CustomHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkip(r.Message) {
		return nil
	}

	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify([]slog.Attr{a})...)
		return true
	})

	logType := TypeSystem
	var took, errText string
	var sb strings.Builder
	for _, a := range attrs {
		switch a.Key {
		case "type":
			logType = toLogType(a.Value.String())
		case "took":
			took = a.Value.String()
		case "error":
			errText = fmt.Sprint(a.Value.Any())
		default:
			fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value.Any())
		}
	}

	message := r.Message
	if errText != "" {
		message = fmt.Sprintf("%s: %s", message, errText)
	}
	if took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}
	if h.opts.AddSource && r.PC != 0 {
		src, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		message = fmt.Sprintf("%s (%s:%d)", message, shortFile(src.File), src.Line)
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	levelColor, levelText := levelStyle(r.Level)
	white, reset := colorWhite, colorReset
	if !h.opts.Color {
		levelColor, white, reset = "", "", ""
	}

	line := fmt.Sprintf("%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		white,
		h.opts.Service,
		ts.Format("15:04:05"),
		levelColor,
		levelText,
		white,
		logType,
		message,
		sb.String(),
		reset,
	)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func toLogType(t string) LogType {
	switch t {
	case "http":
		return TypeHTTP
	case "db":
		return TypeDB
	case "discord":
		return TypeDiscord
	case "transcode":
		return TypeTranscode
	default:
		return TypeSystem
	}
}

func shouldSkip(msg string) bool {
	msg = strings.ToLower(msg)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func shortFile(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
