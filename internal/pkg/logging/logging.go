package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Service names tag every record so that the site and the export tool can
// share a log sink.
const (
	ServiceLMS         = "lms"
	ServiceCourseGraph = "coursegraph"
)

// Options selects the handler and level of the default logger.
type Options struct {
	Service string
	Env     string
	Level   string
}

// SetupLogger installs the default logger and returns it. Production writes
// JSON, every other environment writes text.
func SetupLogger(opts Options, out io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: stringToLogLevel(opts.Level),
	}

	var handler slog.Handler = slog.NewTextHandler(out, handlerOpts)
	if opts.Env == "production" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With("service", opts.Service)
	}

	slog.SetDefault(logger)
	return logger
}

func stringToLogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
