package log

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Level gates every logger created via Setup. It is shared as a
// LevelVar so the level can be adjusted at runtime without rebuilding
// the handler.
var Level = &slog.LevelVar{}

var levels = []struct {
	name  string
	level slog.Level
}{
	{"error", slog.LevelError},
	{"warn", slog.LevelWarn},
	{"info", slog.LevelInfo},
	{"debug", slog.LevelDebug},
}

// LevelNames lists all inputs ParseLevel accepts, most severe first.
func LevelNames() []string {
	names := make([]string, 0, len(levels))
	for _, l := range levels {
		names = append(names, l.name)
	}
	return names
}

func ParseLevel(s string) (slog.Level, error) {
	for _, l := range levels {
		if strings.EqualFold(s, l.name) {
			return l.level, nil
		}
	}
	return slog.LevelInfo, fmt.Errorf("%q is not a valid log level", s)
}

func Setup(level slog.Level, noColor bool) {
	Level.Set(level)
	slog.SetDefault(slog.New(newHandler(os.Stderr, Level, noColor)))
}
