package bootstrap

import (
	"log/slog"
	"os"
)

// ConfigureLogging installs a JSON slog handler on stdout as the default
// logger. Unknown level names fall back to info.
func ConfigureLogging(level string) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)})))
}

func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
