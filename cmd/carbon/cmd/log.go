package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger returns a JSON logger tagged with the module name and version.
// Source locations are attached at debug level.
func newLogger(w io.Writer, level, version string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With("module", name, "version", version), nil
}
