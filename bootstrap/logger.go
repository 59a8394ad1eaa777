package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// NewLogger writes to stderr, colored only when stderr is a terminal.
func NewLogger(level string) (*slog.Logger, error) {
	return newLogger(colorable.NewColorable(os.Stderr), level, !isatty.IsTerminal(os.Stderr.Fd()))
}

func newLogger(w io.Writer, level string, noColor bool) (*slog.Logger, error) {

	ll := &slog.LevelVar{}
	err := ll.UnmarshalText([]byte(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level '%s': %w", level, err)
	}

	// Skip timestamps when running under systemd (it adds its own).
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})), nil
}
