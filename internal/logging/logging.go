// Package logging builds the process slog.Logger and the optional capped log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/RawAnimal/EncounterBuilder/internal/config"
)

// New builds a text logger for cfg. In stdio mode logs go to stderr so stdout
// stays clean for JSON-RPC. When cfg.Log.Path is set, logs go to that file and
// the returned closer releases it.
func New(cfg config.Config) (*slog.Logger, io.Closer, error) {
	var w io.Writer = os.Stdout
	if cfg.Transport.Mode == config.TransportStdio {
		w = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if cfg.Log.Path != "" {
		fw, err := NewFileWriter(cfg.Log.Path)
		if err != nil {
			return nil, nil, err
		}
		w, closer = fw, fw
	}
	return NewWithWriter(w, cfg.Log.Level), closer, nil
}

// NewWithWriter builds a text logger writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config label to a slog level; unknown labels are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
