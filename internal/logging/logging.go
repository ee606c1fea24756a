package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

const (
	CompHistory = "history"
	CompLaunch  = "launch"
	CompConfig  = "config"
	CompCLI     = "cli"
)

var (
	level = new(slog.LevelVar)
	out   = &swapWriter{w: os.Stderr}
	base  = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
)

func init() {
	level.Set(slog.LevelWarn)
}

// Setup points every component logger at w. verbosity 0 logs warnings and
// errors, 1 adds info, 2 and above add debug output.
func Setup(w io.Writer, verbosity int) {
	switch {
	case verbosity >= 2:
		level.Set(slog.LevelDebug)
	case verbosity == 1:
		level.Set(slog.LevelInfo)
	default:
		level.Set(slog.LevelWarn)
	}
	out.set(w)
}

// ForComponent returns a logger tagged with the component name. Loggers
// created before Setup still follow it.
func ForComponent(name string) *slog.Logger {
	return base.With(slog.String("component", name))
}

type swapWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *swapWriter) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
