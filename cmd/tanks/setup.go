package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// runtimeConfig sizes the battle to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 32
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// session holds what a local battle writes to: the log file and the
// results store. Both are optional.
type session struct {
	logFile *os.File
	store   *storage.Store
}

// openSession wires logging and persistence into the tanks package. The
// terminal belongs to the battle, so logs go to a file.
func openSession() *session {
	s := &session{}

	logger := log.New(os.Stderr)
	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			s.logFile = f
			logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "tanks"})
		}
	}
	if s.logFile == nil {
		logger.SetLevel(log.WarnLevel)
	}
	tanks.SetLogger(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
	} else {
		s.store = store
		tanks.SetResultSink(store)
	}
	tanks.SetLevelsDir(flagLevelsDir)
	return s
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}
