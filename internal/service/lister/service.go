package lister

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/oshokin/lamp-warden/internal/domain/lamp"
	"github.com/oshokin/lamp-warden/internal/repository/history"
)

// service encapsulates one read-only listing pass.
type service struct {
	// repo is the history store; the lister reads it without the lock,
	// which is safe because persist replaces the file atomically.
	repo *history.FileRepository
	// out receives the rendered lines.
	out io.Writer
}

// run loads the history and writes one line per entry.
func (s *service) run(ctx context.Context) error {
	log, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	for line := range Render(log) {
		if _, err := fmt.Fprintln(s.out, line); err != nil {
			return fmt.Errorf("write listing: %w", err)
		}
	}

	return nil
}

// Render returns a lazy, restartable sequence of rendered history entries
// in insertion order.
func Render(log *lamp.Log) iter.Seq[string] {
	return func(yield func(string) bool) {
		for e := range log.All() {
			if !yield(renderEntry(e)) {
				return
			}
		}
	}
}

// renderEntry formats one entry as "<time>  <ON|OFF>  <mode>  <label>".
func renderEntry(e lamp.Entry) string {
	state := "OFF"
	if e.IsOn {
		state = "ON"
	}

	mode := string(e.Mode)
	if mode == "" {
		mode = "-"
	}

	line := fmt.Sprintf("%s  %-3s  %-6s  %s", e.Time().Format(time.RFC3339), state, mode, e.Label)

	return strings.TrimRight(line, " ")
}
