//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"

	"github.com/oshokin/lamp-warden/internal/domain/lamp"
	"github.com/oshokin/lamp-warden/internal/logger"
	"github.com/oshokin/lamp-warden/internal/repository/history"
)

// Session owns the history log for the span of one invocation: it takes the
// exclusive store lock, loads the log, and guarantees the lock is dropped
// on every exit path. Only Commit persists; bailing out through Close
// leaves the stored history exactly as it was.
type Session struct {
	// repo is the locked underlying store.
	repo *history.FileRepository
	// Log is the in-memory history, exclusively owned until Commit or Close.
	Log *lamp.Log
	// done flips once the lock has been released.
	done bool
}

// Begin locks the history store and loads the log. The lock is taken before
// the read so the whole read-decide-append-write cycle is atomic with
// respect to concurrent invocations.
func Begin(ctx context.Context, repo *history.FileRepository) (*Session, error) {
	if err := repo.Acquire(ctx); err != nil {
		return nil, err
	}

	log, err := repo.Load(ctx)
	if err != nil {
		_ = repo.Release()

		return nil, err
	}

	return &Session{
		repo: repo,
		Log:  log,
	}, nil
}

// Commit persists the full log and releases the lock.
func (s *Session) Commit(ctx context.Context) error {
	if s.done {
		return nil
	}

	s.done = true

	err := s.repo.Persist(ctx, s.Log)
	if releaseErr := s.repo.Release(); releaseErr != nil && err == nil {
		err = releaseErr
	}

	if err != nil {
		return fmt.Errorf("commit history: %w", err)
	}

	return nil
}

// Close releases the lock without persisting. It is a no-op after Commit,
// so callers defer it right after Begin.
func (s *Session) Close(ctx context.Context) {
	if s.done {
		return
	}

	s.done = true

	if err := s.repo.Release(); err != nil {
		logger.Warnf(ctx, "Failed to release history lock: %v", err)
	}
}
