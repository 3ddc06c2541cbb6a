package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/lamp-warden/internal/domain/lamp"
)

// file permissions for the history JSON and its lock file.
const (
	historyFileMode = 0o600
	lockFileMode    = 0o600
)

// ErrCorrupt is returned when the history file exists but cannot be decoded.
var ErrCorrupt = errors.New("history file corrupt")

// FileRepository persists the state history as JSON on disk.
//
// The real concurrency hazard is separate OS processes (cron and alert
// handlers racing on the same device), so exclusion is an advisory file
// lock, not an in-process mutex. The lock is held from Acquire until
// Release across the whole read-decide-append-write cycle.
type FileRepository struct {
	// path is the filesystem location of the history JSON.
	path string
	// lockPath is the filesystem location of the lock file.
	lockPath string
	// lock is the held lock file handle, nil while unlocked.
	lock *os.File
}

// NewFileRepository creates a repository that reads/writes the history at
// path, guarded by the lock file at lockPath (path + ".lock" when empty).
func NewFileRepository(path, lockPath string) *FileRepository {
	if lockPath == "" {
		lockPath = path + ".lock"
	}

	return &FileRepository{
		path:     filepath.Clean(path),
		lockPath: filepath.Clean(lockPath),
	}
}

// Acquire takes the exclusive advisory lock, blocking until it is available.
// It is a no-op when the lock is already held.
func (r *FileRepository) Acquire(_ context.Context) error {
	if r.lock != nil {
		return nil
	}

	f, err := os.OpenFile(r.lockPath, os.O_CREATE|os.O_RDWR, lockFileMode)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := lockExclusive(f); err != nil {
		_ = f.Close()

		return fmt.Errorf("acquire history lock: %w", err)
	}

	r.lock = f

	return nil
}

// Release drops the advisory lock. Safe to call when the lock is not held,
// so callers can defer it unconditionally.
func (r *FileRepository) Release() error {
	if r.lock == nil {
		return nil
	}

	f := r.lock
	r.lock = nil

	return errors.Join(unlock(f), f.Close())
}

// Load reads the history from disk. A missing file is not an error: an
// empty log is persisted immediately and returned, so every later reader
// sees a well-formed store.
func (r *FileRepository) Load(ctx context.Context) (*lamp.Log, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log := new(lamp.Log)
			if err := r.Persist(ctx, log); err != nil {
				return nil, err
			}

			return log, nil
		}

		return nil, fmt.Errorf("read history file: %w", err)
	}

	var log lamp.Log
	if err := json.Unmarshal(contents, &log); err != nil {
		return nil, fmt.Errorf("decode history file %s: %w: %w", r.path, ErrCorrupt, err)
	}

	return &log, nil
}

// Persist replaces the stored history with the full current log.
//
// The write goes to a temp file in the same directory followed by a rename,
// so an invocation killed mid-write leaves either the old or the new
// complete content, never a truncated file.
func (r *FileRepository) Persist(_ context.Context, log *lamp.Log) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := writeAtomic(r.path, data, historyFileMode); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	return nil
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-history-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// On success the rename consumes the temp file; on any failure it is
	// removed so aborted writes leave no debris next to the store.
	var renamed bool

	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	renamed = true

	return nil
}
