package diag

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oshokin/lamp-warden/internal/logger"
)

// diagFileMode is the permission for a freshly created diagnostic file.
const diagFileMode = 0o600

// Sink appends policy diagnostics to a plain text file. Writing is
// best-effort: a broken sink never aborts the invocation that uses it.
type Sink struct {
	// path is the diagnostic file location; empty disables the sink.
	path string
	// invocationID correlates records with the log lines of one run.
	invocationID string
}

// NewSink creates a sink for the given path. An empty path yields a
// disabled sink whose Emit does nothing.
func NewSink(path, invocationID string) *Sink {
	return &Sink{
		path:         path,
		invocationID: invocationID,
	}
}

// Emit appends one timestamped diagnostic record. Failures are logged at
// warn level and otherwise ignored.
func (s *Sink) Emit(ctx context.Context, format string, args ...any) {
	if s == nil || s.path == "" {
		return
	}

	record := fmt.Sprintf(
		"%s [%s] %s\n",
		time.Now().Format(time.RFC3339),
		s.invocationID,
		fmt.Sprintf(format, args...),
	)

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, diagFileMode)
	if err != nil {
		logger.Warnf(ctx, "Diagnostic sink unavailable: %v", err)

		return
	}

	defer func() {
		_ = f.Close()
	}()

	if _, err := f.WriteString(record); err != nil {
		logger.Warnf(ctx, "Diagnostic record not written: %v", err)
	}
}
