package crawler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/arjunsahni/spacetime-crawler-go/internal/types"
)

// AuditLog appends a JSONL record of every processed page, adapted
// from the teacher's internal/storage/storage.go JSONL writer. It is
// the diagnostic trail spec.md §7 implies ("logged") without pinning
// a format; an empty path disables it.
type AuditLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenAuditLog opens (creating parent directories as needed) the
// audit log file at path, appending to any existing content. A blank
// path yields a nil *AuditLog; Record and Close are no-ops on nil.
func OpenAuditLog(path string) (*AuditLog, error) {
	if path == "" {
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("auditlog: creating directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("auditlog: opening file: %w", err)
	}
	return &AuditLog{file: file}, nil
}

// Record appends one outcome as a JSON line. A marshal or write error
// is silently swallowed (not logged), matching spec.md §7's "persistence
// error... must not crash a worker."
func (a *AuditLog) Record(outcome types.PageOutcome) {
	if a == nil {
		return
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return
	}
	data = append(data, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()
	a.file.Write(data)
}

// Close releases the underlying file handle.
func (a *AuditLog) Close() error {
	if a == nil {
		return nil
	}
	return a.file.Close()
}
