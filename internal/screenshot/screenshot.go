// Package screenshot persists full-page captures for human review.
package screenshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Writer stores PNG captures under a single directory. Names carry a
// timestamp plus a short run id so concurrent runs never collide.
type Writer struct {
	dir   string
	runID string
	seq   atomic.Uint32
}

// NewWriter creates the target directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return &Writer{dir: dir, runID: uuid.NewString()[:8]}, nil
}

// Save writes one capture and returns its path. The label names the state
// that triggered the capture, e.g. "ready" or "not_found". A sequence number
// keeps same-second captures from overwriting each other.
func (w *Writer) Save(label string, png []byte) (string, error) {
	name := fmt.Sprintf("%s_%s_%02d_%s.png",
		time.Now().Format("20060102_150405"), w.runID, w.seq.Add(1), label)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}
