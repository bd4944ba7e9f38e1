/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: recorder.go
Description: Append-only capture file writer. Each accepted request body is written
verbatim followed by a newline. Safe for use from browser event goroutines.
*/

package capture

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Recorder appends request bodies to the capture file
type Recorder struct {
	path  string
	file  *os.File
	mu    sync.Mutex
	count int64
}

// NewRecorder truncates path and opens it for appending
func NewRecorder(path string) (*Recorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file: %w", err)
	}
	return &Recorder{path: path, file: file}, nil
}

// Record writes one body as a line. Empty bodies are ignored.
func (r *Recorder) Record(body []byte) error {
	if len(body) == 0 {
		return nil
	}

	line := make([]byte, 0, len(body)+1)
	line = append(line, body...)
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return fmt.Errorf("capture file %s is closed", r.path)
	}
	if _, err := r.file.Write(line); err != nil {
		return fmt.Errorf("failed to write request to capture file: %w", err)
	}
	atomic.AddInt64(&r.count, 1)
	return nil
}

// Count returns the number of recorded bodies
func (r *Recorder) Count() int64 {
	return atomic.LoadInt64(&r.count)
}

// Path returns the capture file path
func (r *Recorder) Path() string {
	return r.path
}

// Close flushes and closes the capture file
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
