package querylog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FallbackMarker prefixes entries the caller explicitly flagged as
// unanswered, as opposed to queries no cascade stage matched.
const FallbackMarker = "FALLBACK: "

// ErrClosed indicates the log has been closed.
var ErrClosed = errors.New("query log is closed")

// Log is an append-only, line-oriented record of queries the assistant
// could not answer. Each line is an RFC 3339 timestamp, a separator, and
// the raw query text. Appends are serialized through a mutex so concurrent
// requests never interleave within a line; the file is opened O_APPEND and
// never rewritten.
type Log struct {
	mu     sync.Mutex
	f      *os.File
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// Open opens (creating if needed) the query log at path.
// Parent directories are created as required.
func Open(path string, opts ...Option) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	l := &Log{
		f:      f,
		logger: slog.Default().With("component", "querylog"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Record appends an unrecognized query.
func (l *Log) Record(query string) error {
	return l.append(query)
}

// RecordFallback appends a query the caller explicitly flagged as unanswered.
func (l *Log) RecordFallback(query string) error {
	return l.append(FallbackMarker + query)
}

// Close closes the underlying file. Further appends fail with ErrClosed.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

func (l *Log) append(text string) error {
	// Newlines inside the query would break the one-entry-per-line format.
	text = strings.ReplaceAll(text, "\n", " ")
	line := fmt.Sprintf("%s - %s\n", time.Now().UTC().Format(time.RFC3339), text)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return ErrClosed
	}
	if _, err := l.f.WriteString(line); err != nil {
		return err
	}
	return nil
}
