package querylog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestLog_Record(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Record("how do I book a meeting room"))

	lines := readLines(t, path)
	require.Len(t, lines, 1)

	ts, text, ok := strings.Cut(lines[0], " - ")
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
	assert.Equal(t, "how do I book a meeting room", text)
}

func TestLog_RecordFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.RecordFallback("the answer did not help"))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	_, text, _ := strings.Cut(lines[0], " - ")
	assert.Equal(t, FallbackMarker+"the answer did not help", text)
}

func TestLog_StripsNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Record("line one\nline two"))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "line one line two")
}

func TestLog_AppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record("first"))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record("second"))
	require.NoError(t, l.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}

func TestLog_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "queries.log")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestLog_ClosedReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	assert.ErrorIs(t, l.Record("too late"), ErrClosed)
	// Closing twice is fine.
	assert.NoError(t, l.Close())
}

func TestLog_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Record("concurrent query"))
		}()
	}
	wg.Wait()

	lines := readLines(t, path)
	require.Len(t, lines, writers)
	for _, line := range lines {
		assert.Contains(t, line, " - concurrent query")
	}
}
