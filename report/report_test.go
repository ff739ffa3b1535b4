package report

import (
	"bytes"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/poiesic/helpdesk/querylog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeQueryLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.log")
	l, err := querylog.Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record("how do I book a parking spot"))
	require.NoError(t, l.RecordFallback("the VPN answer did not help"))
	require.NoError(t, l.Record("кто отвечает за командировки"))
	require.NoError(t, l.Close())
	return path
}

func TestParseLog(t *testing.T) {
	path := writeQueryLog(t)

	entries, err := ParseLog(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "how do I book a parking spot", entries[0].Query)
	assert.False(t, entries[0].Fallback)
	assert.False(t, entries[0].Timestamp.IsZero())

	// The fallback marker is stripped and surfaced as a flag.
	assert.Equal(t, "the VPN answer did not help", entries[1].Query)
	assert.True(t, entries[1].Fallback)

	assert.Equal(t, "кто отвечает за командировки", entries[2].Query)
}

func TestParseLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.log")
	content := "garbage without separator\n" +
		"not-a-timestamp - some query\n" +
		"2025-08-01T10:00:00Z - a valid query\n" +
		"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entries, err := ParseLog(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a valid query", entries[0].Query)
}

func TestGenerate(t *testing.T) {
	logPath := writeQueryLog(t)
	outPath := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, Generate(logPath, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

// inflateStreams decompresses every stream object in a PDF and returns
// the concatenated output. Regions that do not inflate are skipped.
func inflateStreams(t *testing.T, raw []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	rest := raw
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream"):]
		rest = bytes.TrimPrefix(rest, []byte("\r"))
		rest = bytes.TrimPrefix(rest, []byte("\n"))
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			break
		}
		if r, err := zlib.NewReader(bytes.NewReader(rest[:end])); err == nil {
			_, _ = io.Copy(&out, r)
			r.Close()
		}
		rest = rest[end+len("endstream"):]
	}
	return out.Bytes()
}

func TestGenerate_CyrillicQuery(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "queries.log")
	l, err := querylog.Open(logPath)
	require.NoError(t, err)
	require.NoError(t, l.Record("как сбросить пароль"))
	require.NoError(t, l.Close())

	outPath := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, Generate(logPath, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	// Entry bodies are written in cp1251. Encode the query the same way,
	// confirm no rune was dropped, then look for the encoded bytes in
	// the inflated page content.
	tr, err := gofpdf.UnicodeTranslator(bytes.NewReader(cp1251Map))
	require.NoError(t, err)
	encoded := tr("как сбросить пароль")
	require.NotContains(t, encoded, ".")
	assert.True(t, bytes.Contains(inflateStreams(t, data), []byte(encoded)),
		"encoded query missing from PDF content")
}

func TestGenerate_EmptyLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "queries.log")
	require.NoError(t, os.WriteFile(logPath, nil, 0o644))
	outPath := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, Generate(logPath, outPath))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGenerate_MissingLog(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "report.pdf")
	err := Generate(filepath.Join(t.TempDir(), "absent.log"), outPath)
	assert.Error(t, err)
}
