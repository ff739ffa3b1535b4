package ingestion

import (
	"archive/zip"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocx(t *testing.T, dir, name, documentXML string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph about </w:t></w:r><w:r><w:t>VPN access.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph about passwords.</w:t></w:r></w:p>
    <w:p></w:p>
  </w:body>
</w:document>`

func TestExtractDocx(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "guide.docx", docxBody)

	text, err := extractText(path, slog.Default())
	require.NoError(t, err)

	// Runs within a paragraph are joined, paragraphs become lines, and
	// empty paragraphs are dropped.
	assert.Equal(t, "First paragraph about VPN access.\nSecond paragraph about passwords.", text)
}

func TestExtractDocx_MissingDocumentPart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = extractText(path, slog.Default())
	assert.Error(t, err)
}

func TestExtractDocx_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text pretending"), 0o644))

	_, err := extractText(path, slog.Default())
	assert.Error(t, err)
}

func TestExtractText_Dispatch(t *testing.T) {
	dir := t.TempDir()

	t.Run("txt", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain contents"), 0o644))
		text, err := extractText(path, slog.Default())
		require.NoError(t, err)
		assert.Equal(t, "plain contents", text)
	})

	t.Run("extension is case insensitive", func(t *testing.T) {
		path := filepath.Join(dir, "NOTES.TXT")
		require.NoError(t, os.WriteFile(path, []byte("upper"), 0o644))
		_, err := extractText(path, slog.Default())
		assert.NoError(t, err)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := extractText(filepath.Join(dir, "data.csv"), slog.Default())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("no extension", func(t *testing.T) {
		_, err := extractText(filepath.Join(dir, "README"), slog.Default())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
