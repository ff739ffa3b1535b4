package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractText pulls plain text out of a knowledge file by extension.
func extractText(path string, logger *slog.Logger) (string, error) {
	switch strings.ToLower(fileExt(path)) {
	case ".docx":
		return extractDocx(path, logger)
	case ".pdf":
		return extractPDF(path)
	case ".txt":
		return extractTxt(path)
	default:
		return "", ErrUnsupportedFormat
	}
}

func fileExt(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return ""
	}
	return path[i:]
}

// extractDocx reads the main document part of a .docx archive and collects
// the text runs, one line per paragraph. An unreadable run is logged and
// skipped so a damaged paragraph never discards the rest of the file.
func extractDocx(path string, logger *slog.Logger) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document part: %w", err)
		}
		defer rc.Close()
		return collectDocxText(rc, logger)
	}
	return "", fmt.Errorf("open docx: word/document.xml missing")
}

func collectDocxText(r io.Reader, logger *slog.Logger) (string, error) {
	dec := xml.NewDecoder(r)
	var lines []string
	var para strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "t" {
				continue
			}
			var run string
			if err := dec.DecodeElement(&run, &t); err != nil {
				logger.Warn("skipping unreadable text run", "err", err)
				continue
			}
			para.WriteString(run)
		case xml.EndElement:
			if t.Name.Local == "p" {
				if text := strings.TrimSpace(para.String()); text != "" {
					lines = append(lines, text)
				}
				para.Reset()
			}
		}
	}

	if len(lines) == 0 {
		return "", ErrEmptyDocument
	}
	return strings.Join(lines, "\n"), nil
}

// extractPDF extracts the plain text of a .pdf file.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// extractTxt reads a plain-text file.
func extractTxt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
