// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders the unanswered-query log as a PDF document for
// the support team to review.
package report

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/poiesic/helpdesk/querylog"
)

// Logged queries are frequently Russian and the gofpdf core fonts only
// cover cp1252, so entry bodies render with an embedded cp1251 font.
// The assets come from the gofpdf distribution.
var (
	//go:embed fonts/helvetica_1251.json
	cyrillicFontJSON []byte
	//go:embed fonts/helvetica_1251.z
	cyrillicFontZ []byte
	//go:embed fonts/cp1251.map
	cp1251Map []byte
)

// Entry is one parsed line of the query log.
type Entry struct {
	Timestamp time.Time
	Query     string
	Fallback  bool
}

// ParseLog reads the query log and returns its entries in file order.
// Lines that do not match the expected format are skipped.
func ParseLog(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ts, text, ok := strings.Cut(line, " - ")
		if !ok {
			continue
		}
		when, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}

		entry := Entry{Timestamp: when, Query: text}
		if rest, found := strings.CutPrefix(text, querylog.FallbackMarker); found {
			entry.Query = rest
			entry.Fallback = true
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Generate parses the query log at logPath and writes a PDF report to
// outPath. The report lists every unanswered query with its timestamp
// and marks user-requested escalations.
func Generate(logPath, outPath string) error {
	entries, err := ParseLog(logPath)
	if err != nil {
		return fmt.Errorf("parse query log: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddFontFromBytes("Helvetica-1251", "", cyrillicFontJSON, cyrillicFontZ)
	tr, err := gofpdf.UnicodeTranslator(bytes.NewReader(cp1251Map))
	if err != nil {
		return fmt.Errorf("load codepage map: %w", err)
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Unanswered queries report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d entries",
		time.Now().UTC().Format("2006-01-02 15:04 UTC"), len(entries)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(entries) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "No unanswered queries recorded.", "", "L", false)
		return pdf.OutputFileAndClose(outPath)
	}

	for _, entry := range entries {
		pdf.SetFont("Helvetica", "B", 10)
		header := entry.Timestamp.Format("2006-01-02 15:04:05")
		if entry.Fallback {
			header += "  [escalated by user]"
		}
		pdf.CellFormat(0, 6, header, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica-1251", "", 11)
		pdf.MultiCell(0, 6, tr(entry.Query), "", "L", false)
		pdf.Ln(2)
	}

	return pdf.OutputFileAndClose(outPath)
}
