package ingestion

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/helpdesk/core"
	"github.com/xuri/excelize/v2"
)

// Header keywords for locating columns in catalog and routing workbooks.
// The corpus is bilingual, so both English and Russian headings match.
var (
	serviceNameKeywords = []string{"service", "name", "topic", "услуг", "название", "тема"}
	descriptionKeywords = []string{"description", "contents", "описание", "содержание"}
	requestKeywords     = []string{"request", "query", "запрос"}
	departmentKeywords  = []string{"department", "отдел", "департамент"}
)

// parseCatalogXLSX loads service-catalog (or other tabular knowledge)
// rows, one document per row. Rows with an empty name cell are skipped.
// A description column is optional; name-only rows still get a searchable
// sentence so a bare catalog listing remains findable.
func parseCatalogXLSX(path, category string, loadDate time.Time) ([]*core.Document, error) {
	rows, header, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	nameCol := findColumn(header, serviceNameKeywords, 0)
	descCol := findColumn(header, descriptionKeywords, -1)

	source := filepath.Base(path)
	var docs []*core.Document
	for _, row := range rows {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}

		var text string
		if desc := cell(row, descCol); desc != "" {
			text = fmt.Sprintf("IT service: %s. Description: %s", name, desc)
		} else {
			text = fmt.Sprintf("The catalog provides the IT service: %s", name)
		}

		docs = append(docs, &core.Document{
			Contents:    text,
			Source:      source,
			Category:    category,
			DocType:     core.DocTypeKnowledge,
			LoadDate:    loadDate,
			ServiceName: name,
		})
	}
	return docs, nil
}

// parseRoutingXLSX loads routing examples: a request text column and the
// department it belongs to. Rows missing either value are skipped.
func parseRoutingXLSX(path string, loadDate time.Time) ([]*core.Document, error) {
	rows, header, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	requestCol := findColumn(header, requestKeywords, 0)
	departmentCol := findColumn(header, departmentKeywords, 1)

	source := filepath.Base(path)
	var docs []*core.Document
	for _, row := range rows {
		request := cell(row, requestCol)
		department := cell(row, departmentCol)
		if request == "" || department == "" {
			continue
		}

		docs = append(docs, &core.Document{
			Contents:   request,
			Source:     source,
			Category:   "routing",
			DocType:    core.DocTypeRoutingExample,
			LoadDate:   loadDate,
			Department: department,
		})
	}
	return docs, nil
}

// readFirstSheet returns the data rows and the header row of the first
// sheet in the workbook.
func readFirstSheet(path string) (rows [][]string, header []string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[1:], all[0], nil
}

// findColumn returns the index of the first header containing any of the
// keywords (case-insensitive), or fallback when none matches.
func findColumn(header []string, keywords []string, fallback int) int {
	for i, h := range header {
		lower := strings.ToLower(h)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return fallback
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
