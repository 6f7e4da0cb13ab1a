// Package ingest turns an uploaded spreadsheet into raw rows.
//
// Headers are matched case-insensitively and stored lower-cased. The name column is
// mandatory; every other column is carried through untouched.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog-import/internal/domain"
)

// NameColumn is the only mandatory column.
const NameColumn = "name"

var (
	// ErrMissingColumn is returned when the header row has no name column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile is returned when there is no header row.
	ErrEmptyFile = errors.New("file has no header row")
)

// Row is one non-blank data row. Index is its 1-based position below the header, so
// skipped blank rows leave gaps.
type Row struct {
	Index int
	domain.RawRow
}

// Parse reads rows from a CSV or XLSX source chosen by the filename extension.
func Parse(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", "":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ParseCSV reads a CSV file. Rows may be shorter or longer than the header; extra cells are dropped.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headers, err := normalizeHeaders(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	index := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		index++
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", index, err)
		}
		if row, ok := buildRow(headers, record); ok {
			rows = append(rows, Row{Index: index, RawRow: row})
		}
	}
	return rows, nil
}

// ParseXLSX reads the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return nil, ErrEmptyFile
	}

	headers, err := normalizeHeaders(excelRows[0])
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, record := range excelRows[1:] {
		if row, ok := buildRow(headers, record); ok {
			rows = append(rows, Row{Index: i + 1, RawRow: row})
		}
	}
	return rows, nil
}

func normalizeHeaders(header []string) ([]string, error) {
	headers := make([]string, len(header))
	hasName := false
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.ToLower(strings.TrimSpace(h))
		if headers[i] == NameColumn {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, NameColumn)
	}
	return headers, nil
}

// buildRow maps a record onto the headers. Rows with no non-blank cell are skipped.
func buildRow(headers, record []string) (domain.RawRow, bool) {
	columns := make(map[string]string, len(headers))
	blank := true
	for i, h := range headers {
		if h == "" {
			continue
		}
		value := ""
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}
		if value != "" {
			blank = false
		}
		// first occurrence of a duplicated header wins
		if _, seen := columns[h]; !seen {
			columns[h] = value
		}
	}
	if blank {
		return domain.RawRow{}, false
	}
	return domain.RawRow{Name: columns[NameColumn], Columns: columns}, true
}
