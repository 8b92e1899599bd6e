package definition

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet read from .xlsx definitions.
const DefaultSheet = "data"

// Table is a sheet with a header row. Rows may be shorter than the header.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// ReadXLSX reads the named sheet of an Excel workbook. When the workbook has no
// sheet with that name its first sheet is used.
func ReadXLSX(path, sheet string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, sourceError(path, "open", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = DefaultSheet
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, &DefinitionError{Source: filepath.Base(path), Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, sourceError(path, fmt.Sprintf("read sheet %q", sheet), err)
	}
	return newTable(filepath.Base(path), rows), nil
}

// ReadCSV reads a comma separated definition. The first record is the header.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, sourceError(path, "open", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, sourceError(path, "read", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return newTable(filepath.Base(path), records), nil
}

func newTable(source string, rows [][]string) Table {
	t := Table{Source: source}
	if len(rows) == 0 {
		return t
	}
	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}
	t.Rows = rows[1:]
	return t
}

// record gives by-name access to one row.
type record struct {
	cols  map[string]int
	cells []string
}

func (r record) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}
