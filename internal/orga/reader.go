package orga

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the raw view over the selected ORGA sheet: the cell matrix plus
// the metadata block above the header (rows 1-9).
type Workbook struct {
	Sheet string
	Rows  [][]string

	TripNumber string
	LeadName   string
	Dates      string
	Pax        int
}

// OpenWorkbook reads an xlsx stream and selects the ORGA sheet.
//
// Sheet preference order: an "orga" sheet marked "correct", then an "orga"
// sheet that actually has hotel data near a plausible header row, then the
// first "orga" sheet, then the active sheet. Operators keep abandoned copies
// of the planning sheet around, so name matching alone is not enough.
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	wb := &Workbook{Sheet: sheet, Rows: rows}
	wb.readMetadata()
	return wb, nil
}

func pickSheet(f *excelize.File) string {
	var orgaSheets []string
	for _, name := range f.GetSheetList() {
		if !strings.Contains(strings.ToLower(name), "orga") {
			continue
		}
		orgaSheets = append(orgaSheets, name)
		if strings.Contains(strings.ToLower(name), "correct") {
			return name
		}
	}

	for _, name := range orgaSheets {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if sheetHasHotelData(rows) {
			return name
		}
	}

	if len(orgaSheets) > 0 {
		return orgaSheets[0]
	}
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// sheetHasHotelData probes the hotel supplier column just under the two known
// header positions.
func sheetHasHotelData(rows [][]string) bool {
	for _, headerRow := range []int{fixedHeaderRow, 19} {
		for _, dataRow := range []int{headerRow + 2, headerRow + 1} {
			v := strings.ToLower(strings.TrimSpace(cell(rows, dataRow, colHotelSupplier)))
			if v != "" && v != "hotel supplier" && v != "e.g" && v != "example" {
				return true
			}
		}
	}
	return false
}

// readMetadata pulls the labeled trip facts above the header. Labels sit in
// column 1, values in column 4.
func (wb *Workbook) readMetadata() {
	for r := 1; r < fixedHeaderRow; r++ {
		label := strings.ToLower(strings.TrimSpace(cell(wb.Rows, r, 1)))
		value := strings.TrimSpace(cell(wb.Rows, r, 4))
		if label == "" || value == "" {
			continue
		}
		switch {
		case strings.Contains(label, "lead name"):
			wb.LeadName = value
		case strings.Contains(label, "pax"):
			if n, err := strconv.Atoi(value); err == nil {
				wb.Pax = n
			}
		case strings.Contains(label, "dates"):
			wb.Dates = value
		case strings.Contains(label, "trip number"):
			wb.TripNumber = value
		}
	}
}

// cell returns the trimmed value at 1-based (row, col), "" when out of range.
// GetRows trims trailing empties per row, so short rows are normal.
func cell(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}
