package orga

import (
	"fmt"
	"io"
	"os"

	"vouchergen/internal/domain"
	"vouchergen/internal/domain/models"
	"vouchergen/internal/utils"
)

// Parse reads an ORGA workbook and returns its voucher records. The flow is
// locate the header row, map the section columns, project every data row
// into band fragments, then fold adjacent fragments into records.
func Parse(r io.Reader) (*models.ParsedOrga, error) {
	wb, err := OpenWorkbook(r)
	if err != nil {
		return nil, err
	}

	headerRow, err := findHeaderRow(wb.Rows, wb.Sheet)
	if err != nil {
		return nil, err
	}
	cols := detectColumns(wb.Rows, headerRow)

	frags, extractWarnings := extractFragments(wb.Rows, headerRow, cols)
	if len(frags) == 0 {
		return nil, domain.NoServicesFoundError{Sheet: wb.Sheet}
	}

	parsed, aggWarnings := aggregate(frags)
	parsed.Sheet = wb.Sheet
	parsed.TripNumber = wb.TripNumber
	parsed.LeadName = wb.LeadName
	parsed.Pax = wb.Pax
	parsed.Dates = wb.Dates
	parsed.Warnings = append(extractWarnings, aggWarnings...)

	utils.LogEvent("", "orga", "parse", fmt.Sprintf("sheet %q: %d records, %d warnings", wb.Sheet, parsed.Count(), len(parsed.Warnings)))
	return parsed, nil
}

// ParseFile is a convenience wrapper for callers holding a path.
func ParseFile(path string) (*models.ParsedOrga, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.InternalError{Msg: "open orga workbook", Err: err}
	}
	defer f.Close()
	return Parse(f)
}
