package orga

import (
	"strings"

	"vouchergen/internal/domain"
	"vouchergen/internal/utils"
)

const (
	// fixedHeaderRow is where the header sits in every template the team
	// currently uses (1-based). Checked first so well-formed sheets skip
	// the scan.
	fixedHeaderRow = 10

	// headerScanLimit bounds the fallback scan.
	headerScanLimit = 30

	// headerKeywordThreshold is the number of recognized labels a row must
	// carry to pass as a header when the "Days" anchor is absent.
	headerKeywordThreshold = 3
)

var headerKeywords = []string{
	"days", "day", "date", "region/city", "region", "city",
	"hotel supplier", "room", "board",
}

// findHeaderRow locates the header row: fixed position first, then a scan for
// the "Days" anchor in column 1, then a keyword-threshold scan. Returns a
// HeaderNotFoundError when nothing within the scan limit looks like a header.
func findHeaderRow(rows [][]string, sheet string) (int, error) {
	if headerKeywordCount(rows, fixedHeaderRow) >= headerKeywordThreshold {
		return fixedHeaderRow, nil
	}

	for r := 1; r <= headerScanLimit; r++ {
		if strings.EqualFold(strings.TrimSpace(cell(rows, r, colDays)), "days") {
			return r, nil
		}
	}

	for r := 1; r <= headerScanLimit; r++ {
		if headerKeywordCount(rows, r) >= headerKeywordThreshold {
			return r, nil
		}
	}

	return 0, domain.HeaderNotFoundError{Sheet: sheet}
}

func headerKeywordCount(rows [][]string, r int) int {
	count := 0
	for c := 1; c <= maxScanCol; c++ {
		v := strings.ToLower(strings.TrimSpace(cell(rows, r, c)))
		if v == "" {
			continue
		}
		for _, kw := range headerKeywords {
			if v == kw {
				count++
				break
			}
		}
	}
	return count
}

// findDataStart returns the first real data row after the header, skipping
// the "e.g" example row the template ships with.
func findDataStart(rows [][]string, headerRow int, cols ColumnMap) int {
	for r := headerRow + 1; r < headerRow+10; r++ {
		if _, ok := utils.ParseCellDate(cell(rows, r, cols.Date)); !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(cell(rows, r, cols.Days)), "e.g") {
			continue
		}
		return r
	}
	return headerRow + 2
}
