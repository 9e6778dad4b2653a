package services

import (
	"strings"
	"time"

	"vouchergen/internal/domain/models"
	"vouchergen/internal/utils"
)

// ValidationItem records one voucher candidate and whether it made it into
// the output.
type ValidationItem struct {
	Type             string `json:"type"`
	OrgaName         string `json:"orga_name"`
	OrgaDate         string `json:"orga_date,omitempty"`
	VoucherGenerated bool   `json:"voucher_generated"`
	SkippedReason    string `json:"skipped_reason,omitempty"`
}

// ValidationReport is the pre-flight summary returned alongside every
// generation run. Passed=false means the PDF was still produced but needs a
// human look before it goes out.
type ValidationReport struct {
	Timestamp string `json:"timestamp"`
	OrgaFile  string `json:"orga_file"`
	TripID    string `json:"trip_id,omitempty"`

	TotalItems        int `json:"total_orga_items"`
	VouchersGenerated int `json:"vouchers_generated"`
	ItemsSkipped      int `json:"items_skipped"`

	Hotels      []ValidationItem `json:"hotels"`
	Transfers   []ValidationItem `json:"transfers"`
	CarRentals  []ValidationItem `json:"car_rentals"`
	Activities  []ValidationItem `json:"activities"`
	Restaurants []ValidationItem `json:"restaurants"`
	Golf        []ValidationItem `json:"golf"`

	ParserWarnings   []string `json:"parser_warnings,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`

	Passed bool `json:"passed"`
}

// BuildReport validates the parse result voucher by voucher. Every record
// generates, so the checks are about quality: an empty or truncated supplier
// title fails the run.
func BuildReport(parsed *models.ParsedOrga, orgaFile, tripID string) *ValidationReport {
	report := &ValidationReport{
		Timestamp:      time.Now().Format(time.RFC3339),
		OrgaFile:       orgaFile,
		TripID:         tripID,
		ParserWarnings: parsed.Warnings,
	}

	for _, rec := range parsed.Ordered() {
		title := rec.Supplier
		if rec.Kind == models.KindGolf && rec.Golf != nil {
			title = rec.Golf.Course
		}

		item := ValidationItem{
			Type:             string(rec.Kind),
			OrgaName:         rec.Supplier,
			VoucherGenerated: true,
		}
		if !rec.Start.IsZero() {
			item.OrgaDate = utils.FormatDate(rec.Start)
		}

		if len(strings.TrimSpace(title)) < 3 {
			report.ValidationErrors = append(report.ValidationErrors,
				"empty or suspicious title for "+string(rec.Kind)+": "+strings.TrimSpace(title))
		}

		switch rec.Kind {
		case models.KindHotel:
			report.Hotels = append(report.Hotels, item)
		case models.KindTransfer:
			report.Transfers = append(report.Transfers, item)
		case models.KindCarRental:
			report.CarRentals = append(report.CarRentals, item)
		case models.KindActivity:
			report.Activities = append(report.Activities, item)
		case models.KindRestaurant:
			report.Restaurants = append(report.Restaurants, item)
		case models.KindGolf:
			report.Golf = append(report.Golf, item)
		}
		report.TotalItems++
		report.VouchersGenerated++
	}

	report.Passed = len(report.ValidationErrors) == 0
	return report
}
