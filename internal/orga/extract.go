package orga

import (
	"fmt"
	"strings"
	"time"

	"vouchergen/internal/domain/models"
	"vouchergen/internal/utils"
)

// HotelBand is the hotel-section projection of one data row.
type HotelBand struct {
	RegionCity string
	Supplier   string
	Room       string
	Board      string
	Notes      string
	Status     string
}

// GolfBand is the golf-section projection of one data row.
type GolfBand struct {
	Supplier  string
	Course    string
	TeeTime   string
	Cart      string
	RentalSet string
	Notes     string
}

// ActivityBand is the activity-section projection of one line of a data row.
// Activity cells fan out: one cell may stack several bookings on separate
// embedded lines.
type ActivityBand struct {
	Supplier string
	Name     string
	Time     string
	Notes    string
}

// TransferBand is the transfer-section projection of one line of a data row.
type TransferBand struct {
	Supplier     string
	Route        string
	ServiceType  string
	PickupTime   string
	DropoffTime  string
	FlightNumber string
	Notes        string
}

// Fragment is a single-row, single-band extraction. Exactly one band pointer
// is set, matching Kind. Fragments exist only between extraction and
// aggregation; Row keeps the source position for merge decisions.
type Fragment struct {
	Row  int
	Date time.Time
	Kind models.ServiceKind

	Hotel    *HotelBand
	Golf     *GolfBand
	Activity *ActivityBand
	Transfer *TransferBand
}

// Rows without a keyword match default to activity; meals go to the
// restaurant voucher unless an activity keyword overrides (a winery lunch
// with a tasting is an activity, not a restaurant booking).
var (
	restaurantKeywords = []string{"dinner", "lunch"}
	activityKeywords   = []string{"tasting", "tour", "tickets", "watching", "drive", "panorama", "route", "safari"}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// extractFragments walks the data rows and projects each band independently.
// A row is a data row iff the anchor date column parses; an "Action"/"Book"
// marker in column 1 ends the data block. Bands are not mutually exclusive:
// a checkout day row regularly yields both a hotel and a transfer fragment.
func extractFragments(rows [][]string, headerRow int, cols ColumnMap) ([]Fragment, []string) {
	var frags []Fragment
	var warnings []string

	start := findDataStart(rows, headerRow, cols)
	for r := start; r <= len(rows); r++ {
		date, ok := utils.ParseCellDate(cell(rows, r, cols.Date))
		if !ok {
			marker := strings.ToLower(cell(rows, r, 1))
			if strings.Contains(marker, "action") || strings.Contains(marker, "book") {
				break
			}
			continue
		}

		frags = append(frags, extractHotel(rows, r, date, cols, &warnings)...)
		frags = append(frags, extractGolf(rows, r, date, cols)...)
		frags = append(frags, extractActivities(rows, r, date, cols)...)
		frags = append(frags, extractTransfers(rows, r, date, cols)...)
	}

	return frags, warnings
}

func extractHotel(rows [][]string, r int, date time.Time, cols ColumnMap, warnings *[]string) []Fragment {
	supplier := utils.FirstLine(cell(rows, r, cols.HotelSupplier))
	room := cell(rows, r, cols.Room)
	board := cell(rows, r, cols.Board)

	if supplier == "" {
		if room != "" || board != "" {
			*warnings = append(*warnings, fmt.Sprintf("row %d: hotel band has room/board but no supplier", r))
		}
		return nil
	}

	return []Fragment{{
		Row:  r,
		Date: date,
		Kind: models.KindHotel,
		Hotel: &HotelBand{
			RegionCity: cell(rows, r, cols.RegionCity),
			Supplier:   supplier,
			Room:       room,
			Board:      board,
			Notes:      cell(rows, r, cols.HotelNotes),
			Status:     cell(rows, r, cols.HotelStatus),
		},
	}}
}

func extractGolf(rows [][]string, r int, date time.Time, cols ColumnMap) []Fragment {
	supplier := cell(rows, r, cols.GolfSupplier)
	course := cell(rows, r, cols.GolfCourse)
	if supplier == "" || course == "" {
		return nil
	}

	return []Fragment{{
		Row:  r,
		Date: date,
		Kind: models.KindGolf,
		Golf: &GolfBand{
			Supplier:  supplier,
			Course:    course,
			TeeTime:   cell(rows, r, cols.TeeTime),
			Cart:      cell(rows, r, cols.GolfCart),
			RentalSet: cell(rows, r, cols.RentalSet),
			Notes:     cell(rows, r, cols.GolfNotes),
		},
	}}
}

func extractActivities(rows [][]string, r int, date time.Time, cols ColumnMap) []Fragment {
	supRaw := cell(rows, r, cols.ActivitySupplier)
	suppliers := utils.SplitLines(supRaw)
	if len(suppliers) == 0 {
		return nil
	}

	nameRaw := cell(rows, r, cols.ActivityName)
	timeRaw := cell(rows, r, cols.ActivityTime)
	notesRaw := cell(rows, r, cols.ActivityNotes)

	var frags []Fragment
	for idx, sup := range suppliers {
		name := utils.LineAt(nameRaw, idx)
		tm := utils.LineAt(timeRaw, idx)
		notes := utils.LineAt(notesRaw, idx)

		// Game drives belong to the lodge stay, not a separate voucher.
		if strings.Contains(strings.ToLower(name), "game drive") {
			continue
		}

		kind := models.KindActivity
		combined := strings.ToLower(sup + " " + name + " " + notes)
		if containsAny(combined, restaurantKeywords) && !containsAny(combined, activityKeywords) {
			kind = models.KindRestaurant
		}

		frags = append(frags, Fragment{
			Row:  r,
			Date: date,
			Kind: kind,
			Activity: &ActivityBand{
				Supplier: sup,
				Name:     name,
				Time:     tm,
				Notes:    notes,
			},
		})
	}
	return frags
}

func extractTransfers(rows [][]string, r int, date time.Time, cols ColumnMap) []Fragment {
	supRaw := cell(rows, r, cols.TransferSupplier)
	routeRaw := cell(rows, r, cols.TransferRoute)
	suppliers := utils.SplitLines(supRaw)
	routes := utils.SplitLines(routeRaw)

	pickupRaw := cell(rows, r, cols.PickupTime)
	dropoffRaw := cell(rows, r, cols.DropoffTime)
	flightRaw := cell(rows, r, cols.FlightNum)
	notes := cell(rows, r, cols.TransferNotes)

	var frags []Fragment

	for idx, sup := range suppliers {
		rt := utils.LineAt(routeRaw, idx)
		if isCarRentalRoute(rt) {
			continue
		}
		// Flight rows are ticketing lines, not ground transfers.
		low := strings.ToLower(rt)
		if strings.Contains(low, "flight") && !strings.Contains(low, "airport") {
			continue
		}

		frags = append(frags, Fragment{
			Row:  r,
			Date: date,
			Kind: models.KindTransfer,
			Transfer: &TransferBand{
				Supplier:     sup,
				Route:        rt,
				ServiceType:  cell(rows, r, cols.ServiceType),
				PickupTime:   utils.LineAt(pickupRaw, idx),
				DropoffTime:  utils.LineAt(dropoffRaw, idx),
				FlightNumber: utils.LineAt(flightRaw, idx),
				Notes:        notes,
			},
		})
	}

	// Car rental lines are keyed on the route text and may appear on rows
	// whose supplier cell is blank.
	for idx, rt := range routes {
		if !isCarRentalRoute(rt) {
			continue
		}
		frags = append(frags, Fragment{
			Row:  r,
			Date: date,
			Kind: models.KindCarRental,
			Transfer: &TransferBand{
				Supplier: utils.LineAt(supRaw, idx),
				Route:    rt,
				Notes:    notes,
			},
		})
	}

	return frags
}

func isCarRentalRoute(rt string) bool {
	if rt == "" {
		return false
	}
	low := strings.ToLower(rt)
	return strings.Contains(low, "rental car") || strings.Contains(low, "group ")
}
