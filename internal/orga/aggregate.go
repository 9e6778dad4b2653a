package orga

import (
	"fmt"
	"strings"
	"time"

	"vouchergen/internal/domain/models"
	"vouchergen/internal/utils"
)

// Adjacent fragments merge into one voucher; one blank spreadsheet row
// between them still counts as adjacent.
const maxRowGap = 2

const defaultCarRentalSupplier = "Pace Car Rental"

// aggregate folds row fragments into voucher records. Merging is purely
// local: same supplier on adjacent rows continues the current record, any
// gap or supplier change starts a new one, so a return visit to the same
// hotel later in the trip stays a separate stay.
func aggregate(frags []Fragment) (*models.ParsedOrga, []string) {
	parsed := &models.ParsedOrga{}
	var warnings []string

	byKind := map[models.ServiceKind][]Fragment{}
	for _, f := range frags {
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}

	parsed.Hotels = aggregateHotels(byKind[models.KindHotel], &warnings)
	parsed.Transfers = aggregateTransfers(byKind[models.KindTransfer])
	parsed.CarRentals = aggregateCarRentals(byKind[models.KindCarRental])
	parsed.Activities = aggregateActivities(byKind[models.KindActivity])
	parsed.Restaurants = aggregateRestaurants(byKind[models.KindRestaurant])
	parsed.Golf = aggregateGolf(byKind[models.KindGolf])

	return parsed, warnings
}

func aggregateHotels(frags []Fragment, warnings *[]string) []models.HotelStay {
	var stays []models.HotelStay
	var cur *models.HotelStay
	var curKey string
	var lastRow int
	var lastDate time.Time

	flush := func() {
		if cur == nil {
			return
		}
		cur.CheckOut = lastDate.AddDate(0, 0, 1)
		cur.Nights = int(cur.CheckOut.Sub(cur.CheckIn).Hours() / 24)
		stays = append(stays, *cur)
		cur = nil
	}

	for _, f := range frags {
		b := f.Hotel
		key := utils.NormalizeKey(b.Supplier)

		if cur != nil && key == curKey && f.Row-lastRow <= maxRowGap {
			lastRow = f.Row
			lastDate = f.Date
			// The first night's row fixes room and board; a different
			// value further down the block is an ORGA inconsistency.
			if b.Room != "" && !strings.EqualFold(b.Room, cur.RoomType) {
				w := fmt.Sprintf("row %d: room type %q differs from %q for %s, keeping first", f.Row, b.Room, cur.RoomType, cur.Supplier)
				cur.Warnings = append(cur.Warnings, w)
				*warnings = append(*warnings, w)
			}
			if b.Board != "" && !strings.EqualFold(b.Board, cur.Board) {
				w := fmt.Sprintf("row %d: board %q differs from %q for %s, keeping first", f.Row, b.Board, cur.Board, cur.Supplier)
				cur.Warnings = append(cur.Warnings, w)
				*warnings = append(*warnings, w)
			}
			if b.Notes != "" && !strings.Contains(cur.Notes, b.Notes) {
				cur.Notes = joinNotes(cur.Notes, b.Notes)
			}
			continue
		}

		flush()
		cur = &models.HotelStay{
			Supplier:   b.Supplier,
			RegionCity: b.RegionCity,
			RoomType:   b.Room,
			Board:      b.Board,
			CheckIn:    f.Date,
			Notes:      b.Notes,
			Status:     b.Status,
			Row:        f.Row,
		}
		curKey = key
		lastRow = f.Row
		lastDate = f.Date
	}
	flush()

	return stays
}

func aggregateTransfers(frags []Fragment) []models.TransferVoucher {
	var vouchers []models.TransferVoucher
	var cur *models.TransferVoucher
	var curKey string
	var lastRow int

	flush := func() {
		if cur != nil {
			vouchers = append(vouchers, *cur)
			cur = nil
		}
	}

	for _, f := range frags {
		b := f.Transfer
		key := utils.NormalizeKey(b.Supplier)
		leg := transferLeg(f)

		if cur != nil && key == curKey && f.Row-lastRow <= maxRowGap {
			cur.Legs = append(cur.Legs, leg)
			lastRow = f.Row
			continue
		}

		flush()
		cur = &models.TransferVoucher{
			Supplier: b.Supplier,
			Legs:     []models.TransferLeg{leg},
			Row:      f.Row,
		}
		curKey = key
		lastRow = f.Row
	}
	flush()

	return vouchers
}

func transferLeg(f Fragment) models.TransferLeg {
	b := f.Transfer
	pickup, dropoff, routeNotes := parseRoute(b.Route)
	return models.TransferLeg{
		Date:         f.Date,
		PickupPoint:  pickup,
		DropoffPoint: dropoff,
		PickupTime:   b.PickupTime,
		DropoffTime:  b.DropoffTime,
		FlightNumber: b.FlightNumber,
		Notes:        joinNotes(routeNotes, b.Notes),
	}
}

// parseRoute splits a route cell into pickup and dropoff. "A - B" is a
// point-to-point leg; a bare "Trf to X" line only names the destination;
// an "incl." suffix is carried as a note.
func parseRoute(route string) (pickup, dropoff, notes string) {
	rt := route
	if i := strings.Index(strings.ToLower(rt), "incl."); i >= 0 {
		notes = "Includes: " + strings.TrimSpace(rt[i+len("incl."):])
		rt = strings.TrimSpace(rt[:i])
	}

	if parts := strings.SplitN(rt, " - ", 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), notes
	}

	low := strings.ToLower(rt)
	for _, prefix := range []string{"trf to ", "transfer to "} {
		if strings.HasPrefix(low, prefix) {
			return "", strings.TrimSpace(rt[len(prefix):]), notes
		}
	}
	return "", strings.TrimSpace(rt), notes
}

// aggregateCarRentals collapses all rental-car rows of the trip into one
// voucher: the "Group ..." row opens the rental and names the car class,
// every later matching row pushes the dropoff date forward, and collection
// and return rows fill the locations. Unlike every other kind, rental rows
// merge with no adjacency limit: one rental spans the trip, and its
// collection and return rows can sit weeks apart in the sheet.
func aggregateCarRentals(frags []Fragment) []models.CarRentalVoucher {
	var cr *models.CarRentalVoucher

	for _, f := range frags {
		b := f.Transfer
		low := strings.ToLower(b.Route)

		if strings.Contains(low, "group") && cr == nil {
			cr = &models.CarRentalVoucher{
				Supplier:   b.Supplier,
				CarGroup:   b.Route,
				PickupDate: f.Date,
				Notes:      b.Notes,
				Row:        f.Row,
			}
		}
		if cr == nil {
			continue
		}
		cr.DropoffDate = f.Date
		if cr.Supplier == "" {
			cr.Supplier = b.Supplier
		}
		if strings.Contains(low, "collect") || strings.Contains(low, "pickup") {
			cr.PickupPoint = b.Route
		}
		if strings.Contains(low, "drop") || strings.Contains(low, "return") {
			cr.DropoffPoint = b.Route
		}
	}

	if cr == nil {
		return nil
	}
	if cr.Supplier == "" {
		cr.Supplier = defaultCarRentalSupplier
	}
	return []models.CarRentalVoucher{*cr}
}

func aggregateActivities(frags []Fragment) []models.ActivityVoucher {
	var vouchers []models.ActivityVoucher
	var cur *models.ActivityVoucher
	var curKey string
	var lastRow int

	flush := func() {
		if cur != nil {
			vouchers = append(vouchers, *cur)
			cur = nil
		}
	}

	for _, f := range frags {
		b := f.Activity
		key := utils.NormalizeKey(b.Supplier)
		entry := models.ActivityEntry{
			Date:  f.Date,
			Name:  b.Name,
			Time:  b.Time,
			Notes: b.Notes,
		}

		if cur != nil && key == curKey && f.Date.Equal(cur.Entries[len(cur.Entries)-1].Date) && f.Row-lastRow <= maxRowGap {
			cur.Entries = append(cur.Entries, entry)
			lastRow = f.Row
			continue
		}

		flush()
		cur = &models.ActivityVoucher{
			Supplier: b.Supplier,
			Entries:  []models.ActivityEntry{entry},
			Row:      f.Row,
		}
		curKey = key
		lastRow = f.Row
	}
	flush()

	return vouchers
}

func aggregateRestaurants(frags []Fragment) []models.RestaurantVoucher {
	var vouchers []models.RestaurantVoucher
	var cur *models.RestaurantVoucher
	var curKey string
	var lastRow int

	flush := func() {
		if cur != nil {
			vouchers = append(vouchers, *cur)
			cur = nil
		}
	}

	for _, f := range frags {
		b := f.Activity

		key := utils.NormalizeKey(b.Supplier)
		if cur != nil && key == curKey && f.Date.Equal(cur.Date) && f.Row-lastRow <= maxRowGap {
			cur.Notes = joinNotes(cur.Notes, joinNotes(b.Name, b.Notes))
			lastRow = f.Row
			continue
		}

		flush()
		cur = &models.RestaurantVoucher{
			Supplier: b.Supplier,
			Date:     f.Date,
			Time:     b.Time,
			Notes:    joinNotes(b.Name, b.Notes),
			Row:      f.Row,
		}
		curKey = key
		lastRow = f.Row
	}
	flush()

	return vouchers
}

func aggregateGolf(frags []Fragment) []models.GolfVoucher {
	var vouchers []models.GolfVoucher
	var cur *models.GolfVoucher
	var curKey string
	var lastRow int

	flush := func() {
		if cur != nil {
			vouchers = append(vouchers, *cur)
			cur = nil
		}
	}

	for _, f := range frags {
		b := f.Golf

		key := utils.NormalizeKey(b.Supplier)
		if cur != nil && key == curKey && f.Date.Equal(cur.Date) && f.Row-lastRow <= maxRowGap {
			cur.Notes = joinNotes(cur.Notes, b.Notes)
			lastRow = f.Row
			continue
		}

		flush()
		cur = &models.GolfVoucher{
			Supplier:  b.Supplier,
			Course:    b.Course,
			Date:      f.Date,
			TeeTime:   b.TeeTime,
			Cart:      b.Cart,
			RentalSet: b.RentalSet,
			Notes:     b.Notes,
			Row:       f.Row,
		}
		curKey = key
		lastRow = f.Row
	}
	flush()

	return vouchers
}

func joinNotes(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
