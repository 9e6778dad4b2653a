package orga

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"vouchergen/internal/domain"
	"vouchergen/internal/domain/models"
)

const testSheet = "ORGA correct"

var orgaHeader = []interface{}{
	"Days", "Day", "Date", "Region/City", "Hotel Supplier", "Room", "Board", "Notes", "Status", "Invoice",
	"Golf Supplier", "Golf Course", "Tee Time", "Driving Range", "Golf Cart", "Rental Set", "Notes", "Status", "Invoice",
	"Supplier", "Activity", "Time", "Notes", "Status", "Invoice",
	"Supplier", "Transport", "Service Type", "P/up Time", "D/off Time", "Flight #", "Flight Time", "Travel Time", "Notes", "Status", "Invoice",
}

// orgaRow is a sparse data row keyed by 1-based column.
type orgaRow map[int]string

func buildOrgaWorkbook(t *testing.T, rows map[int]orgaRow) *bytes.Reader {
	t.Helper()
	return buildOrgaWorkbookHeaderAt(t, 10, orgaHeader, rows)
}

func buildOrgaWorkbookHeaderAt(t *testing.T, headerRow int, header []interface{}, rows map[int]orgaRow) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", testSheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	if err := f.SetCellValue(testSheet, "A2", "Lead Name"); err != nil {
		t.Fatalf("set metadata: %v", err)
	}
	_ = f.SetCellValue(testSheet, "D2", "Smith")
	_ = f.SetCellValue(testSheet, "A3", "Pax")
	_ = f.SetCellValue(testSheet, "D3", "2")
	_ = f.SetCellValue(testSheet, "A4", "Trip Number")
	_ = f.SetCellValue(testSheet, "D4", "1008")

	cell, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		t.Fatalf("header cell name: %v", err)
	}
	if err := f.SetSheetRow(testSheet, cell, &header); err != nil {
		t.Fatalf("set header row: %v", err)
	}

	for rowNum, cells := range rows {
		for col, val := range cells {
			name, err := excelize.CoordinatesToCellName(col, rowNum)
			if err != nil {
				t.Fatalf("cell name (%d,%d): %v", col, rowNum, err)
			}
			if err := f.SetCellValue(testSheet, name, val); err != nil {
				t.Fatalf("set cell %s: %v", name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func day(n int) string { return fmt.Sprintf("2025-03-%02d", n) }

func TestParseMergesConsecutiveHotelNights(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colRegionCity: "Hermanus", colHotelSupplier: "Whale Rock Lodge", colRoom: "Deluxe Room", colBoard: "BB"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Whale Rock Lodge", colRoom: "Deluxe Room", colBoard: "BB"},
		13: {colDays: "3", colDate: day(3), colHotelSupplier: "Whale Rock Lodge", colRoom: "Deluxe Room", colBoard: "BB"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Hotels) != 1 {
		t.Fatalf("expected 1 hotel stay, got %d", len(parsed.Hotels))
	}

	stay := parsed.Hotels[0]
	if got := stay.CheckIn.Format("2006-01-02"); got != day(1) {
		t.Fatalf("check in = %s, want %s", got, day(1))
	}
	if got := stay.CheckOut.Format("2006-01-02"); got != day(4) {
		t.Fatalf("check out = %s, want %s (last night + 1)", got, day(4))
	}
	if stay.Nights != 3 {
		t.Fatalf("nights = %d, want 3", stay.Nights)
	}
	if stay.RoomType != "Deluxe Room" || stay.Board != "BB" {
		t.Fatalf("room/board = %q/%q", stay.RoomType, stay.Board)
	}
}

func TestParseSeparatesReturnVisits(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview"},
		13: {colDays: "3", colDate: day(3), colHotelSupplier: "Umlani"},
		14: {colDays: "4", colDate: day(4), colHotelSupplier: "Umlani"},
		15: {colDays: "5", colDate: day(5), colHotelSupplier: "Wedgeview"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Hotels) != 3 {
		t.Fatalf("expected 3 stays (return visit split), got %d", len(parsed.Hotels))
	}
	if parsed.Hotels[0].Supplier != "Wedgeview" || parsed.Hotels[1].Supplier != "Umlani" || parsed.Hotels[2].Supplier != "Wedgeview" {
		t.Fatalf("unexpected stay order: %q %q %q",
			parsed.Hotels[0].Supplier, parsed.Hotels[1].Supplier, parsed.Hotels[2].Supplier)
	}
	if parsed.Hotels[2].Nights != 1 {
		t.Fatalf("return visit nights = %d, want 1", parsed.Hotels[2].Nights)
	}
}

func TestParseKeepsFirstRoomTypeAndWarns(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview", colRoom: "Deluxe Room"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview", colRoom: "Standard Room"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Hotels) != 1 {
		t.Fatalf("expected 1 stay, got %d", len(parsed.Hotels))
	}
	if parsed.Hotels[0].RoomType != "Deluxe Room" {
		t.Fatalf("room = %q, want first row value", parsed.Hotels[0].RoomType)
	}
	if len(parsed.Hotels[0].Warnings) == 0 {
		t.Fatalf("expected mid-stay room change warning")
	}
}

func TestParseGroupsTransferLegsBySupplier(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview",
			colTransferSupplier: "Osprey Tours", colTransferRoute: "Cape Town Airport - Wedgeview", colPickupTime: "10h00"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview",
			colTransferSupplier: "Osprey Tours", colTransferRoute: "Trf to Hermanus"},
		14: {colDays: "4", colDate: day(4), colHotelSupplier: "Wedgeview",
			colTransferSupplier: "Percy Tours", colTransferRoute: "Hermanus - Cape Town Airport"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Transfers) != 2 {
		t.Fatalf("expected 2 transfer vouchers, got %d", len(parsed.Transfers))
	}

	osprey := parsed.Transfers[0]
	if osprey.Supplier != "Osprey Tours" || len(osprey.Legs) != 2 {
		t.Fatalf("first voucher = %q with %d legs, want Osprey Tours with 2", osprey.Supplier, len(osprey.Legs))
	}
	if osprey.Legs[0].PickupPoint != "Cape Town Airport" || osprey.Legs[0].DropoffPoint != "Wedgeview" {
		t.Fatalf("leg 1 route = %q -> %q", osprey.Legs[0].PickupPoint, osprey.Legs[0].DropoffPoint)
	}
	if osprey.Legs[1].DropoffPoint != "Hermanus" || osprey.Legs[1].PickupPoint != "" {
		t.Fatalf("trf-to leg should only carry the destination, got %q -> %q",
			osprey.Legs[1].PickupPoint, osprey.Legs[1].DropoffPoint)
	}
}

func TestParseSkipsFlightOnlyRows(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Umlani",
			colTransferSupplier: "Airlink", colTransferRoute: "Flight CPT-HDS", colFlightNum: "4Z 872"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Transfers) != 0 {
		t.Fatalf("flight-only row must not produce a transfer, got %d", len(parsed.Transfers))
	}
}

func TestParseAccumulatesCarRental(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview",
			colTransferSupplier: "Pace Car Rental", colTransferRoute: "Group M - Rental Car, collect at Cape Town Airport"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview",
			colTransferRoute: "Rental Car"},
		13: {colDays: "3", colDate: day(3), colHotelSupplier: "Wedgeview",
			colTransferRoute: "Rental Car, drop off at George Airport"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.CarRentals) != 1 {
		t.Fatalf("expected 1 car rental voucher, got %d", len(parsed.CarRentals))
	}

	car := parsed.CarRentals[0]
	if car.Supplier != "Pace Car Rental" {
		t.Fatalf("supplier = %q", car.Supplier)
	}
	if got := car.PickupDate.Format("2006-01-02"); got != day(1) {
		t.Fatalf("pickup date = %s, want %s", got, day(1))
	}
	if got := car.DropoffDate.Format("2006-01-02"); got != day(3) {
		t.Fatalf("dropoff date = %s, want %s", got, day(3))
	}
	if car.DropoffPoint == "" {
		t.Fatalf("dropoff point not captured")
	}
}

func TestParseClassifiesRestaurantsAndActivities(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview",
			colActivitySupplier: "The Bungalow", colActivityName: "Dinner Reservation", colActivityTime: "19h00"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview",
			colActivitySupplier: "Ernie Els Wines", colActivityName: "Wine Tasting & Lunch"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Restaurants) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(parsed.Restaurants))
	}
	if parsed.Restaurants[0].Supplier != "The Bungalow" || parsed.Restaurants[0].Time != "19h00" {
		t.Fatalf("restaurant = %+v", parsed.Restaurants[0])
	}
	// Tasting keyword wins over the meal keyword.
	if len(parsed.Activities) != 1 || parsed.Activities[0].Supplier != "Ernie Els Wines" {
		t.Fatalf("expected the tasting to stay an activity, got %+v", parsed.Activities)
	}
}

func TestParseDropsGameDriveRows(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Umlani", colBoard: "FB+",
			colActivitySupplier: "Umlani", colActivityName: "Afternoon Game Drive"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Activities) != 0 {
		t.Fatalf("game drive rows belong to the lodge stay, got %d activities", len(parsed.Activities))
	}
}

func TestParseFansOutStackedActivityCells(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Home Suite",
			colActivitySupplier: "Table Mountain\nKirstenbosch",
			colActivityName:     "Cableway Tickets\nGarden Tour",
			colActivityTime:     "09h00\n14h00"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Activities) != 2 {
		t.Fatalf("expected 2 activities from stacked cell, got %d", len(parsed.Activities))
	}
	if parsed.Activities[0].Entries[0].Time != "09h00" || parsed.Activities[1].Entries[0].Time != "14h00" {
		t.Fatalf("line alignment broken: %q / %q",
			parsed.Activities[0].Entries[0].Time, parsed.Activities[1].Entries[0].Time)
	}
}

func TestParseGolfRequiresSupplierAndCourse(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview",
			colGolfSupplier: "De Zalze", colGolfCourse: "De Zalze Golf Club", colTeeTime: "08h12", colGolfCart: "X1"},
		12: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview",
			colGolfSupplier: "Pearl Valley"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Golf) != 1 {
		t.Fatalf("expected 1 golf voucher, got %d", len(parsed.Golf))
	}
	if parsed.Golf[0].Course != "De Zalze Golf Club" || parsed.Golf[0].TeeTime != "08h12" {
		t.Fatalf("golf voucher = %+v", parsed.Golf[0])
	}
}

func TestParseReadsTripMetadata(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.TripNumber != "1008" {
		t.Fatalf("trip number = %q, want 1008", parsed.TripNumber)
	}
	if parsed.LeadName != "Smith" || parsed.Pax != 2 {
		t.Fatalf("metadata = lead %q pax %d", parsed.LeadName, parsed.Pax)
	}
	if parsed.Sheet != testSheet {
		t.Fatalf("sheet = %q", parsed.Sheet)
	}
}

func TestParseNoServicesFound(t *testing.T) {
	_, err := Parse(buildOrgaWorkbook(t, nil))
	if !domain.IsNoServices(err) {
		t.Fatalf("expected NoServicesFoundError, got %v", err)
	}
}

func TestParseHeaderNotFound(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetCellValue("Sheet1", "A1", "not an orga sheet at all")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	_, err = Parse(bytes.NewReader(buf.Bytes()))
	if !domain.IsHeaderNotFound(err) {
		t.Fatalf("expected HeaderNotFoundError, got %v", err)
	}
}

func TestParseFindsHeaderBelowFixedRow(t *testing.T) {
	// Header pushed to row 13; the "Days" anchor scan has to find it.
	rows := map[int]orgaRow{
		14: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview", colRoom: "Deluxe Room"},
		15: {colDays: "2", colDate: day(2), colHotelSupplier: "Wedgeview", colRoom: "Deluxe Room"},
	}

	parsed, err := Parse(buildOrgaWorkbookHeaderAt(t, 13, orgaHeader, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Hotels) != 1 || parsed.Hotels[0].Nights != 2 {
		t.Fatalf("expected one 2-night stay, got %+v", parsed.Hotels)
	}
}

func TestParseFindsHeaderByKeywordScan(t *testing.T) {
	// No "Days" anchor anywhere: the first column is relabelled, so only the
	// keyword-threshold scan can locate the header.
	header := append([]interface{}{}, orgaHeader...)
	header[0] = "No."

	rows := map[int]orgaRow{
		13: {colDays: "1", colDate: day(1), colHotelSupplier: "Umlani", colBoard: "FB"},
	}

	parsed, err := Parse(buildOrgaWorkbookHeaderAt(t, 12, header, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Hotels) != 1 || parsed.Hotels[0].Supplier != "Umlani" {
		t.Fatalf("expected Umlani stay, got %+v", parsed.Hotels)
	}
}

func TestOrderedKeepsContractOrder(t *testing.T) {
	rows := map[int]orgaRow{
		11: {colDays: "1", colDate: day(1), colHotelSupplier: "Wedgeview",
			colGolfSupplier: "De Zalze", colGolfCourse: "De Zalze Golf Club",
			colActivitySupplier: "The Bungalow", colActivityName: "Dinner",
			colTransferSupplier: "Osprey Tours", colTransferRoute: "Airport - Wedgeview"},
	}

	parsed, err := Parse(buildOrgaWorkbook(t, rows))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	records := parsed.Ordered()
	wantKinds := []models.ServiceKind{models.KindHotel, models.KindTransfer, models.KindRestaurant, models.KindGolf}
	if len(records) != len(wantKinds) {
		t.Fatalf("expected %d records, got %d", len(wantKinds), len(records))
	}
	for i, rec := range records {
		if rec.Kind != wantKinds[i] {
			t.Fatalf("record %d kind = %s, want %s", i, rec.Kind, wantKinds[i])
		}
	}

	// Repeated calls must not change the sequence.
	again := parsed.Ordered()
	for i := range records {
		if records[i].Kind != again[i].Kind || records[i].Row != again[i].Row {
			t.Fatalf("Ordered() is not stable at index %d", i)
		}
	}
}
