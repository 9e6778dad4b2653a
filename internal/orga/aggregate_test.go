package orga

import (
	"testing"
	"time"

	"vouchergen/internal/domain/models"
)

func mar(day int) time.Time {
	return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
}

func hotelFrag(row, day int, supplier, room, board string) Fragment {
	return Fragment{
		Row:  row,
		Date: mar(day),
		Kind: models.KindHotel,
		Hotel: &HotelBand{
			Supplier: supplier,
			Room:     room,
			Board:    board,
		},
	}
}

func TestAggregateHotelsToleratesOneBlankRow(t *testing.T) {
	frags := []Fragment{
		hotelFrag(11, 1, "Whale Rock", "Deluxe", "BB"),
		// Row 12 is blank in the sheet, row 13 continues the stay.
		hotelFrag(13, 2, "Whale Rock", "", ""),
	}

	parsed, _ := aggregate(frags)
	if len(parsed.Hotels) != 1 {
		t.Fatalf("expected 1 stay across a single blank row, got %d", len(parsed.Hotels))
	}
	if parsed.Hotels[0].Nights != 2 {
		t.Fatalf("nights = %d, want 2", parsed.Hotels[0].Nights)
	}
}

func TestAggregateHotelsSplitsOnWiderGap(t *testing.T) {
	frags := []Fragment{
		hotelFrag(11, 1, "Whale Rock", "", ""),
		hotelFrag(15, 5, "Whale Rock", "", ""),
	}

	parsed, _ := aggregate(frags)
	if len(parsed.Hotels) != 2 {
		t.Fatalf("expected 2 stays across a wide gap, got %d", len(parsed.Hotels))
	}
}

func TestAggregateHotelSupplierKeyIgnoresCaseAndSpacing(t *testing.T) {
	frags := []Fragment{
		hotelFrag(11, 1, "Whale Rock  Lodge", "", ""),
		hotelFrag(12, 2, "whale rock lodge", "", ""),
	}

	parsed, _ := aggregate(frags)
	if len(parsed.Hotels) != 1 {
		t.Fatalf("supplier key must normalize case/spacing, got %d stays", len(parsed.Hotels))
	}
	// Display name comes from the first fragment.
	if parsed.Hotels[0].Supplier != "Whale Rock  Lodge" {
		t.Fatalf("supplier = %q", parsed.Hotels[0].Supplier)
	}
}

func TestAggregateRestaurantsMergeSameSupplierSameDate(t *testing.T) {
	frag := func(row int, day int, supplier, name string) Fragment {
		return Fragment{
			Row:  row,
			Date: mar(day),
			Kind: models.KindRestaurant,
			Activity: &ActivityBand{
				Supplier: supplier,
				Name:     name,
			},
		}
	}

	parsed, _ := aggregate([]Fragment{
		frag(11, 1, "The Bungalow", "Dinner Reservation"),
		frag(12, 1, "The Bungalow", "Table on the terrace"),
		frag(13, 2, "The Bungalow", "Dinner Reservation"),
	})

	if len(parsed.Restaurants) != 2 {
		t.Fatalf("expected merge within one date only, got %d vouchers", len(parsed.Restaurants))
	}
	if parsed.Restaurants[0].Notes != "Dinner Reservation; Table on the terrace" {
		t.Fatalf("merged notes = %q", parsed.Restaurants[0].Notes)
	}
}

func TestAggregateCarRentalDefaultsSupplier(t *testing.T) {
	frags := []Fragment{
		{
			Row: 11, Date: mar(1), Kind: models.KindCarRental,
			Transfer: &TransferBand{Route: "Group B - Rental Car"},
		},
	}

	parsed, _ := aggregate(frags)
	if len(parsed.CarRentals) != 1 {
		t.Fatalf("expected 1 car rental, got %d", len(parsed.CarRentals))
	}
	if parsed.CarRentals[0].Supplier != defaultCarRentalSupplier {
		t.Fatalf("supplier = %q, want default", parsed.CarRentals[0].Supplier)
	}
}

func TestParseRoute(t *testing.T) {
	cases := []struct {
		route           string
		pickup, dropoff string
		notes           string
	}{
		{"Cape Town Airport - Wedgeview", "Cape Town Airport", "Wedgeview", ""},
		{"Trf to Hermanus", "", "Hermanus", ""},
		{"Transfer to Wilderness", "", "Wilderness", ""},
		{"Hermanus - Cape Town incl. wine route stop", "Hermanus", "Cape Town", "Includes: wine route stop"},
	}

	for _, tc := range cases {
		pickup, dropoff, notes := parseRoute(tc.route)
		if pickup != tc.pickup || dropoff != tc.dropoff || notes != tc.notes {
			t.Fatalf("parseRoute(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tc.route, pickup, dropoff, notes, tc.pickup, tc.dropoff, tc.notes)
		}
	}
}
