package client

import (
	"testing"

	"vouchergen/internal/domain"
)

func TestExtractTripID(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"1008 LFA FRM Frilling SA - Orga.xlsx", "1008"},
		{"_1115 BS Vaughan Hawtrey FAO.xlsx", "1115"},
		{"Bestätigung - Thonhauser GM 22122025.docx", "1222"},
		{"/uploads/2025/1008 LFA FRM Frilling SA - Orga.xlsx", "1008"},
		{"Orga Frilling 1008 Final.xlsx", "1008"},
		{"Orga Frilling.xlsx", ""},
	}

	for _, tc := range cases {
		if got := ExtractTripID(tc.filename); got != tc.want {
			t.Fatalf("ExtractTripID(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestValidateTripIdentity(t *testing.T) {
	if err := ValidateTripIdentity("1008 Orga.xlsx", "1008 BS Frilling.xlsx"); err != nil {
		t.Fatalf("matching IDs rejected: %v", err)
	}

	err := ValidateTripIdentity("1008 Orga.xlsx", "1115 BS Vaughan.xlsx")
	if !domain.IsTripMismatch(err) {
		t.Fatalf("expected TripMismatchError, got %v", err)
	}

	// A missing ID is never accepted silently.
	err = ValidateTripIdentity("Orga.xlsx", "1115 BS Vaughan.xlsx")
	if !domain.IsTripMismatch(err) {
		t.Fatalf("expected TripMismatchError for missing orga ID, got %v", err)
	}
}
