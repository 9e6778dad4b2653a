// Package client parses the traveller-side inputs: the 4-digit trip
// identity carried in filenames, SINGLE confirmation documents, and GROUP
// rooming lists.
package client

import (
	"path/filepath"
	"regexp"

	"vouchergen/internal/domain"
)

var (
	leadingTripID = regexp.MustCompile(`^_?(\d{4})\s`)
	docxDateID    = regexp.MustCompile(`(?i)(\d{2})(\d{2})\d{4}\.docx$`)
	anyFourDigits = regexp.MustCompile(`\d{4}`)
)

// ExtractTripID pulls the 4-digit trip identifier from a filename.
// Filenames lead with the ID ("1008 LFA FRM ... Orga.xlsx", optionally
// underscore-prefixed); confirmation documents instead end in a DDMMYYYY
// date whose MMDD is the ID. Returns "" when nothing matches.
func ExtractTripID(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))

	if m := leadingTripID.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := docxDateID.FindStringSubmatch(name); m != nil {
		return m[2] + m[1]
	}
	return anyFourDigits.FindString(name)
}

// ValidateTripIdentity checks that both input files carry the same trip ID.
// A missing ID on either side counts as a mismatch: vouchers must never be
// generated for an unverified pairing.
func ValidateTripIdentity(orgaFilename, clientFilename string) error {
	orgaID := ExtractTripID(orgaFilename)
	clientID := ExtractTripID(clientFilename)

	if orgaID == "" || clientID == "" || orgaID != clientID {
		return domain.TripMismatchError{OrgaID: orgaID, ClientID: clientID}
	}
	return nil
}
