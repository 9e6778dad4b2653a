package services

import (
	"fmt"
	"path/filepath"

	"vouchergen/internal/client"
	"vouchergen/internal/domain"
	"vouchergen/internal/domain/models"
	"vouchergen/internal/orga"
	"vouchergen/internal/suppliers"
	"vouchergen/internal/utils"
)

// VoucherService runs the full generation flow: trip identity check, client
// and ORGA parsing, pre-flight validation, PDF assembly. The parse funcs are
// injectable for tests; nil falls back to the real parsers.
type VoucherService struct {
	Suppliers *suppliers.Directory
	RequestID string

	ParseOrga   func(path string) (*models.ParsedOrga, error)
	ParseSingle func(path string) ([]string, error)
	ParseGroup  func(path string) ([]models.RoomGroup, error)
}

// GenerateResult is one finished voucher set.
type GenerateResult struct {
	PDF      []byte
	Filename string
	Report   *ValidationReport
}

// GenerateSingle produces the voucher PDF for a SINGLE trip: one traveller
// party from a .docx confirmation, one voucher page per service.
func (s VoucherService) GenerateSingle(orgaPath, clientPath, refNo string) (*GenerateResult, error) {
	parsed, tripID, err := s.parseAndVerify(orgaPath, clientPath)
	if err != nil {
		return nil, err
	}

	names, err := s.parseSingle(clientPath)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, domain.ValidationError{Field: "client_file", Msg: "no traveller names extracted"}
	}
	travellers := joinNames(names)

	report := BuildReport(parsed, filepath.Base(orgaPath), tripID)

	pdf := newVoucherPDF()
	renderVoucherSet(pdf, parsed.Ordered(), voucherContext{
		Travellers: travellers,
		RefNo:      refNo,
	})

	out, filename, err := outputPDF(pdf, fmt.Sprintf("Vouchers_%s_%s.pdf", tripID, utils.SafeFilenamePart(names[0])))
	if err != nil {
		return nil, domain.InternalError{Msg: "render voucher pdf", Err: err}
	}

	utils.LogEvent(s.RequestID, "vouchers", "generate_single",
		fmt.Sprintf("trip=%s records=%d passed=%t", tripID, parsed.Count(), report.Passed))
	return &GenerateResult{PDF: out, Filename: filename, Report: report}, nil
}

// GenerateGroup produces the voucher PDF for a GROUP trip: the full service
// set repeats once per roster room, with that room's occupants in the
// traveller header.
func (s VoucherService) GenerateGroup(orgaPath, rosterPath, refNo, groupText string) (*GenerateResult, error) {
	parsed, tripID, err := s.parseAndVerify(orgaPath, rosterPath)
	if err != nil {
		return nil, err
	}

	rooms, err := s.parseGroup(rosterPath)
	if err != nil {
		return nil, err
	}
	bindings, err := BindRooms(parsed, rooms, filepath.Base(rosterPath))
	if err != nil {
		return nil, err
	}

	report := BuildReport(parsed, filepath.Base(orgaPath), tripID)

	pdf := newVoucherPDF()
	for _, b := range bindings {
		renderVoucherSet(pdf, b.Records, voucherContext{
			Travellers: b.Room.NamesDisplay(),
			RefNo:      refNo,
			GroupText:  groupText,
		})
	}

	out, filename, err := outputPDF(pdf, fmt.Sprintf("Vouchers_%s_GROUP.pdf", tripID))
	if err != nil {
		return nil, domain.InternalError{Msg: "render voucher pdf", Err: err}
	}

	utils.LogEvent(s.RequestID, "vouchers", "generate_group",
		fmt.Sprintf("trip=%s rooms=%d records=%d passed=%t", tripID, len(bindings), parsed.Count(), report.Passed))
	return &GenerateResult{PDF: out, Filename: filename, Report: report}, nil
}

// parseAndVerify checks the trip identity and parses the ORGA. Filename IDs
// are compared before the workbook is opened, so a mismatched pair never
// reaches extraction; the Trip Number metadata cell is the fallback only when
// the ORGA filename carries no ID at all.
func (s VoucherService) parseAndVerify(orgaPath, clientPath string) (*models.ParsedOrga, string, error) {
	orgaID := client.ExtractTripID(orgaPath)
	clientID := client.ExtractTripID(clientPath)
	if orgaID != "" || clientID == "" {
		if err := client.ValidateTripIdentity(orgaPath, clientPath); err != nil {
			return nil, "", err
		}
	}

	parsed, err := s.parseOrga(orgaPath)
	if err != nil {
		return nil, "", err
	}
	s.attachContacts(parsed)

	if orgaID == "" {
		orgaID = parsed.TripNumber
		if orgaID == "" || orgaID != clientID {
			return nil, "", domain.TripMismatchError{OrgaID: orgaID, ClientID: clientID}
		}
	}
	return parsed, orgaID, nil
}

// attachContacts resolves every supplier against the directory so the
// renderers get complete header blocks.
func (s VoucherService) attachContacts(parsed *models.ParsedOrga) {
	if s.Suppliers == nil {
		return
	}
	for i := range parsed.Hotels {
		parsed.Hotels[i].Contact = s.Suppliers.Lookup(parsed.Hotels[i].Supplier)
	}
	for i := range parsed.Transfers {
		parsed.Transfers[i].Contact = s.Suppliers.Lookup(parsed.Transfers[i].Supplier)
	}
	for i := range parsed.CarRentals {
		parsed.CarRentals[i].Contact = s.Suppliers.Lookup(parsed.CarRentals[i].Supplier)
	}
	for i := range parsed.Activities {
		parsed.Activities[i].Contact = s.Suppliers.Lookup(parsed.Activities[i].Supplier)
	}
	for i := range parsed.Restaurants {
		parsed.Restaurants[i].Contact = s.Suppliers.Lookup(parsed.Restaurants[i].Supplier)
	}
	for i := range parsed.Golf {
		parsed.Golf[i].Contact = s.Suppliers.Lookup(parsed.Golf[i].Supplier)
	}
}

func (s VoucherService) parseOrga(path string) (*models.ParsedOrga, error) {
	if s.ParseOrga != nil {
		return s.ParseOrga(path)
	}
	return orga.ParseFile(path)
}

func (s VoucherService) parseSingle(path string) ([]string, error) {
	if s.ParseSingle != nil {
		return s.ParseSingle(path)
	}
	return client.ParseSingleFile(path)
}

func (s VoucherService) parseGroup(path string) ([]models.RoomGroup, error) {
	if s.ParseGroup != nil {
		return s.ParseGroup(path)
	}
	return client.ParseGroupFile(path)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " & "
		}
		out += n
	}
	return out
}
