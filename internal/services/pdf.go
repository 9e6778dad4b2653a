package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"vouchergen/internal/domain/models"
)

// boardBasis expands the ORGA board abbreviations for the voucher text.
var boardBasis = map[string]string{
	"RO":  "Room Only",
	"BB":  "Bed & Breakfast",
	"HB":  "Half Board",
	"FB":  "Full Board",
	"FB+": "Full Board Plus - Dinner, Bed, Breakfast, Lunch and Activities",
	"AI":  "All Inclusive",
}

const voucherDisclaimer = "All additional services are for guest's own account"

// voucherContext carries the per-traveller fields shared by every page of
// one voucher set.
type voucherContext struct {
	Travellers string
	RefNo      string
	GroupText  string
}

func newVoucherPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Travel Vouchers", false)
	return pdf
}

// renderVoucherSet appends one page per service record, in contract order.
// Multiple sets (one per room on GROUP trips) can share the same document.
func renderVoucherSet(pdf *gofpdf.Fpdf, records []models.ServiceRecord, ctx voucherContext) {
	for _, rec := range records {
		switch rec.Kind {
		case models.KindHotel:
			writeHotelPage(pdf, rec.Hotel, ctx)
		case models.KindTransfer:
			writeTransferPage(pdf, rec.Transfer, ctx)
		case models.KindCarRental:
			writeCarRentalPage(pdf, rec.CarRental, ctx)
		case models.KindActivity:
			writeActivityPage(pdf, rec.Activity, ctx)
		case models.KindRestaurant:
			writeRestaurantPage(pdf, rec.Restaurant, ctx)
		case models.KindGolf:
			writeGolfPage(pdf, rec.Golf, ctx)
		}
	}
}

func outputPDF(pdf *gofpdf.Fpdf, filename string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

// writeVoucherHeader opens a page with the supplier contact block.
func writeVoucherHeader(pdf *gofpdf.Fpdf, title string, contact models.Contact, fallbackName string) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0x74, 0x74, 0x74)
	pdf.Cell(0, 8, title)
	pdf.Ln(10)

	name := contact.DisplayName
	if strings.TrimSpace(name) == "" {
		name = strings.ToUpper(strings.TrimSpace(fallbackName))
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0x22, 0x22, 0x22)
	pdf.Cell(0, 9, name)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x74, 0x74, 0x74)
	if contact.Address != "" {
		pdf.Cell(0, 6, contact.Address)
		pdf.Ln(6)
	}
	if contact.Phone != "" {
		pdf.Cell(0, 6, "Tel: "+contact.Phone)
		pdf.Ln(6)
	}
	if contact.GPS != "" {
		pdf.Cell(0, 6, "GPS: "+contact.GPS)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func writeLabelled(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(pdf.GetStringWidth(label)+2, 7, label)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 7, orDash(value), "", "", false)
}

func writeTravellerBlock(pdf *gofpdf.Fpdf, ctx voucherContext) {
	pdf.SetTextColor(0x74, 0x74, 0x74)
	writeLabelled(pdf, "TRAVELLERS: ", ctx.Travellers)
	writeLabelled(pdf, "REF NO: ", ctx.RefNo)
	if ctx.GroupText != "" {
		writeLabelled(pdf, "GROUP: ", ctx.GroupText)
	}
	pdf.Ln(3)
}

func writeIncludedServices(pdf *gofpdf.Fpdf, lines []string) {
	pdf.SetFont("Helvetica", "BI", 11)
	pdf.Cell(0, 7, "Included Services:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(4)
			continue
		}
		pdf.MultiCell(0, 6, "- "+line, "", "", false)
	}
	pdf.Ln(2)
}

func writeNotes(pdf *gofpdf.Fpdf, notes string) {
	if strings.TrimSpace(notes) == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Notes:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, notes, "", "", false)
	pdf.Ln(2)
}

func writeDisclaimer(pdf *gofpdf.Fpdf) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "BI", 11)
	pdf.SetTextColor(0xEE, 0x00, 0x00)
	pdf.MultiCell(0, 6, voucherDisclaimer, "", "", false)
	pdf.SetTextColor(0x22, 0x22, 0x22)
}

func writeHotelPage(pdf *gofpdf.Fpdf, h *models.HotelStay, ctx voucherContext) {
	writeVoucherHeader(pdf, "ACCOMMODATION VOUCHER", h.Contact, h.Supplier)
	writeTravellerBlock(pdf, ctx)

	writeLabelled(pdf, "CHECK IN: ", fmt.Sprintf("%s    TIME: 14h00", formatLongDate(h.CheckIn)))
	writeLabelled(pdf, "CHECK OUT: ", fmt.Sprintf("%s    TIME: 11h00    NIGHTS: %d", formatLongDate(h.CheckOut), h.Nights))
	pdf.Ln(3)

	services := []string{hotelRoomLine(h.RoomType)}
	if h.Board != "" {
		services = append(services, "Board Basis: "+boardBasisText(h.Board))
	}
	services = append(services, lodgeGameDrives(h)...)
	writeIncludedServices(pdf, services)

	writeNotes(pdf, h.Notes)
	writeDisclaimer(pdf)
}

func hotelRoomLine(roomType string) string {
	if strings.TrimSpace(roomType) == "" {
		return "Accommodation Type: Double Room"
	}
	return fmt.Sprintf("Accommodation Type: X1 %s - DBL", roomType)
}

func boardBasisText(board string) string {
	if full, ok := boardBasis[strings.ToUpper(strings.TrimSpace(board))]; ok {
		return full
	}
	return board
}

// lodgeGameDrives schedules the included drives for full-board safari stays:
// afternoon drive on arrival day, morning drive on departure eve, both on the
// days between.
func lodgeGameDrives(h *models.HotelStay) []string {
	board := strings.ToUpper(strings.TrimSpace(h.Board))
	if board != "FB" && board != "FB+" {
		return nil
	}

	lines := []string{"", "Activities:"}
	lastNight := h.CheckOut.AddDate(0, 0, -1)
	for d := h.CheckIn; d.Before(h.CheckOut); d = d.AddDate(0, 0, 1) {
		switch {
		case d.Equal(h.CheckIn):
			lines = append(lines, fmt.Sprintf("    %s - X1 Afternoon Game Drive", formatShortDate(d)))
		case d.Equal(lastNight):
			lines = append(lines, fmt.Sprintf("    %s - X1 Morning Game Drive", formatShortDate(d)))
		default:
			lines = append(lines, fmt.Sprintf("    %s - X1 Morning & Afternoon Game Drive", formatShortDate(d)))
		}
	}
	return lines
}

func writeTransferPage(pdf *gofpdf.Fpdf, t *models.TransferVoucher, ctx voucherContext) {
	writeVoucherHeader(pdf, "TRANSFER VOUCHER", t.Contact, t.Supplier)
	writeTravellerBlock(pdf, ctx)

	var services []string
	var notes []string
	for _, leg := range t.Legs {
		line := "Pick Up: " + formatShortDate(leg.Date)
		if leg.PickupPoint != "" {
			line += " - " + leg.PickupPoint
		}
		if leg.PickupTime != "" {
			line += " @ " + leg.PickupTime
		}
		if leg.FlightNumber != "" {
			line += fmt.Sprintf(" (Flight %s)", leg.FlightNumber)
		}
		if strings.Contains(strings.ToLower(leg.PickupPoint), "airport") {
			line += " - Your driver will meet you in the arrivals hall with your name board."
		}
		services = append(services, line)
		if leg.DropoffPoint != "" {
			services = append(services, "Drop Off: "+leg.DropoffPoint)
		}
		services = append(services, "")

		if leg.Notes != "" {
			notes = append(notes, leg.Notes)
		}
	}
	writeIncludedServices(pdf, services)

	writeNotes(pdf, strings.Join(notes, "\n"))
	writeDisclaimer(pdf)
}

// Rental terms printed on every car voucher; the operator's rate agreements
// all include these.
var carRentalTerms = []string{
	"Unlimited Mileage",
	"Zero Excess",
	"Including glass and tire insurance",
	"Full to Full Fuel Policy",
}

func writeCarRentalPage(pdf *gofpdf.Fpdf, c *models.CarRentalVoucher, ctx voucherContext) {
	writeVoucherHeader(pdf, "CAR RENTAL VOUCHER", c.Contact, c.Supplier)

	groupLines := append([]string{c.CarGroup}, carRentalTerms...)
	carCtx := ctx
	carCtx.GroupText = strings.Join(groupLines, "\n")
	writeTravellerBlock(pdf, carCtx)

	writeIncludedServices(pdf, []string{
		fmt.Sprintf("Pick Up: %s - %s", formatShortDate(c.PickupDate), orDash(c.PickupPoint)),
		fmt.Sprintf("Drop Off: %s - %s", formatShortDate(c.DropoffDate), orDash(c.DropoffPoint)),
	})

	writeNotes(pdf, c.Notes)
	writeDisclaimer(pdf)
}

func writeActivityPage(pdf *gofpdf.Fpdf, a *models.ActivityVoucher, ctx voucherContext) {
	writeVoucherHeader(pdf, "ACTIVITY VOUCHER", a.Contact, a.Supplier)
	writeTravellerBlock(pdf, ctx)

	var services []string
	var notes []string

	if len(a.Entries) == 1 {
		entry := a.Entries[0]
		writeLabelled(pdf, "DATE: ", formatLongDate(entry.Date))
		if entry.Time != "" {
			writeLabelled(pdf, "TIME: ", entry.Time)
		}
		pdf.Ln(3)
		services = append(services, entry.Name)
		notes = append(notes, entry.Notes)
	} else {
		for _, entry := range a.Entries {
			line := formatShortDate(entry.Date)
			if entry.Time != "" {
				line += " - " + entry.Time
			}
			line += " - " + entry.Name
			services = append(services, line)
			if entry.Notes != "" {
				notes = append(notes, entry.Notes)
			}
		}
	}
	writeIncludedServices(pdf, services)

	writeNotes(pdf, strings.TrimSpace(strings.Join(notes, "\n")))
	writeDisclaimer(pdf)
}

func writeRestaurantPage(pdf *gofpdf.Fpdf, r *models.RestaurantVoucher, ctx voucherContext) {
	writeVoucherHeader(pdf, "RESTAURANT VOUCHER", r.Contact, r.Supplier)
	writeTravellerBlock(pdf, ctx)

	writeLabelled(pdf, "DATE: ", formatLongDate(r.Date))
	if r.Time != "" {
		writeLabelled(pdf, "TIME: ", r.Time)
	}
	pdf.Ln(3)

	booking := r.Notes
	if strings.TrimSpace(booking) == "" {
		booking = "Dinner reservation"
	}
	writeIncludedServices(pdf, []string{booking})

	writeDisclaimer(pdf)
}

func writeGolfPage(pdf *gofpdf.Fpdf, g *models.GolfVoucher, ctx voucherContext) {
	writeVoucherHeader(pdf, "GOLF VOUCHER", g.Contact, g.Supplier)
	writeTravellerBlock(pdf, ctx)

	writeLabelled(pdf, "DATE: ", formatLongDate(g.Date))
	if g.TeeTime != "" {
		writeLabelled(pdf, "TIME: ", "Tee Time: "+g.TeeTime)
	}
	pdf.Ln(3)

	services := []string{"Golf Course: " + g.Course}
	if g.Cart != "" {
		services = append(services, "Cart: "+g.Cart)
	}
	if g.RentalSet != "" {
		services = append(services, "Rental Set: "+g.RentalSet)
	}
	writeIncludedServices(pdf, services)

	writeNotes(pdf, g.Notes)
	writeDisclaimer(pdf)
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func formatLongDate(d time.Time) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02 January 2006")
}

func formatShortDate(d time.Time) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02.01.2006")
}
