package models

import (
	"sort"
	"time"
)

// ServiceKind identifies the voucher category a record belongs to.
type ServiceKind string

const (
	KindHotel      ServiceKind = "hotel"
	KindTransfer   ServiceKind = "transfer"
	KindCarRental  ServiceKind = "car_rental"
	KindActivity   ServiceKind = "activity"
	KindRestaurant ServiceKind = "restaurant"
	KindGolf       ServiceKind = "golf"
)

// kindOrder fixes the voucher ordering in the merged PDF. Downstream assembly
// has no secondary sort of its own, so this table is a contract.
var kindOrder = map[ServiceKind]int{
	KindHotel:      0,
	KindTransfer:   1,
	KindCarRental:  2,
	KindActivity:   3,
	KindRestaurant: 4,
	KindGolf:       5,
}

// Contact carries supplier contact details for the voucher header.
type Contact struct {
	DisplayName string `json:"display_name" yaml:"display_name"`
	Address     string `json:"address" yaml:"address"`
	Phone       string `json:"phone" yaml:"phone"`
	GPS         string `json:"gps" yaml:"gps"`
}

// HotelStay is one merged run of consecutive nights at the same hotel.
type HotelStay struct {
	Supplier   string
	RegionCity string
	RoomType   string
	Board      string
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	Notes      string
	Status     string
	Contact    Contact
	Warnings   []string
	Row        int
}

// TransferLeg is a single pickup/dropoff pair on a transfer voucher.
type TransferLeg struct {
	Date         time.Time
	PickupPoint  string
	DropoffPoint string
	PickupTime   string
	DropoffTime  string
	FlightNumber string
	Notes        string
}

// TransferVoucher groups the legs driven by one supplier over an adjacent
// block of rows. The same supplier appearing again later in the sheet starts
// a new voucher; distant rows are never folded together.
type TransferVoucher struct {
	Supplier string
	Legs     []TransferLeg
	Contact  Contact
	Row      int
}

func (v TransferVoucher) StartDate() time.Time {
	if len(v.Legs) == 0 {
		return time.Time{}
	}
	earliest := v.Legs[0].Date
	for _, leg := range v.Legs[1:] {
		if leg.Date.Before(earliest) {
			earliest = leg.Date
		}
	}
	return earliest
}

// CarRentalVoucher is assembled from transfer-band rows carrying rental
// keywords (car group, collect, drop).
type CarRentalVoucher struct {
	Supplier     string
	CarGroup     string
	PickupDate   time.Time
	PickupPoint  string
	DropoffDate  time.Time
	DropoffPoint string
	Notes        string
	Contact      Contact
	Row          int
}

// ActivityEntry is one dated line on an activity voucher.
type ActivityEntry struct {
	Date  time.Time
	Name  string
	Time  string
	Notes string
}

// ActivityVoucher covers a tour/tasting/excursion booking. Consecutive rows
// for the same supplier on the same date share one voucher.
type ActivityVoucher struct {
	Supplier string
	Entries  []ActivityEntry
	Contact  Contact
	Row      int
}

func (v ActivityVoucher) StartDate() time.Time {
	if len(v.Entries) == 0 {
		return time.Time{}
	}
	return v.Entries[0].Date
}

// RestaurantVoucher covers a single dinner/lunch reservation.
type RestaurantVoucher struct {
	Supplier string
	Date     time.Time
	Time     string
	Notes    string
	Contact  Contact
	Row      int
}

// GolfVoucher covers one round: course, tee time and extras.
type GolfVoucher struct {
	Supplier  string
	Course    string
	Date      time.Time
	TeeTime   string
	Cart      string
	RentalSet string
	Notes     string
	Contact   Contact
	Row       int
}

// RoomGroup is one room bucket from the GROUP roster, in roster order.
type RoomGroup struct {
	RoomNumber int
	Occupants  []string
}

// NamesDisplay formats occupant names for the voucher header.
func (r RoomGroup) NamesDisplay() string {
	out := ""
	for i, n := range r.Occupants {
		if i > 0 {
			out += " & "
		}
		out += n
	}
	return out
}

// ParsedOrga holds everything extracted from one ORGA workbook.
//
// Service data only: traveller names never come from the ORGA file, they come
// from the uploaded client file. LeadName is reference metadata.
type ParsedOrga struct {
	Hotels      []HotelStay
	Transfers   []TransferVoucher
	CarRentals  []CarRentalVoucher
	Activities  []ActivityVoucher
	Restaurants []RestaurantVoucher
	Golf        []GolfVoucher

	Sheet      string
	TripNumber string
	LeadName   string
	Pax        int
	Dates      string
	Warnings   []string
}

// ServiceRecord is the kind-tagged view over one voucher used for ordering,
// validation and rendering. Exactly one of the pointers is set.
type ServiceRecord struct {
	Kind     ServiceKind
	Supplier string
	Start    time.Time
	Row      int

	Hotel      *HotelStay
	Transfer   *TransferVoucher
	CarRental  *CarRentalVoucher
	Activity   *ActivityVoucher
	Restaurant *RestaurantVoucher
	Golf       *GolfVoucher
}

// Ordered flattens the parse result into the contract order: kind precedence,
// then start date, then original row position. Calling it repeatedly on the
// same ParsedOrga returns the same sequence.
func (p *ParsedOrga) Ordered() []ServiceRecord {
	records := make([]ServiceRecord, 0,
		len(p.Hotels)+len(p.Transfers)+len(p.CarRentals)+len(p.Activities)+len(p.Restaurants)+len(p.Golf))

	for i := range p.Hotels {
		h := &p.Hotels[i]
		records = append(records, ServiceRecord{Kind: KindHotel, Supplier: h.Supplier, Start: h.CheckIn, Row: h.Row, Hotel: h})
	}
	for i := range p.Transfers {
		t := &p.Transfers[i]
		records = append(records, ServiceRecord{Kind: KindTransfer, Supplier: t.Supplier, Start: t.StartDate(), Row: t.Row, Transfer: t})
	}
	for i := range p.CarRentals {
		cr := &p.CarRentals[i]
		records = append(records, ServiceRecord{Kind: KindCarRental, Supplier: cr.Supplier, Start: cr.PickupDate, Row: cr.Row, CarRental: cr})
	}
	for i := range p.Activities {
		a := &p.Activities[i]
		records = append(records, ServiceRecord{Kind: KindActivity, Supplier: a.Supplier, Start: a.StartDate(), Row: a.Row, Activity: a})
	}
	for i := range p.Restaurants {
		r := &p.Restaurants[i]
		records = append(records, ServiceRecord{Kind: KindRestaurant, Supplier: r.Supplier, Start: r.Date, Row: r.Row, Restaurant: r})
	}
	for i := range p.Golf {
		g := &p.Golf[i]
		records = append(records, ServiceRecord{Kind: KindGolf, Supplier: g.Supplier, Start: g.Date, Row: g.Row, Golf: g})
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if kindOrder[a.Kind] != kindOrder[b.Kind] {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.Row < b.Row
	})

	return records
}

// Count returns the total number of vouchers in the parse result.
func (p *ParsedOrga) Count() int {
	return len(p.Hotels) + len(p.Transfers) + len(p.CarRentals) +
		len(p.Activities) + len(p.Restaurants) + len(p.Golf)
}
