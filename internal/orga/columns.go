package orga

import (
	"sort"
	"strings"
)

// Compact-format column defaults (1-based). The ORGA layout has no schema;
// these positions are the convention the operations team fills in, and header
// detection below adjusts them when a sheet deviates.
const (
	colDays          = 1
	colDay           = 2
	colDate          = 3
	colRegionCity    = 4
	colHotelSupplier = 5
	colRoom          = 6
	colBoard         = 7
	colHotelNotes    = 8
	colHotelStatus   = 9
	colHotelInvoice  = 10

	colGolfSupplier = 11
	colGolfCourse   = 12
	colTeeTime      = 13
	colDrivingRange = 14
	colGolfCart     = 15
	colRentalSet    = 16
	colGolfNotes    = 17
	colGolfStatus   = 18
	colGolfInvoice  = 19

	colActivitySupplier = 20
	colActivityName     = 21
	colActivityTime     = 22
	colActivityNotes    = 23
	colActivityStatus   = 24
	colActivityInvoice  = 25

	colTransferSupplier = 26
	colTransferRoute    = 27
	colServiceType      = 28
	colPickupTime       = 29
	colDropoffTime      = 30
	colFlightNum        = 31
	colFlightTime       = 32
	colTravelTime       = 33
	colTransferNotes    = 34
	colTransferStatus   = 35
	colTransferInvoice  = 36
)

// maxScanCol bounds header scanning; no known ORGA variant goes wider.
const maxScanCol = 60

// ColumnMap is the typed projection of the sheet's positional layout: one
// named index per field instead of magic offsets at every call site.
type ColumnMap struct {
	Days          int
	Day           int
	Date          int
	RegionCity    int
	HotelSupplier int
	Room          int
	Board         int
	HotelNotes    int
	HotelStatus   int

	GolfSupplier int
	GolfCourse   int
	TeeTime      int
	DrivingRange int
	GolfCart     int
	RentalSet    int
	GolfNotes    int

	ActivitySupplier int
	ActivityName     int
	ActivityTime     int
	ActivityNotes    int

	TransferSupplier int
	TransferRoute    int
	ServiceType      int
	PickupTime       int
	DropoffTime      int
	FlightNum        int
	FlightTime       int
	TransferNotes    int
	TransferStatus   int
}

func defaultColumns() ColumnMap {
	return ColumnMap{
		Days:          colDays,
		Day:           colDay,
		Date:          colDate,
		RegionCity:    colRegionCity,
		HotelSupplier: colHotelSupplier,
		Room:          colRoom,
		Board:         colBoard,
		HotelNotes:    colHotelNotes,
		HotelStatus:   colHotelStatus,

		GolfSupplier: colGolfSupplier,
		GolfCourse:   colGolfCourse,
		TeeTime:      colTeeTime,
		DrivingRange: colDrivingRange,
		GolfCart:     colGolfCart,
		RentalSet:    colRentalSet,
		GolfNotes:    colGolfNotes,

		ActivitySupplier: colActivitySupplier,
		ActivityName:     colActivityName,
		ActivityTime:     colActivityTime,
		ActivityNotes:    colActivityNotes,

		TransferSupplier: colTransferSupplier,
		TransferRoute:    colTransferRoute,
		ServiceType:      colServiceType,
		PickupTime:       colPickupTime,
		DropoffTime:      colDropoffTime,
		FlightNum:        colFlightNum,
		FlightTime:       colFlightTime,
		TransferNotes:    colTransferNotes,
		TransferStatus:   colTransferStatus,
	}
}

// detectColumns reads the header row and adjusts the default positions.
// The ORGA sections always appear in the order Hotel -> Golf -> Activity ->
// Transfer; section starts anchor the repeated Notes/Status columns.
func detectColumns(rows [][]string, headerRow int) ColumnMap {
	mapping := defaultColumns()

	headers := map[int]string{}
	for c := 1; c <= maxScanCol; c++ {
		v := strings.ToLower(strings.TrimSpace(cell(rows, headerRow, c)))
		if v != "" {
			headers[c] = v
		}
	}

	cols := make([]int, 0, len(headers))
	for c := range headers {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	var golfStart, activityStart, transferStart int

	for _, c := range cols {
		h := headers[c]
		switch {
		case h == "days":
			mapping.Days = c
		case h == "day":
			mapping.Day = c
		case h == "date":
			mapping.Date = c
		case h == "region/city" || h == "region" || h == "city":
			mapping.RegionCity = c
		case strings.Contains(h, "hotel") && strings.Contains(h, "supplier"):
			mapping.HotelSupplier = c
		case h == "room":
			mapping.Room = c
		case h == "board":
			mapping.Board = c

		case strings.Contains(h, "golf") && strings.Contains(h, "supplier"):
			mapping.GolfSupplier = c
			golfStart = c
		case strings.Contains(h, "golf") && strings.Contains(h, "course"):
			mapping.GolfCourse = c
		case strings.Contains(h, "tee") && strings.Contains(h, "time"):
			mapping.TeeTime = c
		case strings.Contains(h, "driving") && strings.Contains(h, "range"):
			mapping.DrivingRange = c
		case strings.Contains(h, "golf") && strings.Contains(h, "cart"):
			mapping.GolfCart = c
		case strings.Contains(h, "rental") && strings.Contains(h, "set"):
			mapping.RentalSet = c

		// The first bare "Supplier" after the golf section opens the
		// activity section; the next one opens transfers.
		case h == "supplier" && golfStart > 0 && activityStart == 0:
			mapping.ActivitySupplier = c
			activityStart = c
		case h == "activity":
			mapping.ActivityName = c
			if activityStart == 0 {
				if sup := lookBack(headers, c, 5, "supplier"); sup > 0 {
					mapping.ActivitySupplier = sup
					activityStart = sup
				}
			}

		case h == "supplier" && activityStart > 0 && transferStart == 0:
			mapping.TransferSupplier = c
			transferStart = c
		case strings.Contains(h, "transport") || (strings.Contains(h, "transfer") && strings.Contains(h, "route")):
			mapping.TransferRoute = c
			if transferStart == 0 {
				if sup := lookBack(headers, c, 3, "supplier"); sup > 0 {
					mapping.TransferSupplier = sup
					transferStart = sup
				}
			}
		case h == "service type":
			mapping.ServiceType = c
		case strings.Contains(h, "p/up") || strings.Contains(h, "pickup"):
			mapping.PickupTime = c
		case strings.Contains(h, "d/off") || strings.Contains(h, "dropoff"):
			mapping.DropoffTime = c
		case strings.Contains(h, "flight") && strings.Contains(h, "#"):
			mapping.FlightNum = c
		case strings.Contains(h, "flight") && strings.Contains(h, "time"):
			mapping.FlightTime = c
		}
	}

	// Notes/Status repeat once per section; assign by which section start
	// precedes them.
	for _, c := range cols {
		h := headers[c]
		switch {
		case h == "notes":
			switch {
			case transferStart > 0 && c > transferStart:
				mapping.TransferNotes = c
			case activityStart > 0 && c > activityStart:
				mapping.ActivityNotes = c
			case golfStart > 0 && c > golfStart:
				mapping.GolfNotes = c
			case c <= 10:
				mapping.HotelNotes = c
			}
		case h == "status":
			switch {
			case transferStart > 0 && c > transferStart:
				mapping.TransferStatus = c
			case c <= 10:
				mapping.HotelStatus = c
			}
		}
	}

	return mapping
}

// lookBack finds a header equal to want within dist columns left of c.
func lookBack(headers map[int]string, c, dist int, want string) int {
	for b := c - 1; b > c-1-dist && b > 0; b-- {
		if headers[b] == want {
			return b
		}
	}
	return 0
}
