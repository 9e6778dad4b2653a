package client

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"vouchergen/internal/domain"
	"vouchergen/internal/domain/models"
	"vouchergen/internal/utils"
)

var rosterSheetNames = []string{"BookingSheet", "Booking Sheet", "Clients", "Teilnehmer"}

// Metadata rows mixed into rooming lists (counts, single/double markers,
// instructions to the agent).
var rosterSkipWords = []string{"bitte", "nächte"}

// Bare single/double room markers; matched exactly so surnames like
// "Mendez" survive.
var rosterSkipExact = []string{"ez", "dz", "ez/dz"}

// A traveller without a room number still belongs to the room above, but
// only this close to the last numbered row; anything further down is an
// orphan annotation.
const maxShareGap = 2

// ParseGroup extracts room assignments from a GROUP rooming-list workbook.
// Rows carrying a room number open a room; the name rows directly beneath
// share it. Returns EmptyRosterError when no valid rooms come out.
func ParseGroup(r io.Reader, filename string) ([]models.RoomGroup, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.ValidationError{Field: "client_file", Msg: "cannot read rooming list workbook", Err: err}
	}
	defer f.Close()

	sheet := pickRosterSheet(f)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.InternalError{Msg: "read rooming list sheet", Err: err}
	}

	headerRow, roomCol, lastCol, firstCol := locateRosterHeader(rows)
	rooms := readRooms(rows, headerRow, roomCol, lastCol, firstCol)

	if len(rooms) == 0 {
		return nil, domain.EmptyRosterError{File: filename}
	}

	utils.LogEvent("", "client", "parse_group", fmt.Sprintf("sheet %q: %d rooms", sheet, len(rooms)))
	return rooms, nil
}

// ParseGroupFile is a convenience wrapper for callers holding a path.
func ParseGroupFile(path string) ([]models.RoomGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.InternalError{Msg: "open rooming list workbook", Err: err}
	}
	defer f.Close()
	return ParseGroup(f, path)
}

func pickRosterSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	for _, want := range rosterSheetNames {
		for _, s := range sheets {
			if s == want {
				return s
			}
		}
	}
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// locateRosterHeader finds the row whose first column reads "Room" and maps
// the name columns from it. Falls back to the conventional layout when no
// header row exists.
func locateRosterHeader(rows [][]string) (headerRow, roomCol, lastCol, firstCol int) {
	roomCol, lastCol, firstCol = 1, 5, 6

	limit := len(rows)
	if limit > 30 {
		limit = 30
	}
	for r := 1; r <= limit; r++ {
		if !strings.EqualFold(rosterCell(rows, r, 1), "room") {
			continue
		}
		headerRow = r
		for c := 1; c <= 15; c++ {
			val := strings.ToLower(rosterCell(rows, r, c))
			switch {
			case val == "room":
				roomCol = c
			case strings.Contains(val, "last") && strings.Contains(val, "name"):
				lastCol = c
			case strings.Contains(val, "first") && strings.Contains(val, "name"):
				firstCol = c
			}
		}
		return headerRow, roomCol, lastCol, firstCol
	}
	return 1, roomCol, lastCol, firstCol
}

func readRooms(rows [][]string, headerRow, roomCol, lastCol, firstCol int) []models.RoomGroup {
	var rooms []models.RoomGroup
	var cur *models.RoomGroup
	lastRoomRow := headerRow

	for r := headerRow + 1; r <= len(rows); r++ {
		lastName := rosterCell(rows, r, lastCol)
		firstName := rosterCell(rows, r, firstCol)
		if lastName == "" && firstName == "" {
			continue
		}
		if isRosterNoise(lastName) {
			continue
		}

		fullName := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
		if len(fullName) < 2 {
			continue
		}

		roomVal := rosterCell(rows, r, roomCol)
		if roomVal != "" {
			num, err := strconv.Atoi(roomVal)
			if err != nil {
				// PRO rows and repeated header cells, not rooms.
				continue
			}
			if cur != nil {
				rooms = append(rooms, *cur)
			}
			cur = &models.RoomGroup{RoomNumber: num, Occupants: []string{fullName}}
			lastRoomRow = r
			continue
		}

		if cur != nil && r-lastRoomRow <= maxShareGap {
			cur.Occupants = append(cur.Occupants, fullName)
		} else {
			utils.LogEvent("", "client", "parse_group", fmt.Sprintf("row %d: dropping orphan name %q with no room", r, fullName))
		}
	}
	if cur != nil {
		rooms = append(rooms, *cur)
	}

	return rooms
}

func isRosterNoise(lastName string) bool {
	low := strings.ToLower(lastName)
	switch low {
	case "last name", "nachname", "arr./dep.":
		return true
	}
	for _, kw := range rosterSkipWords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	for _, kw := range rosterSkipExact {
		if low == kw {
			return true
		}
	}
	return false
}

func rosterCell(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}
