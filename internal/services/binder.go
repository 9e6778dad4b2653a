package services

import (
	"sort"

	"vouchergen/internal/domain"
	"vouchergen/internal/domain/models"
)

// RoomBinding pairs one room's travellers with the voucher set they receive.
// On GROUP trips every room gets the complete set; services are shared, only
// the traveller header differs.
type RoomBinding struct {
	Room    models.RoomGroup
	Records []models.ServiceRecord
}

// BindRooms assigns the full ordered voucher set to every roster room.
func BindRooms(parsed *models.ParsedOrga, rooms []models.RoomGroup, rosterFile string) ([]RoomBinding, error) {
	if len(rooms) == 0 {
		return nil, domain.EmptyRosterError{File: rosterFile}
	}

	records := parsed.Ordered()
	bindings := make([]RoomBinding, 0, len(rooms))
	for _, room := range rooms {
		bindings = append(bindings, RoomBinding{Room: room, Records: records})
	}
	sort.SliceStable(bindings, func(i, j int) bool {
		return bindings[i].Room.RoomNumber < bindings[j].Room.RoomNumber
	})
	return bindings, nil
}
