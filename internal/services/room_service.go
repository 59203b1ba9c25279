package services

import (
	"context"
	"fmt"

	"github.com/gustavopprado/sistema-reservas/internal/models"
)

type RoomService struct {
	rooms models.RoomRepo
}

func NewRoomService(rooms models.RoomRepo) *RoomService {
	return &RoomService{
		rooms: rooms,
	}
}

func (rs *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return rs.rooms.ListRooms(ctx)
}

// SeedRooms inserts the given rooms unless the collection already has any.
// Rooms are read-only from the booking engine's perspective; this is the
// administrative seeding path used by cmd/seed.
func (rs *RoomService) SeedRooms(ctx context.Context, rooms []*models.Room) (int, error) {
	for _, room := range rooms {
		if err := models.Validate.Struct(room); err != nil {
			return 0, fmt.Errorf("invalid room %q: %v", room.Name, err)
		}
	}

	count, err := rs.rooms.CountRooms(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	if err := rs.rooms.InsertRooms(ctx, rooms); err != nil {
		return 0, err
	}
	return len(rooms), nil
}
