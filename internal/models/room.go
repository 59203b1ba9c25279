package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Room struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Capacity  int                `bson:"capacity" json:"capacity" validate:"gt=0"`
	Location  string             `bson:"location" json:"location"`
	Equipment []string           `bson:"equipment" json:"equipment"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

type RoomRepo interface {
	ListRooms(ctx context.Context) ([]*Room, error)
	GetRoomByID(ctx context.Context, id string) (*Room, error)
	InsertRooms(ctx context.Context, rooms []*Room) error
	CountRooms(ctx context.Context) (int64, error)
}
