package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is one reservation of one room for a contiguous interval on a
// single date. Times are local wall-clock "HH:MM" strings; the organization
// runs in a single timezone. Attendees are kept as the raw comma-separated
// string the client sent.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID    string             `bson:"room_id" json:"roomId"`
	RoomName  string             `bson:"room_name" json:"roomName"`
	Date      string             `bson:"date" json:"date"`
	StartTime string             `bson:"start_time" json:"startTime"`
	EndTime   string             `bson:"end_time" json:"endTime"`
	UserEmail string             `bson:"user_email" json:"userEmail"`
	Title     string             `bson:"title" json:"title"`
	Attendees string             `bson:"attendees" json:"attendees"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// ParseDateTime combines a "2006-01-02" date and an "15:04" wall-clock time
// in the organization's local timezone.
func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}

type CreateBookingRequest struct {
	RoomID    string `json:"roomId" validate:"required"`
	RoomName  string `json:"roomName"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required"`
	Title     string `json:"title"`
	Attendees string `json:"attendees"`
}

type EditBookingRequest struct {
	RoomID    string `json:"roomId"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required"`
	Title     string `json:"title"`
	Attendees string `json:"attendees"`
}

type CancelBookingRequest struct {
	UserEmail string `json:"userEmail" validate:"required"`
}

type BookingRepo interface {
	InsertBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	// ListBookingsByDate returns bookings for a date, optionally filtered to
	// one room, sorted by start time ascending.
	ListBookingsByDate(ctx context.Context, date, roomID string) ([]*Booking, error)
	// ListBookingsByOwner returns a user's bookings sorted by date and start
	// time, most recent first.
	ListBookingsByOwner(ctx context.Context, userEmail string) ([]*Booking, error)
	UpdateBooking(ctx context.Context, id string, booking *Booking) error
	DeleteBooking(ctx context.Context, id string) error
}
