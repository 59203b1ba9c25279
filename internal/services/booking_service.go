package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gustavopprado/sistema-reservas/internal/models"
)

// Mailer is the narrow contract the booking flow needs from the mail
// collaborator. Failures are logged, never propagated: the committed booking
// write decides the outcome.
type Mailer interface {
	SendInvite(ctx context.Context, booking *models.Booking, recipients []string) error
	SendUpdate(ctx context.Context, booking *models.Booking, recipients []string) error
	SendCancellation(ctx context.Context, booking *models.Booking, recipients []string) error
}

// EventCreator creates an external calendar event for a booking and returns
// a link to it. Best-effort, like Mailer.
type EventCreator interface {
	CreateEvent(ctx context.Context, booking *models.Booking) (string, error)
}

type BookingService struct {
	bookings models.BookingRepo
	rooms    models.RoomRepo
	policy   Policy
	mailer   Mailer
	calendar EventCreator
	logger   *slog.Logger

	// now is replaceable in tests to pin the grace-window boundary.
	now func() time.Time
}

func NewBookingService(
	bookings models.BookingRepo,
	rooms models.RoomRepo,
	policy Policy,
	mailer Mailer,
	calendar EventCreator,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		policy:   policy,
		mailer:   mailer,
		calendar: calendar,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the service's notion of "now". Test hook.
func (bs *BookingService) SetClock(now func() time.Time) {
	bs.now = now
}

// CreateBooking runs the full creation flow: validate, detect conflicts,
// persist, then fire the calendar and mail side effects. The read-check-write
// sequence is not atomic; two racing requests can both pass the conflict
// check. The store stays authoritative either way.
func (bs *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, string, error) {
	booking, err := bs.policy.ValidateCreate(req, bs.now())
	if err != nil {
		return nil, "", err
	}

	// Denormalize the room name for display when the client did not send it.
	if booking.RoomName == "" {
		if room, err := bs.rooms.GetRoomByID(ctx, booking.RoomID); err == nil {
			booking.RoomName = room.Name
		}
	}

	existing, err := bs.bookings.ListBookingsByDate(ctx, booking.Date, booking.RoomID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check availability: %v", err)
	}
	if c := FindConflict(booking.StartTime, booking.EndTime, existing, ""); c != nil {
		return nil, "", fmt.Errorf("%w: %s-%s is taken", models.ErrConflict, c.StartTime, c.EndTime)
	}

	created, err := bs.bookings.InsertBooking(ctx, booking)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create booking: %v", err)
	}

	link := ""
	if bs.calendar != nil {
		link, err = bs.calendar.CreateEvent(ctx, created)
		if err != nil {
			bs.logger.Error("calendar event creation failed", "booking_id", created.ID.Hex(), "error", err)
			link = ""
		}
	}

	bs.notify(ctx, "invite", created, Recipients(created.Attendees, created.UserEmail), bs.mailer.SendInvite)

	return created, link, nil
}

// EditBooking re-validates and re-checks conflicts against all other bookings
// for the resulting room and date, excluding the booking's own prior version.
func (bs *BookingService) EditBooking(ctx context.Context, id string, req *models.EditBookingRequest) (*models.Booking, error) {
	existing, err := bs.bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := bs.policy.ValidateEdit(existing, req, bs.now())
	if err != nil {
		return nil, err
	}

	others, err := bs.bookings.ListBookingsByDate(ctx, updated.Date, updated.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %v", err)
	}
	if c := FindConflict(updated.StartTime, updated.EndTime, others, id); c != nil {
		return nil, fmt.Errorf("%w: %s-%s is taken", models.ErrConflict, c.StartTime, c.EndTime)
	}

	if err := bs.bookings.UpdateBooking(ctx, id, updated); err != nil {
		return nil, err
	}

	// Update notices go to the new attendee list plus the original owner,
	// who may not be the requester when the administrator edits.
	bs.notify(ctx, "update", updated, Recipients(updated.Attendees, existing.UserEmail), bs.mailer.SendUpdate)

	return updated, nil
}

// CancelBooking hard-deletes the booking. Recipients are captured from the
// stored document before the delete.
func (bs *BookingService) CancelBooking(ctx context.Context, id, requesterEmail string) error {
	existing, err := bs.bookings.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bs.policy.ValidateCancel(existing, requesterEmail); err != nil {
		return err
	}

	recipients := Recipients(existing.Attendees, existing.UserEmail)

	if err := bs.bookings.DeleteBooking(ctx, id); err != nil {
		return err
	}

	bs.notify(ctx, "cancellation", existing, recipients, bs.mailer.SendCancellation)

	return nil
}

// SearchBookings lists a date's bookings, optionally filtered to one room,
// sorted by start time ascending.
func (bs *BookingService) SearchBookings(ctx context.Context, date, roomID string) ([]*models.Booking, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date", models.ErrMissingField)
	}
	return bs.bookings.ListBookingsByDate(ctx, date, roomID)
}

// MyBookings lists a user's bookings, most recent first.
func (bs *BookingService) MyBookings(ctx context.Context, userEmail string) ([]*models.Booking, error) {
	if userEmail == "" {
		return nil, fmt.Errorf("%w: userEmail", models.ErrMissingField)
	}
	return bs.bookings.ListBookingsByOwner(ctx, userEmail)
}

type sendFunc func(ctx context.Context, booking *models.Booking, recipients []string) error

func (bs *BookingService) notify(ctx context.Context, kind string, booking *models.Booking, recipients []string, send sendFunc) {
	if bs.mailer == nil || len(recipients) == 0 {
		return
	}
	if err := send(ctx, booking, recipients); err != nil {
		bs.logger.Error("notification failed",
			"kind", kind,
			"booking_id", booking.ID.Hex(),
			"recipients", len(recipients),
			"error", err,
		)
	}
}
