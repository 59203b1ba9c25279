package calendar

import (
	"context"
	"fmt"

	"github.com/gustavopprado/sistema-reservas/internal/models"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar blocks out bookings on an external Google calendar. It
// satisfies services.EventCreator and is best-effort: callers log failures
// and carry on, because the store is the source of truth.
type GoogleCalendar struct {
	service    *gcal.Service
	calendarID string
	timeZone   string
}

func NewGoogleCalendar(ctx context.Context, credentialsFile, calendarID, timeZone string) (*GoogleCalendar, error) {
	service, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Calendar: %v", err)
	}

	return &GoogleCalendar{
		service:    service,
		calendarID: calendarID,
		timeZone:   timeZone,
	}, nil
}

// CreateEvent inserts the booking as a calendar event and returns its link.
// Invitations go out by mail, not through the calendar, so sendUpdates stays
// off.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, booking *models.Booking) (string, error) {
	event := &gcal.Event{
		Summary:     fmt.Sprintf("Booking: %s", booking.RoomName),
		Description: fmt.Sprintf("Booked by: %s\nCreated via the room booking system.\nAttendees are notified by email.", booking.UserEmail),
		Location:    booking.RoomName,
		Start: &gcal.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", booking.Date, booking.StartTime),
			TimeZone: g.timeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", booking.Date, booking.EndTime),
			TimeZone: g.timeZone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %v", err)
	}

	return created.HtmlLink, nil
}

// Disabled is the no-op EventCreator used when no credentials are configured.
type Disabled struct{}

func (Disabled) CreateEvent(ctx context.Context, booking *models.Booking) (string, error) {
	return "", nil
}
