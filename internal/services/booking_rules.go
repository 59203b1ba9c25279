package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gustavopprado/sistema-reservas/internal/models"
)

const (
	// PastGraceWindow is subtracted from "now" before the past-booking check,
	// tolerating clock and network skew between client and server.
	PastGraceWindow = 10 * time.Minute

	DefaultBookingTitle = "Reserved Meeting"
)

// Policy holds the authorization rules: who the administrator is and which
// rooms only the administrator may book. All methods are pure; the current
// time is always supplied by the caller.
type Policy struct {
	AdminEmail      string
	restrictedRooms map[string]bool
}

func NewPolicy(adminEmail string, restrictedRoomIDs []string) Policy {
	restricted := make(map[string]bool, len(restrictedRoomIDs))
	for _, id := range restrictedRoomIDs {
		restricted[id] = true
	}
	return Policy{
		AdminEmail:      adminEmail,
		restrictedRooms: restricted,
	}
}

func (p Policy) IsAdmin(email string) bool {
	return email != "" && email == p.AdminEmail
}

func (p Policy) IsRestricted(roomID string) bool {
	return p.restrictedRooms[roomID]
}

// ValidateCreate checks a new booking request and returns the normalized
// booking ready for insertion. Conflict detection happens separately, after
// the store has been queried.
func (p Policy) ValidateCreate(req *models.CreateBookingRequest, now time.Time) (*models.Booking, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, missingFieldError(err)
	}

	if p.IsRestricted(req.RoomID) && !p.IsAdmin(req.UserEmail) {
		return nil, models.ErrRestrictedRoom
	}

	if err := checkInterval(req.Date, req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultBookingTitle
	}

	return &models.Booking{
		RoomID:    req.RoomID,
		RoomName:  req.RoomName,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		UserEmail: req.UserEmail,
		Title:     title,
		Attendees: req.Attendees,
		CreatedAt: now,
	}, nil
}

// ValidateEdit checks an edit against the stored booking and returns the
// updated copy. The restricted-room rule is re-checked against the resulting
// room so an owner cannot move a normal booking into a restricted room.
func (p Policy) ValidateEdit(existing *models.Booking, req *models.EditBookingRequest, now time.Time) (*models.Booking, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, missingFieldError(err)
	}

	if existing.UserEmail != req.UserEmail && !p.IsAdmin(req.UserEmail) {
		return nil, fmt.Errorf("%w: only the owner or the administrator may edit this booking", models.ErrPermissionDenied)
	}

	targetRoomID := req.RoomID
	if targetRoomID == "" {
		targetRoomID = existing.RoomID
	}
	if p.IsRestricted(targetRoomID) && !p.IsAdmin(req.UserEmail) {
		return nil, models.ErrRestrictedRoom
	}

	if err := checkInterval(req.Date, req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = existing.Title
	}
	if title == "" {
		title = DefaultBookingTitle
	}

	updated := *existing
	updated.RoomID = targetRoomID
	updated.Date = req.Date
	updated.StartTime = req.StartTime
	updated.EndTime = req.EndTime
	updated.Title = title
	updated.Attendees = req.Attendees
	return &updated, nil
}

// ValidateCancel permits a cancellation only by the booking's owner or the
// administrator. An anonymous requester is neither, so the empty email falls
// under the same permission error.
func (p Policy) ValidateCancel(existing *models.Booking, requesterEmail string) error {
	if existing.UserEmail != requesterEmail && !p.IsAdmin(requesterEmail) {
		return fmt.Errorf("%w: only the owner or the administrator may cancel this booking", models.ErrPermissionDenied)
	}
	return nil
}

func checkInterval(date, startTime, endTime string, now time.Time) error {
	// time.ParseInLocation accepts unpadded values like "9:00" or "2024-6-1".
	// Those must never reach the store: the conflict detector and the room/date
	// bucket queries compare strings, so only canonical zero-padded forms are
	// admitted. The round-trip format check enforces the exact shape.
	start, err := models.ParseDateTime(date, startTime)
	if err != nil || start.Format("2006-01-02") != date || start.Format("15:04") != startTime {
		return fmt.Errorf("%w: invalid date or start time", models.ErrInvalidInterval)
	}
	end, err := models.ParseDateTime(date, endTime)
	if err != nil || end.Format("15:04") != endTime {
		return fmt.Errorf("%w: invalid end time", models.ErrInvalidInterval)
	}

	if !start.Before(end) {
		return models.ErrInvalidInterval
	}
	if start.Before(now.Add(-PastGraceWindow)) {
		return models.ErrPastBooking
	}
	return nil
}

// FindConflict returns the first booking whose interval overlaps the
// candidate [start, end) interval, or nil. Intervals are half-open: a booking
// ending exactly when another starts does not conflict. Callers must pass
// bookings already filtered to the same room and date; excludeID skips the
// booking being edited so it never conflicts with its own prior version.
// Zero-padded HH:MM strings order lexicographically, so plain string
// comparison is a time comparison.
func FindConflict(start, end string, existing []*models.Booking, excludeID string) *models.Booking {
	for _, b := range existing {
		if excludeID != "" && b.ID.Hex() == excludeID {
			continue
		}
		if start < b.EndTime && end > b.StartTime {
			return b
		}
	}
	return nil
}

// SplitAttendees turns the raw comma-separated attendee string into a list,
// trimming entries and discarding empties.
func SplitAttendees(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Recipients computes the deduplicated notification list: attendees plus the
// owner. First-seen order is preserved so the result is stable.
func Recipients(attendeesRaw, ownerEmail string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, email := range SplitAttendees(attendeesRaw) {
		if !seen[email] {
			seen[email] = true
			out = append(out, email)
		}
	}
	if ownerEmail != "" && !seen[ownerEmail] {
		out = append(out, ownerEmail)
	}
	return out
}

func missingFieldError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", models.ErrMissingField, lowerFirst(verrs[0].Field()))
	}
	return models.ErrMissingField
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
