package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gustavopprado/sistema-reservas/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	adminEmail   = "admin@x.com"
	ownerEmail   = "u@x.com"
	restrictedID = "room-restricted"
)

func testPolicy() Policy {
	return NewPolicy(adminEmail, []string{restrictedID})
}

func interval(start, end string) *models.Booking {
	return &models.Booking{
		ID:        primitive.NewObjectID(),
		RoomID:    "room-1",
		Date:      "2024-06-10",
		StartTime: start,
		EndTime:   end,
		UserEmail: ownerEmail,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func validCreateRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		RoomID:    "room-1",
		RoomName:  "Training Room",
		Date:      futureDate(),
		StartTime: "09:00",
		EndTime:   "10:00",
		UserEmail: ownerEmail,
	}
}

func TestFindConflictOverlapSymmetry(t *testing.T) {
	pairs := []struct {
		aStart, aEnd string
		bStart, bEnd string
	}{
		{"09:00", "10:00", "09:30", "10:30"},
		{"09:00", "10:00", "10:00", "11:00"},
		{"08:00", "12:00", "09:00", "10:00"},
		{"09:00", "09:30", "14:00", "15:00"},
		{"09:00", "10:00", "09:00", "10:00"},
	}

	for _, p := range pairs {
		ab := FindConflict(p.aStart, p.aEnd, []*models.Booking{interval(p.bStart, p.bEnd)}, "") != nil
		ba := FindConflict(p.bStart, p.bEnd, []*models.Booking{interval(p.aStart, p.aEnd)}, "") != nil
		if ab != ba {
			t.Errorf("overlap not symmetric for [%s,%s) vs [%s,%s): %v vs %v",
				p.aStart, p.aEnd, p.bStart, p.bEnd, ab, ba)
		}
	}
}

func TestFindConflictHalfOpenBoundary(t *testing.T) {
	existing := []*models.Booking{interval("09:00", "10:00")}

	if c := FindConflict("10:00", "11:00", existing, ""); c != nil {
		t.Errorf("touching intervals must not conflict, got conflict with [%s,%s)", c.StartTime, c.EndTime)
	}
	if c := FindConflict("08:00", "09:00", existing, ""); c != nil {
		t.Errorf("touching intervals must not conflict, got conflict with [%s,%s)", c.StartTime, c.EndTime)
	}
	if c := FindConflict("09:30", "10:30", existing, ""); c == nil {
		t.Error("overlapping intervals must conflict")
	}
	if c := FindConflict("08:30", "09:30", existing, ""); c == nil {
		t.Error("overlapping intervals must conflict")
	}
	if c := FindConflict("09:15", "09:45", existing, ""); c == nil {
		t.Error("contained interval must conflict")
	}
}

func TestFindConflictSelfExclusion(t *testing.T) {
	b := interval("09:00", "10:00")
	existing := []*models.Booking{b}

	if c := FindConflict("09:00", "10:30", existing, b.ID.Hex()); c != nil {
		t.Error("a booking must never conflict with its own prior version")
	}
	if c := FindConflict("09:00", "10:30", existing, primitive.NewObjectID().Hex()); c == nil {
		t.Error("excluding a different id must not suppress the conflict")
	}
}

func TestValidateCreateGraceWindow(t *testing.T) {
	p := testPolicy()
	now := time.Date(2024, 6, 10, 12, 0, 59, 0, time.Local)

	cases := []struct {
		name   string
		start  string
		accept bool
	}{
		{"five minutes ago", "11:56", true},
		{"9m59s ago", "11:51", true},
		{"exactly at grace line", "11:50", false},
		{"fifteen minutes ago", "11:46", false},
		{"in the future", "14:00", true},
	}

	for _, tc := range cases {
		req := validCreateRequest()
		req.Date = "2024-06-10"
		req.StartTime = tc.start
		req.EndTime = "15:00"

		_, err := p.ValidateCreate(req, now)
		if tc.accept && err != nil {
			t.Errorf("%s: expected acceptance, got %v", tc.name, err)
		}
		if !tc.accept && !errors.Is(err, models.ErrPastBooking) {
			t.Errorf("%s: expected ErrPastBooking, got %v", tc.name, err)
		}
	}
}

func TestValidateCreateGraceWindowJustPast(t *testing.T) {
	p := testPolicy()
	// Start is 10m01s before now, one second past the grace line.
	now := time.Date(2024, 6, 10, 12, 1, 1, 0, time.Local)
	req := validCreateRequest()
	req.Date = "2024-06-10"
	req.StartTime = "11:51"
	req.EndTime = "13:00"

	if _, err := p.ValidateCreate(req, now); !errors.Is(err, models.ErrPastBooking) {
		t.Errorf("expected ErrPastBooking, got %v", err)
	}
}

func TestValidateCreateMissingFields(t *testing.T) {
	p := testPolicy()
	now := time.Now()

	mutations := []func(*models.CreateBookingRequest){
		func(r *models.CreateBookingRequest) { r.RoomID = "" },
		func(r *models.CreateBookingRequest) { r.Date = "" },
		func(r *models.CreateBookingRequest) { r.StartTime = "" },
		func(r *models.CreateBookingRequest) { r.EndTime = "" },
		func(r *models.CreateBookingRequest) { r.UserEmail = "" },
	}

	for i, mutate := range mutations {
		req := validCreateRequest()
		mutate(req)
		if _, err := p.ValidateCreate(req, now); !errors.Is(err, models.ErrMissingField) {
			t.Errorf("mutation %d: expected ErrMissingField, got %v", i, err)
		}
	}

	if _, err := p.ValidateCreate(validCreateRequest(), now); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateCreateInvalidInterval(t *testing.T) {
	p := testPolicy()
	now := time.Now()

	for _, tc := range [][2]string{{"10:00", "10:00"}, {"11:00", "10:00"}} {
		req := validCreateRequest()
		req.StartTime = tc[0]
		req.EndTime = tc[1]
		if _, err := p.ValidateCreate(req, now); !errors.Is(err, models.ErrInvalidInterval) {
			t.Errorf("[%s,%s): expected ErrInvalidInterval, got %v", tc[0], tc[1], err)
		}
	}
}

func TestValidateCreateMalformedTimes(t *testing.T) {
	p := testPolicy()
	req := validCreateRequest()
	req.StartTime = "9am"

	if _, err := p.ValidateCreate(req, time.Now()); !errors.Is(err, models.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval for malformed time, got %v", err)
	}
}

// Unpadded values parse but break the string-compared conflict detector: a
// stored "9:00" is lexicographically greater than "10:30", so an overlap with
// it would go undetected. Only the canonical zero-padded forms may pass
// validation.
func TestValidateCreateRejectsUnpaddedValues(t *testing.T) {
	p := testPolicy()
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*models.CreateBookingRequest)
	}{
		{"unpadded start hour", func(r *models.CreateBookingRequest) { r.StartTime = "9:00" }},
		{"unpadded end hour", func(r *models.CreateBookingRequest) { r.EndTime = "9:45"; r.StartTime = "08:00" }},
		{"unpadded month", func(r *models.CreateBookingRequest) { r.Date = "2030-6-10" }},
		{"unpadded day", func(r *models.CreateBookingRequest) { r.Date = "2030-06-1" }},
		{"seconds in time", func(r *models.CreateBookingRequest) { r.StartTime = "09:00:00" }},
	}

	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(req)
		if _, err := p.ValidateCreate(req, now); !errors.Is(err, models.ErrInvalidInterval) {
			t.Errorf("%s: expected ErrInvalidInterval, got %v", tc.name, err)
		}
	}
}

func TestUnpaddedBookingCannotSlipPastConflictDetection(t *testing.T) {
	p := testPolicy()

	// Were "9:00" storable, this overlap would be missed: "10:30" > "9:00" is
	// false as strings. Validation must refuse to store it in the first place.
	req := validCreateRequest()
	req.StartTime = "9:00"
	req.EndTime = "9:45"
	if _, err := p.ValidateCreate(req, time.Now()); !errors.Is(err, models.ErrInvalidInterval) {
		t.Fatalf("unpadded interval must be rejected before it reaches the store, got %v", err)
	}

	if c := FindConflict("09:30", "10:30", []*models.Booking{interval("09:00", "09:45")}, ""); c == nil {
		t.Error("canonical form of the same interval must conflict")
	}
}

func TestValidateCreateRestrictedRoom(t *testing.T) {
	p := testPolicy()
	now := time.Now()

	req := validCreateRequest()
	req.RoomID = restrictedID
	// Interval is deliberately broken too: the restricted gate fires first,
	// regardless of other field validity.
	req.StartTime = "11:00"
	req.EndTime = "10:00"
	if _, err := p.ValidateCreate(req, now); !errors.Is(err, models.ErrRestrictedRoom) {
		t.Errorf("non-admin in restricted room: expected ErrRestrictedRoom, got %v", err)
	}

	req = validCreateRequest()
	req.RoomID = restrictedID
	req.UserEmail = adminEmail
	if _, err := p.ValidateCreate(req, now); err != nil {
		t.Errorf("admin in restricted room: expected acceptance, got %v", err)
	}
}

func TestValidateCreateNormalization(t *testing.T) {
	p := testPolicy()

	req := validCreateRequest()
	req.Title = "   "
	req.Attendees = "a@x.com, b@x.com"

	booking, err := p.ValidateCreate(req, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Title != DefaultBookingTitle {
		t.Errorf("blank title should default to %q, got %q", DefaultBookingTitle, booking.Title)
	}
	if booking.Attendees != req.Attendees {
		t.Errorf("attendees raw string should be stored as-is, got %q", booking.Attendees)
	}
	if booking.UserEmail != ownerEmail {
		t.Errorf("owner email mismatch: %q", booking.UserEmail)
	}
}

func validEditRequest(requester string) *models.EditBookingRequest {
	return &models.EditBookingRequest{
		Date:      futureDate(),
		StartTime: "09:00",
		EndTime:   "10:30",
		UserEmail: requester,
	}
}

func TestValidateEditOwnership(t *testing.T) {
	p := testPolicy()
	existing := interval("09:00", "10:00")
	now := time.Now()

	if _, err := p.ValidateEdit(existing, validEditRequest("intruder@x.com"), now); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("non-owner edit: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := p.ValidateEdit(existing, validEditRequest(ownerEmail), now); err != nil {
		t.Errorf("owner edit rejected: %v", err)
	}
	if _, err := p.ValidateEdit(existing, validEditRequest(adminEmail), now); err != nil {
		t.Errorf("admin edit rejected: %v", err)
	}
}

func TestValidateEditRestrictedRoomMove(t *testing.T) {
	p := testPolicy()
	existing := interval("09:00", "10:00")
	now := time.Now()

	// Owner tries to move a normal booking into the restricted room.
	req := validEditRequest(ownerEmail)
	req.RoomID = restrictedID
	if _, err := p.ValidateEdit(existing, req, now); !errors.Is(err, models.ErrRestrictedRoom) {
		t.Errorf("expected ErrRestrictedRoom, got %v", err)
	}

	req = validEditRequest(adminEmail)
	req.RoomID = restrictedID
	if _, err := p.ValidateEdit(existing, req, now); err != nil {
		t.Errorf("admin move into restricted room rejected: %v", err)
	}

	// Room omitted in the request: the existing room is re-checked.
	inRestricted := interval("09:00", "10:00")
	inRestricted.RoomID = restrictedID
	if _, err := p.ValidateEdit(inRestricted, validEditRequest(ownerEmail), now); !errors.Is(err, models.ErrRestrictedRoom) {
		t.Errorf("expected ErrRestrictedRoom for unchanged restricted room, got %v", err)
	}
}

func TestValidateEditTitleFallback(t *testing.T) {
	p := testPolicy()
	existing := interval("09:00", "10:00")
	existing.Title = "Weekly Sync"

	updated, err := p.ValidateEdit(existing, validEditRequest(ownerEmail), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Weekly Sync" {
		t.Errorf("blank request title should keep the existing one, got %q", updated.Title)
	}

	req := validEditRequest(ownerEmail)
	req.Title = "Renamed"
	updated, err = p.ValidateEdit(existing, req, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("request title should win, got %q", updated.Title)
	}

	existing.Title = ""
	updated, err = p.ValidateEdit(existing, validEditRequest(ownerEmail), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != DefaultBookingTitle {
		t.Errorf("no titles anywhere should fall back to %q, got %q", DefaultBookingTitle, updated.Title)
	}
}

func TestValidateEditImmutableFields(t *testing.T) {
	p := testPolicy()
	existing := interval("09:00", "10:00")
	created := existing.CreatedAt

	updated, err := p.ValidateEdit(existing, validEditRequest(adminEmail), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.UserEmail != ownerEmail {
		t.Errorf("edit must not change ownership, got %q", updated.UserEmail)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Error("edit must not change the creation timestamp")
	}
}

func TestValidateCancel(t *testing.T) {
	p := testPolicy()
	existing := interval("09:00", "10:00")

	if err := p.ValidateCancel(existing, "intruder@x.com"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("foreign cancel: expected ErrPermissionDenied, got %v", err)
	}
	if err := p.ValidateCancel(existing, ownerEmail); err != nil {
		t.Errorf("owner cancel rejected: %v", err)
	}
	if err := p.ValidateCancel(existing, adminEmail); err != nil {
		t.Errorf("admin cancel rejected: %v", err)
	}
	if err := p.ValidateCancel(existing, ""); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("empty requester: expected ErrPermissionDenied, got %v", err)
	}
}

func TestRecipientsDeduplication(t *testing.T) {
	got := Recipients("a@x.com, b@x.com, a@x.com", "b@x.com")
	want := []string{"a@x.com", "b@x.com"}

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRecipientsOwnerAppended(t *testing.T) {
	got := Recipients("a@x.com", ownerEmail)
	if len(got) != 2 || got[0] != "a@x.com" || got[1] != ownerEmail {
		t.Errorf("expected attendees then owner, got %v", got)
	}

	if got := Recipients("", ownerEmail); len(got) != 1 || got[0] != ownerEmail {
		t.Errorf("expected owner only, got %v", got)
	}

	if got := Recipients("  ,  ", ""); len(got) != 0 {
		t.Errorf("expected no recipients, got %v", got)
	}
}

func TestSplitAttendees(t *testing.T) {
	got := SplitAttendees(" a@x.com ,  , b@x.com,")
	want := []string{"a@x.com", "b@x.com"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := SplitAttendees("   "); got != nil {
		t.Errorf("blank input should yield nil, got %v", got)
	}
}

func TestPolicyAdminAndRestrictedChecks(t *testing.T) {
	p := testPolicy()

	if !p.IsAdmin(adminEmail) {
		t.Error("administrator not recognized")
	}
	if p.IsAdmin(ownerEmail) {
		t.Error("regular user recognized as administrator")
	}

	empty := NewPolicy("", nil)
	if empty.IsAdmin("") {
		t.Error("empty email must never be the administrator")
	}

	if !p.IsRestricted(restrictedID) {
		t.Error("restricted room not recognized")
	}
	if p.IsRestricted("room-1") {
		t.Error("normal room flagged restricted")
	}
}
