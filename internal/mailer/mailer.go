package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/gustavopprado/sistema-reservas/internal/config"
	"github.com/gustavopprado/sistema-reservas/internal/models"
)

// SMTPMailer delivers booking notifications over SMTP with iCalendar
// attachments. It satisfies services.Mailer. When SMTP is unconfigured it
// logs the notification instead of sending, so local setups work without a
// mail account.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	fromName string
	logger   *slog.Logger
}

func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		fromName: cfg.SMTPFromName,
		logger:   logger,
	}
}

func (m *SMTPMailer) SendInvite(ctx context.Context, booking *models.Booking, recipients []string) error {
	subject := fmt.Sprintf("Invitation: %s - %s at %s", booking.Title, displayDate(booking.Date), booking.StartTime)
	body := fmt.Sprintf(
		"You have been invited: %s\nRoom: %s\nDate: %s\nTime: %s - %s\nOrganizer: %s\n\nOpen the attachment to add this meeting to your calendar.\n",
		booking.Title, booking.RoomName, displayDate(booking.Date), booking.StartTime, booking.EndTime, booking.UserEmail,
	)

	invite, err := BuildInvite(booking, inviteSequence, booking.Title)
	if err != nil {
		return err
	}
	return m.send(recipients, subject, body, "invite.ics", "REQUEST", invite)
}

func (m *SMTPMailer) SendUpdate(ctx context.Context, booking *models.Booking, recipients []string) error {
	subject := fmt.Sprintf("Updated: %s - %s", booking.Title, displayDate(booking.Date))
	body := fmt.Sprintf(
		"The meeting %q was changed.\nRoom: %s\nNew date: %s\nNew time: %s - %s\nOrganizer: %s\n",
		booking.Title, booking.RoomName, displayDate(booking.Date), booking.StartTime, booking.EndTime, booking.UserEmail,
	)

	invite, err := BuildInvite(booking, updateSequence, "UPDATED: "+booking.Title)
	if err != nil {
		return err
	}
	return m.send(recipients, subject, body, "invite.ics", "REQUEST", invite)
}

func (m *SMTPMailer) SendCancellation(ctx context.Context, booking *models.Booking, recipients []string) error {
	subject := fmt.Sprintf("Cancelled: %s - %s", booking.RoomName, displayDate(booking.Date))
	body := fmt.Sprintf("The meeting in %s on %s was cancelled by the organizer.\n", booking.RoomName, displayDate(booking.Date))

	cancellation, err := BuildCancellation(booking)
	if err != nil {
		return err
	}
	return m.send(recipients, subject, body, "cancellation.ics", "CANCEL", cancellation)
}

// iCalendar SEQUENCE numbers: mail clients treat a higher sequence as an
// update to an earlier event with the same UID.
const (
	inviteSequence = 0
	updateSequence = 2
	cancelSequence = 1
)

// BuildInvite produces a METHOD:REQUEST iCalendar payload for an invite or an
// update of an existing event.
func BuildInvite(booking *models.Booking, sequence int, summary string) (string, error) {
	cal, event, err := newEvent(booking, summary)
	if err != nil {
		return "", err
	}
	cal.SetMethod(ics.MethodRequest)
	event.SetSequence(sequence)
	event.SetDescription(fmt.Sprintf("Room booking confirmed.\nOrganizer: %s", booking.UserEmail))
	return cal.Serialize(), nil
}

// BuildCancellation produces a METHOD:CANCEL payload, which removes the event
// from recipients' calendars.
func BuildCancellation(booking *models.Booking) (string, error) {
	cal, event, err := newEvent(booking, "CANCELLED: "+booking.RoomName)
	if err != nil {
		return "", err
	}
	cal.SetMethod(ics.MethodCancel)
	event.SetSequence(cancelSequence)
	event.SetStatus(ics.ObjectStatusCancelled)
	event.SetDescription("This meeting was cancelled by the organizer.")
	return cal.Serialize(), nil
}

func newEvent(booking *models.Booking, summary string) (*ics.Calendar, *ics.VEvent, error) {
	start, err := models.ParseDateTime(booking.Date, booking.StartTime)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid booking start: %v", err)
	}
	end, err := models.ParseDateTime(booking.Date, booking.EndTime)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid booking end: %v", err)
	}

	cal := ics.NewCalendar()
	event := cal.AddEvent(booking.ID.Hex() + "@sistema-reservas")
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(summary)
	event.SetLocation(booking.RoomName)
	event.SetOrganizer("mailto:"+booking.UserEmail, ics.WithCN("Room Booking System"))
	return cal, event, nil
}

func (m *SMTPMailer) send(recipients []string, subject, body, icsName, icsMethod, icsContent string) error {
	if len(recipients) == 0 {
		return nil
	}

	if m.host == "" || m.username == "" {
		m.logger.Info("SMTP not configured, logging notification instead",
			"to", strings.Join(recipients, ", "),
			"subject", subject,
		)
		return nil
	}

	boundary := "----=_BOOKING_MAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.username))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString(fmt.Sprintf("Content-Type: text/calendar; method=%s; charset=utf-8; name=\"%s\"\r\n", icsMethod, icsName))
	sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", icsName))
	sb.WriteString(icsContent + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.username, recipients, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to send mail: %v", err)
	}
	return nil
}

// displayDate turns "2024-06-10" into "10/06/2024" for subjects and bodies.
func displayDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
