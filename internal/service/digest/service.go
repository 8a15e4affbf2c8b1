// Package digest sends each user the family agenda of the day at their
// chosen local time.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/service/calendar"
)

// userLister returns the users due for a digest at a local HH:MM.
type userLister interface {
	UsersWithDigestAt(ctx context.Context, hhmm string) ([]domain.User, error)
}

// agendaSource builds the agenda of a local day.
type agendaSource interface {
	Agenda(ctx context.Context, userID int64, date time.Time) (*calendar.Agenda, error)
}

// notifier delivers a short text message to a user.
type notifier interface {
	Notify(ctx context.Context, recipientID int64, text string) error
}

// Service builds and sends digests.
type Service struct {
	log      *slog.Logger
	users    userLister
	agendas  agendaSource
	notifier notifier
	loc      *time.Location
}

// NewService creates a new digest service.
func NewService(logger *slog.Logger, users userLister, agendas agendaSource, notifier notifier, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:      logger.With("service", "digest"),
		users:    users,
		agendas:  agendas,
		notifier: notifier,
		loc:      loc,
	}
}

// SendDue sends the digest to every user whose digest time equals the local
// minute of now. A failure for one user is logged and does not stop the
// others. Returns the number of digests delivered.
func (s *Service) SendDue(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.loc)
	hhmm := local.Format("15:04")

	users, err := s.users.UsersWithDigestAt(ctx, hhmm)
	if err != nil {
		return 0, fmt.Errorf("digest.SendDue: %w", err)
	}

	sent := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.send(ctx, u, local); err != nil {
			s.log.WarnContext(ctx, "digest not delivered",
				slog.Int64("external_id", u.ExternalID),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	if len(users) > 0 {
		s.log.InfoContext(ctx, "digests sent",
			slog.String("digest_time", hhmm),
			slog.Int("due", len(users)),
			slog.Int("sent", sent))
	}
	return sent, nil
}

func (s *Service) send(ctx context.Context, u domain.User, day time.Time) error {
	agenda, err := s.agendas.Agenda(ctx, u.ExternalID, day)
	if err != nil {
		return err
	}
	return s.notifier.Notify(ctx, u.ExternalID, Format(agenda, s.loc))
}

// Format renders an agenda as a plain-text message, one event per line:
//
//	Monday 2 Feb
//	10:00-11:00 Swim [kids, confirmed]
//	Keep in mind: nap 13:00-15:00
func Format(a *calendar.Agenda, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(a.From.In(loc).Format("Monday 2 Jan"))
	b.WriteByte('\n')

	if len(a.Events) == 0 {
		b.WriteString("Nothing planned.")
	}
	for i, e := range a.Events {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s-%s %s [%s, %s]",
			e.StartAt.In(loc).Format("15:04"),
			e.EndAt().In(loc).Format("15:04"),
			e.Title, e.Category, e.Status)
	}

	if len(a.Facts) > 0 {
		windows := make([]string, len(a.Facts))
		for i, f := range a.Facts {
			windows[i] = f.Label + " " + f.Window()
		}
		b.WriteString("\nKeep in mind: ")
		b.WriteString(strings.Join(windows, ", "))
	}
	return b.String()
}
