package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// NoticeText renders the partner message, e.g. "Anna booked Monday 10:00: Swim".
func NoticeText(kind domain.NotificationKind, actor string, e domain.Event, loc *time.Location) string {
	start := e.StartAt.In(loc)
	return fmt.Sprintf("%s %s %s %s: %s", actor, kind.Verb(), start.Weekday(), start.Format("15:04"), e.Title)
}

// notifyPartner sends a notice to the actor's partner and reports whether it
// was delivered. Unpaired actors and delivery failures yield false.
func (s *Service) notifyPartner(ctx context.Context, kind domain.NotificationKind, actor *domain.User, e domain.Event) bool {
	if s.notifier == nil || actor == nil || !actor.HasPartner() {
		return false
	}

	text := NoticeText(kind, actor.Name, e, s.loc)
	if err := s.notifier.Notify(ctx, actor.PartnerID(), text); err != nil {
		s.log.WarnContext(ctx, "partner notification failed",
			slog.String("event_id", e.ID.String()),
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()))
		return false
	}

	s.log.InfoContext(ctx, "partner notified",
		slog.String("event_id", e.ID.String()),
		slog.String("kind", kind.String()),
		slog.Int64("recipient_id", actor.PartnerID()))
	return true
}
