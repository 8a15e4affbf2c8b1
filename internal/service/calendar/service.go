// Package calendar implements the scheduling core: conflict detection,
// transactional event booking and the family agenda.
package calendar

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// eventRepo defines the event store interface needed by the calendar service.
type eventRepo interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, p domain.EventUpdateParams) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkNotified(ctx context.Context, id uuid.UUID) error
	ListOverlapping(ctx context.Context, q domain.EventOverlapQuery) ([]domain.Event, error)
	ListByCreatorInRange(ctx context.Context, creator int64, from, to time.Time) ([]domain.Event, error)
	ListByParticipant(ctx context.Context, user int64, from, to *time.Time) ([]domain.Event, error)
	AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []int64) error
}

// userRepo defines the user lookup needed to resolve families.
type userRepo interface {
	GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error)
}

// factRepo defines the advisory fact store.
type factRepo interface {
	Upsert(ctx context.Context, f *domain.FamilyFact) (*domain.FamilyFact, error)
	ListByFamily(ctx context.Context, family domain.FamilyID) ([]domain.FamilyFact, error)
}

// txManager runs a function in one transaction and serializes a family.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockFamily(ctx context.Context, familyID domain.FamilyID) error
}

// notifier delivers a short text message to a user.
type notifier interface {
	Notify(ctx context.Context, recipientID int64, text string) error
}

// Service implements scheduling operations.
type Service struct {
	log      *slog.Logger
	events   eventRepo
	users    userRepo
	facts    factRepo
	tx       txManager
	notifier notifier
	loc      *time.Location
}

// NewService creates a new calendar service. loc is the zone used for local
// days and notification texts.
func NewService(
	logger *slog.Logger,
	events eventRepo,
	users userRepo,
	facts factRepo,
	tx txManager,
	notifier notifier,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:      logger.With("service", "calendar"),
		events:   events,
		users:    users,
		facts:    facts,
		tx:       tx,
		notifier: notifier,
		loc:      loc,
	}
}

// scope is the set of users whose events count for a conflict check.
type scope struct {
	userIDs             []int64
	includeParticipants bool
	family              domain.FamilyID
	user                *domain.User
}

// resolveScope expands the acting user into the users of the given scope.
// An unregistered user is treated as unpaired.
func (s *Service) resolveScope(ctx context.Context, userID int64, cs domain.ConflictScope) (scope, error) {
	sc := scope{
		userIDs: []int64{userID},
		family:  domain.ResolveFamilyID(userID, 0),
	}

	u, err := s.lookupUser(ctx, userID)
	if err != nil {
		return scope{}, err
	}
	if u != nil {
		sc.user = u
		sc.family = u.FamilyID()
	}

	if cs == domain.ConflictScopeFamily {
		sc.includeParticipants = true
		if u != nil && u.HasPartner() {
			sc.userIDs = append(sc.userIDs, u.PartnerID())
		}
	}
	return sc, nil
}

// lookupUser returns nil without error for unknown users.
func (s *Service) lookupUser(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByExternalID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
