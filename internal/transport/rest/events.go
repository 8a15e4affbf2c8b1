package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/adapter/ics"
	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/service/calendar"
)

// calendarService defines the scheduling operations served over REST.
type calendarService interface {
	CheckAvailability(ctx context.Context, input calendar.FindConflictsInput) (*calendar.AvailabilityResult, error)
	ScheduleEvent(ctx context.Context, input calendar.ScheduleEventInput) (*calendar.ScheduleResult, error)
	UpdateEvent(ctx context.Context, input calendar.UpdateEventInput) (bool, error)
	DeleteEvent(ctx context.Context, input calendar.DeleteEventInput) (bool, error)
	GetEvent(ctx context.Context, eventID uuid.UUID, actorID int64) (*domain.Event, error)
	ListEvents(ctx context.Context, input calendar.ListEventsInput) ([]domain.Event, error)
	MarkNotified(ctx context.Context, eventID uuid.UUID, actorID int64) (bool, error)
	Agenda(ctx context.Context, userID int64, date time.Time) (*calendar.Agenda, error)
	AgendaForPeriod(ctx context.Context, userID int64, from, to time.Time) (*calendar.Agenda, error)
	RememberFact(ctx context.Context, input calendar.RememberFactInput) (*domain.FamilyFact, error)
	ListFacts(ctx context.Context, userID int64) ([]domain.FamilyFact, error)
}

// EventHandler serves events, agenda, facts and the iCalendar feed.
type EventHandler struct {
	svc calendarService
	log *slog.Logger
	loc *time.Location
	now func() time.Time
}

// NewEventHandler creates an EventHandler. loc resolves date-only query
// parameters.
func NewEventHandler(svc calendarService, logger *slog.Logger, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{svc: svc, log: logger.With("handler", "events"), loc: loc, now: time.Now}
}

type availabilityRequest struct {
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
	Scope           string    `json:"scope"`
	ExcludeEventID  string    `json:"exclude_event_id"`
}

type availabilityResponse struct {
	Available  bool            `json:"available"`
	Conflicts  []eventResponse `json:"conflicts"`
	Advisories []factResponse  `json:"advisories"`
}

// Availability handles POST /availability.
func (h *EventHandler) Availability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var exclude uuid.UUID
	if req.ExcludeEventID != "" {
		id, err := uuid.Parse(req.ExcludeEventID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid exclude_event_id")
			return
		}
		exclude = id
	}

	result, err := h.svc.CheckAvailability(r.Context(), calendar.FindConflictsInput{
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		Scope:           domain.ConflictScope(req.Scope),
		UserID:          actorID(r),
		ExcludeEventID:  exclude,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		Available:  result.Available,
		Conflicts:  toEventResponses(result.Conflicts),
		Advisories: toFactResponses(result.Advisories),
	})
}

type scheduleRequest struct {
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Participants    string    `json:"participants"`
	ConflictScope   string    `json:"conflict_scope"`
	NotifyPartner   bool      `json:"notify_partner"`
	AllowConflict   bool      `json:"allow_conflict"`
}

type scheduleResponse struct {
	Event           eventResponse   `json:"event"`
	Conflicts       []eventResponse `json:"conflicts"`
	Advisories      []factResponse  `json:"advisories"`
	PartnerNotified bool            `json:"partner_notified"`
}

// Create handles POST /events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ScheduleEvent(r.Context(), calendar.ScheduleEventInput{
		Title:           req.Title,
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		Category:        domain.EventCategory(req.Category),
		Status:          domain.EventStatus(req.Status),
		CreatorID:       actorID(r),
		Participants:    domain.ParticipantScope(req.Participants),
		ConflictScope:   domain.ConflictScope(req.ConflictScope),
		NotifyPartner:   req.NotifyPartner,
		AllowConflict:   req.AllowConflict,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, scheduleResponse{
		Event:           toEventResponse(result.Event),
		Conflicts:       toEventResponses(result.Conflicts),
		Advisories:      toFactResponses(result.Advisories),
		PartnerNotified: result.PartnerNotified,
	})
}

// List handles GET /events?from=&to= (RFC 3339). mine=true lists only the
// events the caller created and needs both bounds.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	mine, err := queryBool(r, "mine")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	events, err := h.svc.ListEvents(r.Context(), calendar.ListEventsInput{
		UserID:      actorID(r),
		From:        from,
		To:          to,
		CreatedOnly: mine,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}

// Get handles GET /events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	e, err := h.svc.GetEvent(r.Context(), id, actorID(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*e))
}

type updateRequest struct {
	Title           *string    `json:"title"`
	Start           *time.Time `json:"start"`
	DurationMinutes *int       `json:"duration_minutes"`
	Status          *string    `json:"status"`
	Category        *string    `json:"category"`
	PartnerNotified *bool      `json:"partner_notified"`
	AllowConflict   bool       `json:"allow_conflict"`
	NotifyPartner   bool       `json:"notify_partner"`
}

func (req updateRequest) params() (domain.EventUpdateParams, error) {
	p := domain.EventUpdateParams{
		Title:           req.Title,
		StartAt:         req.Start,
		DurationMinutes: req.DurationMinutes,
		PartnerNotified: req.PartnerNotified,
	}
	if req.Status != nil {
		s, err := domain.ParseEventStatus(*req.Status)
		if err != nil {
			return p, err
		}
		p.Status = &s
	}
	if req.Category != nil {
		c, err := domain.ParseEventCategory(*req.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	return p, nil
}

// Update handles PATCH /events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req updateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, err := req.params()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	actor := actorID(r)
	updated, err := h.svc.UpdateEvent(r.Context(), calendar.UpdateEventInput{
		EventID:       id,
		ActorID:       actor,
		Params:        params,
		AllowConflict: req.AllowConflict,
		NotifyPartner: req.NotifyPartner,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	e, err := h.svc.GetEvent(r.Context(), id, actor)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(*e))
}

// Delete handles DELETE /events/{id}?notify_partner=true.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	notify, err := queryBool(r, "notify_partner")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	deleted, err := h.svc.DeleteEvent(r.Context(), calendar.DeleteEventInput{
		EventID:       id,
		ActorID:       actorID(r),
		NotifyPartner: notify,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkNotified handles POST /events/{id}/notified.
func (h *EventHandler) MarkNotified(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	marked, err := h.svc.MarkNotified(r.Context(), id, actorID(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !marked {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type agendaResponse struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Events []eventResponse `json:"events"`
	Facts  []factResponse  `json:"facts"`
}

// Agenda handles GET /agenda?date=YYYY-MM-DD or ?from=&to= (dates, to
// exclusive). Without parameters it returns today.
func (h *EventHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	agenda, err := h.agenda(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, agendaResponse{
		From:   agenda.From,
		To:     agenda.To,
		Events: toEventResponses(agenda.Events),
		Facts:  toFactResponses(agenda.Facts),
	})
}

func (h *EventHandler) agenda(r *http.Request) (*calendar.Agenda, error) {
	from, err := queryDate(r, "from", h.loc)
	if err != nil {
		return nil, err
	}
	to, err := queryDate(r, "to", h.loc)
	if err != nil {
		return nil, err
	}
	if from != nil || to != nil {
		if from == nil || to == nil {
			return nil, domain.NewValidationError("from", "from and to go together")
		}
		return h.svc.AgendaForPeriod(r.Context(), actorID(r), *from, *to)
	}

	date, err := queryDate(r, "date", h.loc)
	if err != nil {
		return nil, err
	}
	day := h.now()
	if date != nil {
		day = *date
	}
	return h.svc.Agenda(r.Context(), actorID(r), day)
}

// CalendarICS handles GET /calendar.ics: the family events from today for
// the longest supported agenda period.
func (h *EventHandler) CalendarICS(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	local := now.In(h.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, h.loc)
	to := from.AddDate(0, 0, calendar.MaxAgendaDays)

	agenda, err := h.svc.AgendaForPeriod(r.Context(), actorID(r), from, to)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="family.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.Encode("Family calendar", agenda.Events, now)))
}

type factRequest struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// RememberFact handles POST /facts.
func (h *EventHandler) RememberFact(w http.ResponseWriter, r *http.Request) {
	var req factRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fact, err := h.svc.RememberFact(r.Context(), calendar.RememberFactInput{
		UserID: actorID(r),
		Label:  req.Label,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFactResponses([]domain.FamilyFact{*fact})[0])
}

// ListFacts handles GET /facts.
func (h *EventHandler) ListFacts(w http.ResponseWriter, r *http.Request) {
	facts, err := h.svc.ListFacts(r.Context(), actorID(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFactResponses(facts))
}
