package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/service/activity"
)

// activityService defines the activity cache operations served over REST.
type activityService interface {
	SaveActivity(ctx context.Context, input activity.SaveActivityInput, familyID string) (uuid.UUID, error)
	IngestURL(ctx context.Context, rawURL, familyID string) (*domain.Activity, error)
	ListActivities(ctx context.Context, familyID string, date *time.Time) ([]domain.Activity, error)
	DeleteActivity(ctx context.Context, id uuid.UUID, familyID string) (bool, error)
}

// familyResolver maps the acting user onto a family partition.
type familyResolver interface {
	FamilyOf(ctx context.Context, externalID int64) (*domain.User, domain.FamilyID, error)
}

// ActivityHandler serves the family activity cache.
type ActivityHandler struct {
	svc      activityService
	families familyResolver
	log      *slog.Logger
	loc      *time.Location
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, families familyResolver, logger *slog.Logger, loc *time.Location) *ActivityHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ActivityHandler{svc: svc, families: families, log: logger.With("handler", "activities"), loc: loc}
}

func (h *ActivityHandler) family(w http.ResponseWriter, r *http.Request) (string, bool) {
	_, family, err := h.families.FamilyOf(r.Context(), actorID(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return "", false
	}
	return family.String(), true
}

type saveActivityRequest struct {
	Title       string     `json:"title"`
	StartAt     *time.Time `json:"start_at"`
	Price       *int       `json:"price"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	PhotoRef    *string    `json:"photo_ref"`
	SourceURL   string     `json:"source_url"`
	SourceKind  string     `json:"source_kind"`
}

// Save handles POST /activities. Saving an already cached source refreshes
// it under the same id.
func (h *ActivityHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	family, ok := h.family(w, r)
	if !ok {
		return
	}

	id, err := h.svc.SaveActivity(r.Context(), activity.SaveActivityInput{
		Title:       req.Title,
		StartAt:     req.StartAt,
		Price:       req.Price,
		Location:    req.Location,
		Description: req.Description,
		PhotoRef:    req.PhotoRef,
		SourceURL:   req.SourceURL,
		SourceKind:  domain.SourceKind(req.SourceKind),
	}, family)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

type ingestRequest struct {
	URL string `json:"url"`
}

type ingestResponse struct {
	Extracted bool              `json:"extracted"`
	Activity  *activityResponse `json:"activity,omitempty"`
}

// Ingest handles POST /activities/ingest. A page that could not be fetched
// in time is not an error: the response says nothing was extracted.
func (h *ActivityHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	family, ok := h.family(w, r)
	if !ok {
		return
	}

	a, err := h.svc.IngestURL(r.Context(), req.URL, family)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if a == nil {
		writeJSON(w, http.StatusOK, ingestResponse{Extracted: false})
		return
	}

	resp := toActivityResponse(*a)
	writeJSON(w, http.StatusOK, ingestResponse{Extracted: true, Activity: &resp})
}

// List handles GET /activities?date=&interests=&ages=&location=&max_price=.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.loc)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	prefs, err := parsePreferences(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	family, ok := h.family(w, r)
	if !ok {
		return
	}

	list, err := h.svc.ListActivities(r.Context(), family, date)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	list = activity.FilterActivities(list, prefs)

	out := make([]activityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toActivityResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /activities/{id}.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	family, ok := h.family(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteActivity(r.Context(), id, family)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parsePreferences reads the optional filter dimensions. It returns nil
// when none is present.
func parsePreferences(r *http.Request) (*domain.Preferences, error) {
	q := r.URL.Query()
	var prefs domain.Preferences
	var errs []domain.FieldError

	prefs.Interests = splitCSV(q.Get("interests"))
	for _, raw := range splitCSV(q.Get("ages")) {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 {
			errs = append(errs, domain.FieldError{Field: "ages", Message: "must be non-negative integers"})
			break
		}
		prefs.ChildAges = append(prefs.ChildAges, age)
	}
	prefs.Location = strings.TrimSpace(q.Get("location"))
	if raw := q.Get("max_price"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 {
			errs = append(errs, domain.FieldError{Field: "max_price", Message: "must be a non-negative integer"})
		} else {
			prefs.MaxPrice = &p
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	if len(prefs.Interests) == 0 && len(prefs.ChildAges) == 0 && prefs.Location == "" && prefs.MaxPrice == nil {
		return nil, nil
	}
	return &prefs, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
