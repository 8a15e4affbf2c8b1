package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// userService defines the profile operations served over REST.
type userService interface {
	GetUser(ctx context.Context, externalID int64) (*domain.User, error)
	FamilyOf(ctx context.Context, externalID int64) (*domain.User, domain.FamilyID, error)
	UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error)
	UnlinkPartner(ctx context.Context, externalID int64) error
}

// UserHandler serves the acting user's profile.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

// Me handles GET /me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), actorID(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not registered")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

type updateMeRequest struct {
	DigestTime string `json:"digest_time"`
}

// UpdateMe handles PATCH /me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.UpdateDigestTime(r.Context(), actorID(r), req.DigestTime)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

type familyResponse struct {
	FamilyID  string `json:"family_id"`
	UserID    int64  `json:"user_id"`
	PartnerID *int64 `json:"partner_id,omitempty"`
}

// FamilyID handles GET /family-id. An unregistered user is a family of one.
func (h *UserHandler) FamilyID(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	u, family, err := h.svc.FamilyOf(r.Context(), actor)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := familyResponse{FamilyID: family.String(), UserID: actor}
	if u != nil && u.HasPartner() {
		p := u.PartnerID()
		resp.PartnerID = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

// UnlinkPartner handles DELETE /me/partner. Both sides of the link are
// cleared; an unpaired user gets 204 as well.
func (h *UserHandler) UnlinkPartner(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.UnlinkPartner(r.Context(), actorID(r)); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
