package rest

import (
	"fmt"
	"time"

	"github.com/heartmarshall/family-planner/internal/domain"
)

type eventResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatorID       int64     `json:"creator_id"`
	Status          string    `json:"status"`
	Category        string    `json:"category"`
	PartnerNotified bool      `json:"partner_notified"`
	CreatedAt       time.Time `json:"created_at"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:              e.ID.String(),
		Title:           e.Title,
		StartAt:         e.StartAt,
		EndAt:           e.EndAt(),
		DurationMinutes: e.DurationMinutes,
		CreatorID:       e.CreatorID,
		Status:          e.Status.String(),
		Category:        e.Category.String(),
		PartnerNotified: e.PartnerNotified,
		CreatedAt:       e.CreatedAt,
	}
}

func toEventResponses(events []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

type factResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Window string `json:"window"`
}

func toFactResponses(facts []domain.FamilyFact) []factResponse {
	out := make([]factResponse, 0, len(facts))
	for _, f := range facts {
		out = append(out, factResponse{
			ID:     f.ID.String(),
			Label:  f.Label,
			Start:  clock(f.StartMinute),
			End:    clock(f.EndMinute),
			Window: f.Window(),
		})
	}
	return out
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

type activityResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	Price       *int       `json:"price,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	PhotoRef    *string    `json:"photo_ref,omitempty"`
	SourceURL   string     `json:"source_url"`
	SourceKind  string     `json:"source_kind"`
	ParsedAt    time.Time  `json:"parsed_at"`
}

func toActivityResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		StartAt:     a.StartAt,
		Price:       a.Price,
		Location:    a.Location,
		Description: a.Description,
		PhotoRef:    a.PhotoRef,
		SourceURL:   a.SourceURL,
		SourceKind:  a.SourceKind.String(),
		ParsedAt:    a.ParsedAt,
	}
}

type userResponse struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
	PartnerID  *int64 `json:"partner_id,omitempty"`
	DigestTime string `json:"digest_time"`
	FamilyID   string `json:"family_id"`
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ExternalID: u.ExternalID,
		Name:       u.Name,
		DigestTime: u.DigestTime,
		FamilyID:   u.FamilyID().String(),
	}
	if u.HasPartner() {
		p := u.PartnerID()
		resp.PartnerID = &p
	}
	return resp
}
