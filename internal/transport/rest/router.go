package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/family-planner/internal/transport/middleware"
)

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Users      *UserHandler
	Events     *EventHandler
	Activities *ActivityHandler
}

// NewRouter mounts the probes and the authenticated API. global wraps every
// route; ingest throttles the endpoint that fetches external pages. Either
// may be nil.
func NewRouter(h Handlers, global, ingest middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(global))

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/me", h.Users.Me)
		r.Patch("/me", h.Users.UpdateMe)
		r.Delete("/me/partner", h.Users.UnlinkPartner)
		r.Get("/family-id", h.Users.FamilyID)

		r.Post("/availability", h.Events.Availability)
		r.Route("/events", func(r chi.Router) {
			r.Post("/", h.Events.Create)
			r.Get("/", h.Events.List)
			r.Get("/{id}", h.Events.Get)
			r.Patch("/{id}", h.Events.Update)
			r.Delete("/{id}", h.Events.Delete)
			r.Post("/{id}/notified", h.Events.MarkNotified)
		})
		r.Get("/agenda", h.Events.Agenda)
		r.Get("/calendar.ics", h.Events.CalendarICS)
		r.Post("/facts", h.Events.RememberFact)
		r.Get("/facts", h.Events.ListFacts)

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", h.Activities.Save)
			r.With(middleware.Chain(ingest)).Post("/ingest", h.Activities.Ingest)
			r.Get("/", h.Activities.List)
			r.Delete("/{id}", h.Activities.Delete)
		})
	})

	return r
}
