package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes here
		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/games/{gameID}/finalize", h.FinalizeGameHandler)
			r.Post("/games/{gameID}/reevaluate", h.ReevaluateGameHandler)
			r.Post("/games/{gameID}/force-final", h.ForceFinalizeGameHandler)

			r.Get("/standings", h.SeasonStandingsHandler)
			r.Get("/users/{userID}/record", h.UserRecordHandler)
		})
	})
}
