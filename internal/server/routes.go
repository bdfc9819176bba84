package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, opts Options) {
	broker := opts.Broker
	store := opts.Store

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("GeoHunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(opts.Logger, opts.DB, opts.Redis))

	// Player routes — authenticated by the team token from POST /api/teams.
	r.Route("/api", func(r chi.Router) {
		r.Post("/teams", handleCreateTeam(store, broker, opts.Catalog))
		r.Get("/game/state", handleGameState(store, opts.Catalog, opts.Evaluator))
		r.Post("/game/answer", handleAnswer(store, broker, opts.Catalog))
		r.Post("/game/submission", handleSubmission(store, broker, opts.Catalog))
		r.Post("/game/reset", handleReset(store, broker, opts.Catalog))
		r.Get("/game/events", handleEvents(store, broker, opts.Catalog, opts.Evaluator))
		r.Get("/game/positions", handlePositions(opts.Logger, store, broker, opts.Catalog, opts.Evaluator, opts.Positions))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(store, opts.AdminHash))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	// Admin console — cookie session required.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))

		r.Get("/teams", handleAdminListTeams(store, opts.Positions))
		r.Post("/teams/{teamID}/unlock", handleAdminUnlock(store, broker))
		r.Post("/teams/{teamID}/reset", handleAdminReset(store, broker, opts.Catalog))
		r.Put("/teams/{teamID}/status", handleAdminSetStatus(store, broker))
		r.Delete("/teams/{teamID}", handleAdminDeleteTeam(store, broker))

		r.Get("/validations", handleAdminListValidations(store))
		r.Post("/validations/{validationID}", handleAdminResolveValidation(store, broker))

		r.Get("/events", handleAdminEvents(store, broker, opts.Positions))
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			opts.Logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
