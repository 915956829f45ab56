package server

import (
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("FilmRoom API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(deps.Logger, deps.DB, deps.Redis))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", handleLogin(deps.Store))
		r.Post("/logout", handleLogout(deps.Store))
		r.Get("/me", handleMe(deps.Store))
	})

	// Team routes — every report and mutation is scoped to one team and
	// requires a coach session.
	r.Route("/api/teams/{teamID}", func(r chi.Router) {
		r.Use(requireCoach(deps.Store))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/config", handleGetConfig(deps.Engine))
			r.Put("/config", handleUpdateConfig(deps.Engine, deps.Broker, deps.Snapshots, deps.Logger))

			r.Get("/analytics/drives", handleDrives(deps.Engine, deps.Logger))
			r.Get("/analytics/attribution", handleAttribution(deps.Engine, deps.Logger))
			r.Get("/analytics/line", handleLine(deps.Engine, deps.Logger))
			r.Get("/analytics/defense", handleDefense(deps.Engine, deps.Logger))
			r.Get("/analytics/situational", handleSituational(deps.Engine, deps.Logger))
			r.Get("/analytics/unified", handleUnified(deps.Engine, deps.Snapshots, deps.Logger))

			r.Get("/roster", handleRoster(deps.Store))
			r.Get("/games", handleGames(deps.Store))
		})

		// The SSE stream stays open indefinitely, so it sits outside the
		// request timeout.
		r.Get("/events", handleEvents(deps.Broker))
	})

	if deps.WebDir != "" {
		if info, err := os.Stat(deps.WebDir); err == nil && info.IsDir() {
			deps.Logger.Info("serving SPA", "dir", deps.WebDir)
			r.NotFound(handleSPA(deps.WebDir))
		}
	}
}
