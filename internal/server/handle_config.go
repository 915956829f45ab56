package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/cache"
	"github.com/huddleup/filmroom/internal/filmroom"
)

// ConfigUpdateRequest is the partial-update body for PUT config. Omitted
// fields are left alone.
type ConfigUpdateRequest struct {
	Tier        *string `json:"tier"`
	Granularity *string `json:"granularity"`
}

func handleGetConfig(engine *analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")

		cfg, err := engine.TeamConfig(r.Context(), teamID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func handleUpdateConfig(engine *analytics.Service, broker *Broker, snapshots *cache.Snapshots, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")
		coach := coachFrom(r)

		var req ConfigUpdateRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var patch analytics.ConfigPatch
		if req.Tier != nil {
			tier := filmroom.Tier(*req.Tier)
			patch.Tier = &tier
		}
		patch.Granularity = req.Granularity

		cfg, err := engine.UpdateTeamConfig(r.Context(), teamID, patch, coach.ID)
		switch {
		case errors.Is(err, analytics.ErrUnknownTier):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, analytics.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		case err != nil:
			logger.Error("config update failed", "team_id", teamID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// The tier decides which reports exist, so stale snapshots are
		// worse than a recompute.
		if err := snapshots.InvalidateTeam(r.Context(), teamID); err != nil {
			logger.Warn("snapshot invalidation failed", "team_id", teamID, "error", err)
		}
		broker.Publish(teamID, "config.updated", cfg)

		writeJSON(w, http.StatusOK, cfg)
	}
}
