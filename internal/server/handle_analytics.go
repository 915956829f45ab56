package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/cache"
	"github.com/huddleup/filmroom/internal/store"
)

// FeatureLockedResponse is the 403 body for tier-locked calculators. Code is
// always "feature_locked" so clients can branch without string-matching the
// message.
type FeatureLockedResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Feature string `json:"feature"`
	Tier    string `json:"tier"`
}

// writeEngineError maps engine failures onto the API's error contract.
func writeEngineError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var locked *analytics.FeatureLockedError
	switch {
	case errors.As(err, &locked):
		writeJSON(w, http.StatusForbidden, FeatureLockedResponse{
			Error:   locked.Error(),
			Code:    "feature_locked",
			Feature: locked.Feature,
			Tier:    string(locked.Tier),
		})
	case errors.Is(err, analytics.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		logger.Error("analytics request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func handleDrives(engine *analytics.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")
		gameID := r.URL.Query().Get("gameID")

		if r.URL.Query().Get("side") == "defense" {
			stats, err := engine.DefensiveDriveAnalytics(r.Context(), teamID, gameID)
			if err != nil {
				writeEngineError(logger, w, err)
				return
			}
			writeJSON(w, http.StatusOK, stats)
			return
		}

		stats, err := engine.DriveAnalytics(r.Context(), teamID, gameID)
		if err != nil {
			writeEngineError(logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleAttribution(engine *analytics.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.PlayerAttribution(r.Context(), chi.URLParam(r, "teamID"), r.URL.Query().Get("gameID"))
		if err != nil {
			writeEngineError(logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleLine(engine *analytics.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.OffensiveLine(r.Context(), chi.URLParam(r, "teamID"), r.URL.Query().Get("gameID"))
		if err != nil {
			writeEngineError(logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleDefense(engine *analytics.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.DefensivePlayers(r.Context(), chi.URLParam(r, "teamID"), r.URL.Query().Get("gameID"))
		if err != nil {
			writeEngineError(logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleSituational(engine *analytics.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.SituationalSplits(r.Context(), chi.URLParam(r, "teamID"), r.URL.Query().Get("gameID"))
		if err != nil {
			writeEngineError(logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleUnified(engine *analytics.Service, snapshots *cache.Snapshots, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")
		gameID := r.URL.Query().Get("gameID")

		cached, err := snapshots.ReadUnified(r.Context(), teamID, gameID)
		if err != nil {
			logger.Warn("snapshot read failed", "team_id", teamID, "error", err)
		}
		if cached != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		stats, err := engine.UnifiedPlayerStats(r.Context(), teamID, gameID)
		if err != nil {
			writeEngineError(logger, w, err)
			return
		}
		if err := snapshots.WriteUnified(r.Context(), teamID, gameID, stats); err != nil {
			logger.Warn("snapshot write failed", "team_id", teamID, "error", err)
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
