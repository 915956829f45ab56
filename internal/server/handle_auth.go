package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/huddleup/filmroom/internal/store"
)

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CoachResponse describes the authenticated coach.
type CoachResponse struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// MeResponse is the coach plus their team.
type MeResponse struct {
	CoachResponse
	Team TeamResponse `json:"team"`
}

// TeamResponse describes a team.
type TeamResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

func handleLogin(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		coach, err := st.CoachByEmail(r.Context(), req.Email)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sessionID, err := st.CreateSession(r.Context(), coach.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(7 * 24 * time.Hour / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, CoachResponse{
			ID:     coach.ID,
			TeamID: coach.TeamID,
			Email:  coach.Email,
			Name:   coach.Name,
			Role:   coach.Role,
		})
	}
}

func handleLogout(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			st.DeleteSession(r.Context(), cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleMe(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach, err := coachFromRequest(r, st)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		team, err := st.TeamByID(r.Context(), coach.TeamID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, MeResponse{
			CoachResponse: CoachResponse{
				ID:     coach.ID,
				TeamID: coach.TeamID,
				Email:  coach.Email,
				Name:   coach.Name,
				Role:   coach.Role,
			},
			Team: TeamResponse{ID: team.ID, Name: team.Name, Season: team.Season},
		})
	}
}
