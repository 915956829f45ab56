package server

import (
	"errors"
	"net/http"

	"github.com/huddleup/filmroom/internal/filmroom"
	"github.com/huddleup/filmroom/internal/store"
)

const sessionCookieName = "coach_session"

var errNoSession = errors.New("no valid session")

// coachFromRequest resolves the coach_session cookie to a coach.
func coachFromRequest(r *http.Request, st Store) (filmroom.Coach, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return filmroom.Coach{}, errNoSession
	}
	coach, err := st.CoachFromSession(r.Context(), cookie.Value)
	if errors.Is(err, store.ErrNotFound) {
		return filmroom.Coach{}, errNoSession
	}
	return coach, err
}
