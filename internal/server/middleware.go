package server

import (
	"context"
	"net/http"

	"github.com/huddleup/filmroom/internal/filmroom"
)

type ctxKey int

const ctxKeyCoach ctxKey = iota

// requireCoach rejects requests without a valid coach session and stashes
// the coach on the request context for handlers downstream.
func requireCoach(st Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			coach, err := coachFromRequest(r, st)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyCoach, coach)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func coachFrom(r *http.Request) filmroom.Coach {
	return r.Context().Value(ctxKeyCoach).(filmroom.Coach)
}
