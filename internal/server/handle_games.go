package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// GameResponse is one scheduled or played game.
type GameResponse struct {
	ID       string     `json:"id"`
	Opponent string     `json:"opponent"`
	Location string     `json:"location"`
	PlayedAt *time.Time `json:"playedAt"`
}

func handleGames(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := st.TeamGames(r.Context(), chi.URLParam(r, "teamID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]GameResponse, 0, len(games))
		for _, g := range games {
			out = append(out, GameResponse{
				ID:       g.ID,
				Opponent: g.Opponent,
				Location: g.Location,
				PlayedAt: g.PlayedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
