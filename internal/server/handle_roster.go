package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// PlayerResponse is one roster entry.
type PlayerResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Jersey    int      `json:"jersey"`
	Positions []string `json:"positions"`
}

func handleRoster(st Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")
		q := r.URL.Query().Get("q")

		roster, err := st.TeamRoster(r.Context(), teamID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]PlayerResponse, 0, len(roster))
		for _, pl := range roster {
			if q != "" && !fuzzy.MatchNormalizedFold(q, pl.Name) {
				continue
			}
			out = append(out, PlayerResponse{
				ID:        pl.ID,
				Name:      pl.Name,
				Jersey:    pl.Jersey,
				Positions: pl.Positions,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
