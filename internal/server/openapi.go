package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/filmroom"
)

// ErrorResponse is returned for all plain error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// teamPathParams declares the {teamID} path parameter for the team-scoped
// operations; without it the reflector rejects those paths.
type teamPathParams struct {
	TeamID string `path:"teamID"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "FilmRoom API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Team film analytics: tier-gated drive, player, line, defensive, and situational reports.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/auth/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/auth/login")
	postLogin.SetSummary("Coach login")
	postLogin.SetDescription("Authenticate with email and password. Sets coach_session cookie.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(CoachResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/auth/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/auth/logout")
	postLogout.SetSummary("Coach logout")
	postLogout.SetDescription("Clears the coach session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/auth/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/auth/me")
	getMe.SetSummary("Current coach")
	getMe.SetDescription("Returns the authenticated coach and their team. Requires coach_session cookie.")
	getMe.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/teams/{teamID}/config
	getConfig, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/config")
	getConfig.SetSummary("Analytics configuration")
	getConfig.SetDescription("Returns the team's tier and feature flags. Teams without a stored configuration resolve to the plus-tier default.")
	getConfig.AddReqStructure(teamPathParams{})
	getConfig.AddRespStructure(filmroom.AnalyticsConfig{}, openapi.WithHTTPStatus(http.StatusOK))
	getConfig.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getConfig)

	// PUT /api/teams/{teamID}/config
	putConfig, _ := r.NewOperationContext(http.MethodPut, "/api/teams/{teamID}/config")
	putConfig.SetSummary("Update analytics configuration")
	putConfig.SetDescription("Partial update: tier and/or granularity. A tier change recomputes the feature flags. Requires coach_session cookie.")
	putConfig.AddReqStructure(teamPathParams{})
	putConfig.AddReqStructure(ConfigUpdateRequest{})
	putConfig.AddRespStructure(filmroom.AnalyticsConfig{}, openapi.WithHTTPStatus(http.StatusOK))
	putConfig.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putConfig.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(putConfig)

	// GET /api/teams/{teamID}/analytics/drives
	getDrives, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/analytics/drives")
	getDrives.SetSummary("Drive analytics")
	getDrives.SetDescription("Per-drive efficiency for the team's own possessions, or opponent possessions with side=defense. Optional gameID scopes to one game's film.")
	getDrives.AddReqStructure(teamPathParams{})
	getDrives.AddRespStructure(analytics.DriveAnalytics{}, openapi.WithHTTPStatus(http.StatusOK))
	getDrives.AddRespStructure(FeatureLockedResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getDrives.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getDrives)

	// GET /api/teams/{teamID}/analytics/attribution
	getAttribution, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/analytics/attribution")
	getAttribution.SetSummary("Player attribution")
	getAttribution.SetDescription("Per-player rushing, passing, and receiving production reduced from tagged plays.")
	getAttribution.AddReqStructure(teamPathParams{})
	getAttribution.AddRespStructure([]analytics.PlayerAttributionStats{}, openapi.WithHTTPStatus(http.StatusOK))
	getAttribution.AddRespStructure(FeatureLockedResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getAttribution.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getAttribution)

	// GET /api/teams/{teamID}/analytics/line
	getLine, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/analytics/line")
	getLine.SetSummary("Offensive line")
	getLine.SetDescription("Blocking win rates and penalties for rostered linemen.")
	getLine.AddReqStructure(teamPathParams{})
	getLine.AddRespStructure([]analytics.OffensiveLineStats{}, openapi.WithHTTPStatus(http.StatusOK))
	getLine.AddRespStructure(FeatureLockedResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getLine.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getLine)

	// GET /api/teams/{teamID}/analytics/defense
	getDefense, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/analytics/defense")
	getDefense.SetSummary("Defensive players")
	getDefense.SetDescription("Tackle, pressure, and coverage production per defender, rates against team snap counts.")
	getDefense.AddReqStructure(teamPathParams{})
	getDefense.AddRespStructure([]analytics.DefensivePlayerStats{}, openapi.WithHTTPStatus(http.StatusOK))
	getDefense.AddRespStructure(FeatureLockedResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getDefense.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getDefense)

	// GET /api/teams/{teamID}/analytics/situational
	getSituational, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/analytics/situational")
	getSituational.SetSummary("Situational splits")
	getSituational.SetDescription("Offensive efficiency under tracked play-level conditions (motion, play action, blitz).")
	getSituational.AddReqStructure(teamPathParams{})
	getSituational.AddRespStructure([]analytics.SituationalSplit{}, openapi.WithHTTPStatus(http.StatusOK))
	getSituational.AddRespStructure(FeatureLockedResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getSituational.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSituational)

	// GET /api/teams/{teamID}/analytics/unified
	getUnified, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/analytics/unified")
	getUnified.SetSummary("Unified player stats")
	getUnified.SetDescription("Merged offense, line, and defense profiles per player. Locked categories appear as null. Served from the snapshot cache when warm.")
	getUnified.AddReqStructure(teamPathParams{})
	getUnified.AddRespStructure([]analytics.UnifiedPlayerStats{}, openapi.WithHTTPStatus(http.StatusOK))
	getUnified.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getUnified)

	// GET /api/teams/{teamID}/roster
	getRoster, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/roster")
	getRoster.SetSummary("Team roster")
	getRoster.SetDescription("Lists players, optionally fuzzy-filtered by name with q.")
	getRoster.AddReqStructure(teamPathParams{})
	getRoster.AddRespStructure([]PlayerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRoster.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getRoster)

	// GET /api/teams/{teamID}/games
	getGames, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/games")
	getGames.SetSummary("Team games")
	getGames.SetDescription("Lists the team's games, most recent first.")
	getGames.AddReqStructure(teamPathParams{})
	getGames.AddRespStructure([]GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getGames)

	// GET /api/teams/{teamID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream for config.updated and snapshot.ready notifications.")
	getEvents.AddReqStructure(teamPathParams{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
