package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/cache"
	"github.com/huddleup/filmroom/internal/database"
	"github.com/huddleup/filmroom/internal/filmroom"
	"github.com/huddleup/filmroom/internal/migrations"
	"github.com/huddleup/filmroom/internal/store"
)

// setupServer builds the full route tree over a seeded in-memory database.
// The redis client points at a closed port: snapshots and health checks must
// degrade, not fail, so tests double as coverage for running without redis.
func setupServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	st := store.NewSQLiteStore(db)
	if err := st.SeedDemo(ctx, logger); err != nil {
		t.Fatalf("seed demo: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})

	r := chi.NewRouter()
	addRoutes(r, Deps{
		Logger:    logger,
		DB:        db,
		Redis:     rdb,
		Store:     st,
		Engine:    analytics.NewService(st, logger, 0),
		Snapshots: cache.NewSnapshots(rdb, 0),
		Broker:    NewBroker(),
	})
	return r
}

func login(t *testing.T, h http.Handler) (*http.Cookie, CoachResponse) {
	t.Helper()

	body, _ := json.Marshal(LoginRequest{Email: "coach@ridgeview.example", Password: "wolves2026"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var coach CoachResponse
	json.NewDecoder(w.Body).Decode(&coach)

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c, coach
		}
	}
	t.Fatal("login: no session cookie set")
	return nil, coach
}

func authedGet(t *testing.T, h http.Handler, cookie *http.Cookie, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func authedPut(t *testing.T, h http.Handler, cookie *http.Cookie, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(data))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoginRejectsBadPassword(t *testing.T) {
	h := setupServer(t)

	body, _ := json.Marshal(LoginRequest{Email: "coach@ridgeview.example", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginMeLogout(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	if coach.Email != "coach@ridgeview.example" {
		t.Errorf("expected seeded coach email, got %q", coach.Email)
	}
	if coach.TeamID == "" {
		t.Fatal("expected a team id on the login response")
	}

	w := authedGet(t, h, cookie, "/api/auth/me")
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var me MeResponse
	json.NewDecoder(w.Body).Decode(&me)
	if me.Team.Name != "Ridgeview Wolves" {
		t.Errorf("me: expected team 'Ridgeview Wolves', got %q", me.Team.Name)
	}
	if me.Role != "owner" {
		t.Errorf("me: expected role 'owner', got %q", me.Role)
	}

	// Logout invalidates the session.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	w = authedGet(t, h, cookie, "/api/auth/me")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestTeamRoutesRequireSession(t *testing.T) {
	h := setupServer(t)
	_, coach := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/teams/"+coach.TeamID+"/config", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", w.Code)
	}
}

func TestGetConfigReturnsSeededTier(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/config")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var cfg filmroom.AnalyticsConfig
	json.NewDecoder(w.Body).Decode(&cfg)

	if cfg.Tier != filmroom.TierPremium {
		t.Errorf("expected premium tier, got %q", cfg.Tier)
	}
	if !cfg.Features.LineTracking || !cfg.Features.DefenseTracking {
		t.Errorf("premium should unlock line and defense tracking: %+v", cfg.Features)
	}
	if cfg.Features.SituationalSplits {
		t.Error("premium should not unlock situational splits")
	}
}

func TestUpdateConfigRecomputesFlags(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	tier := "ai_powered"
	w := authedPut(t, h, cookie, "/api/teams/"+coach.TeamID+"/config", ConfigUpdateRequest{Tier: &tier})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var cfg filmroom.AnalyticsConfig
	json.NewDecoder(w.Body).Decode(&cfg)

	if cfg.Tier != filmroom.TierAIPowered {
		t.Errorf("expected ai_powered tier, got %q", cfg.Tier)
	}
	if !cfg.Features.SituationalSplits {
		t.Error("ai_powered should unlock situational splits")
	}
	if cfg.Granularity != "advanced" {
		t.Errorf("expected advanced granularity, got %q", cfg.Granularity)
	}
	if cfg.UpdatedBy != coach.ID {
		t.Errorf("expected updatedBy %q, got %q", coach.ID, cfg.UpdatedBy)
	}
}

func TestUpdateConfigRejectsUnknownTier(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	tier := "gold"
	w := authedPut(t, h, cookie, "/api/teams/"+coach.TeamID+"/config", ConfigUpdateRequest{Tier: &tier})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTierDowngradeLocksReports(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	tier := "basic"
	if w := authedPut(t, h, cookie, "/api/teams/"+coach.TeamID+"/config", ConfigUpdateRequest{Tier: &tier}); w.Code != http.StatusOK {
		t.Fatalf("downgrade: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Basic keeps drive analytics but loses everything above it.
	if w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/drives"); w.Code != http.StatusOK {
		t.Fatalf("drives on basic: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/attribution")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	var locked FeatureLockedResponse
	json.NewDecoder(w.Body).Decode(&locked)
	if locked.Code != "feature_locked" {
		t.Errorf("expected code 'feature_locked', got %q", locked.Code)
	}
	if locked.Feature != "player_attribution" {
		t.Errorf("expected feature 'player_attribution', got %q", locked.Feature)
	}
	if locked.Tier != "basic" {
		t.Errorf("expected tier 'basic', got %q", locked.Tier)
	}
}

func TestDrivesBothSides(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/drives")
	if w.Code != http.StatusOK {
		t.Fatalf("offense: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var own analytics.DriveAnalytics
	json.NewDecoder(w.Body).Decode(&own)
	if own.Drives != 6 {
		t.Fatalf("offense: expected 6 drives, got %d", own.Drives)
	}
	if math.Abs(own.PointsPerDrive-17.0/6) > 1e-6 {
		t.Errorf("offense: expected %.4f points per drive, got %.4f", 17.0/6, own.PointsPerDrive)
	}
	if own.RedZoneTDRate != 50.0 {
		t.Errorf("offense: expected 50.0 red-zone TD rate, got %.2f", own.RedZoneTDRate)
	}
	if own.Results.Touchdowns != 2 || own.Results.Punts != 1 {
		t.Errorf("offense: unexpected result counts: %+v", own.Results)
	}

	w = authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/drives?side=defense")
	if w.Code != http.StatusOK {
		t.Fatalf("defense: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var opp analytics.DefensiveDriveAnalytics
	json.NewDecoder(w.Body).Decode(&opp)
	if opp.Drives != 5 {
		t.Fatalf("defense: expected 5 opponent drives, got %d", opp.Drives)
	}
	if opp.PointsAllowedPerDrive != 2.0 {
		t.Errorf("defense: expected 2.0 points allowed per drive, got %.2f", opp.PointsAllowedPerDrive)
	}
	if opp.StopRate != 60.0 {
		t.Errorf("defense: expected 60.0 stop rate, got %.2f", opp.StopRate)
	}
	if opp.Results.Punts != 2 {
		t.Errorf("defense: expected 2 punts, got %d", opp.Results.Punts)
	}
}

func TestDrivesGameScope(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/games")
	if w.Code != http.StatusOK {
		t.Fatalf("games: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var games []GameResponse
	json.NewDecoder(w.Body).Decode(&games)
	if len(games) != 1 {
		t.Fatalf("expected 1 seeded game, got %d", len(games))
	}
	if games[0].Opponent != "Central Catholic" {
		t.Errorf("expected opponent 'Central Catholic', got %q", games[0].Opponent)
	}

	// All seeded film belongs to this game, so the scoped report matches the
	// season totals.
	w = authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/drives?gameID="+games[0].ID)
	if w.Code != http.StatusOK {
		t.Fatalf("scoped drives: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var scoped analytics.DriveAnalytics
	json.NewDecoder(w.Body).Decode(&scoped)
	if scoped.Drives != 6 {
		t.Errorf("scoped drives: expected 6, got %d", scoped.Drives)
	}

	w = authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/drives?gameID=bogus")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown game: expected 404, got %d", w.Code)
	}
}

func TestAttributionEndpoint(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/attribution")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats []analytics.PlayerAttributionStats
	json.NewDecoder(w.Body).Decode(&stats)

	// QB, RB, two WRs, TE touch the ball in the seeded game.
	if len(stats) != 5 {
		t.Fatalf("expected 5 contributing players, got %d", len(stats))
	}
	for _, st := range stats {
		if st.Plays() == 0 {
			t.Errorf("player %s has no recorded activity", st.PlayerID)
		}
	}
}

func TestRosterSearch(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/roster")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var roster []PlayerResponse
	json.NewDecoder(w.Body).Decode(&roster)
	if len(roster) != 18 {
		t.Fatalf("expected 18 seeded players, got %d", len(roster))
	}

	w = authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/roster?q=marcus")
	var found []PlayerResponse
	json.NewDecoder(w.Body).Decode(&found)
	if len(found) != 2 {
		t.Fatalf("expected 2 players matching 'marcus', got %d", len(found))
	}
	for _, pl := range found {
		if pl.Name != "Marcus Reed" && pl.Name != "Marcus Bell" {
			t.Errorf("unexpected match %q", pl.Name)
		}
	}
}

func TestUnifiedEndpoint(t *testing.T) {
	h := setupServer(t)
	cookie, coach := login(t, h)

	w := authedGet(t, h, cookie, "/api/teams/"+coach.TeamID+"/analytics/unified")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rows []analytics.UnifiedPlayerStats
	json.NewDecoder(w.Body).Decode(&rows)

	// Every seeded player contributes somewhere: 5 skill players, 5 linemen,
	// 9 defenders, with the two-way tight end in both.
	if len(rows) != 18 {
		t.Fatalf("expected 18 unified rows, got %d", len(rows))
	}
	if rows[0].Name != "Aaron Diggs" {
		t.Errorf("expected name-sorted rows starting with Aaron Diggs, got %q", rows[0].Name)
	}

	byName := make(map[string]analytics.UnifiedPlayerStats, len(rows))
	for _, row := range rows {
		if row.Name == "" || row.Jersey == 0 {
			t.Errorf("row %s missing identity: %+v", row.PlayerID, row)
		}
		byName[row.Name] = row
	}

	qb := byName["Drew Calloway"]
	if qb.Offense == nil || qb.Defense != nil {
		t.Errorf("QB should be offense-only: %+v", qb)
	}
	mlb := byName["Caleb Munoz"]
	if mlb.Defense == nil || mlb.Offense != nil {
		t.Errorf("MLB should be defense-only: %+v", mlb)
	}
	te := byName["Cole Brandt"]
	if te.Offense == nil || te.Defense == nil {
		t.Errorf("two-way TE should carry offense and defense: %+v", te)
	}
}

func TestHealthzDegradesWithoutRedis(t *testing.T) {
	h := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with redis down, got %d", w.Code)
	}

	var checks HealthResponse
	json.NewDecoder(w.Body).Decode(&checks)
	if checks["sqlite"].Status != "ok" {
		t.Errorf("expected sqlite ok, got %+v", checks["sqlite"])
	}
	if checks["redis"].Status != "error" {
		t.Errorf("expected redis error, got %+v", checks["redis"])
	}
}

func TestOpenAPISpecServes(t *testing.T) {
	h := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var spec struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}
	if spec.OpenAPI == "" {
		t.Error("expected an openapi version")
	}
	for _, path := range []string{
		"/api/teams/{teamID}/config",
		"/api/teams/{teamID}/analytics/unified",
	} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}
