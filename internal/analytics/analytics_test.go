package analytics

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/huddleup/filmroom/internal/filmroom"
	"github.com/huddleup/filmroom/internal/store"
)

// fakeStore implements Store in memory with injectable failures and
// latencies. Reduction primitives honor context cancellation while
// sleeping, mirroring the database layer.
type fakeStore struct {
	mu sync.Mutex

	configs map[string]filmroom.AnalyticsConfig
	saved   []filmroom.AnalyticsConfig

	gameVideos map[string][]string

	ownPlays  []filmroom.Play
	oppPlays  []filmroom.Play
	playsErr  error
	ownDrives []filmroom.Drive
	oppDrives []filmroom.Drive
	drivesErr error

	roster     []filmroom.Player
	identities map[string]filmroom.Player
	idRequests [][]string

	blocks     map[string]filmroom.BlockLine
	blockErrs  map[string]error
	penalties  map[string]int
	tackles    map[string]filmroom.TackleLine
	tackleErrs map[string]error
	pressures  map[string]filmroom.PressureLine
	coverages  map[string]filmroom.CoverageLine
	partSnaps  map[string]int

	teamSnaps    int
	passSnaps    int
	teamSnapsErr error

	splits   map[string]filmroom.SplitCounts
	splitErr error

	lineDelay    time.Duration
	defenseDelay time.Duration

	playsCalls  int
	rosterCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configs:    map[string]filmroom.AnalyticsConfig{},
		gameVideos: map[string][]string{},
		identities: map[string]filmroom.Player{},
		blocks:     map[string]filmroom.BlockLine{},
		blockErrs:  map[string]error{},
		penalties:  map[string]int{},
		tackles:    map[string]filmroom.TackleLine{},
		tackleErrs: map[string]error{},
		pressures:  map[string]filmroom.PressureLine{},
		coverages:  map[string]filmroom.CoverageLine{},
		partSnaps:  map[string]int{},
		splits:     map[string]filmroom.SplitCounts{},
	}
}

func (f *fakeStore) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeStore) AnalyticsConfig(_ context.Context, teamID string) (filmroom.AnalyticsConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.configs[teamID]
	if !ok {
		return filmroom.AnalyticsConfig{}, store.ErrNotFound
	}
	return cfg, nil
}

func (f *fakeStore) SaveAnalyticsConfig(_ context.Context, cfg filmroom.AnalyticsConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs[cfg.TeamID] = cfg
	f.saved = append(f.saved, cfg)
	return nil
}

func (f *fakeStore) GameVideoIDs(_ context.Context, gameID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids, ok := f.gameVideos[gameID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return ids, nil
}

func filterByVideo[T any](records []T, videoIDs []string, videoOf func(T) string) []T {
	if videoIDs == nil {
		return records
	}
	want := make(map[string]struct{}, len(videoIDs))
	for _, id := range videoIDs {
		want[id] = struct{}{}
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if _, ok := want[videoOf(r)]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeStore) TeamPlays(_ context.Context, _ string, videoIDs []string, opponent bool) ([]filmroom.Play, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playsCalls++
	if f.playsErr != nil {
		return nil, f.playsErr
	}
	src := f.ownPlays
	if opponent {
		src = f.oppPlays
	}
	return filterByVideo(src, videoIDs, func(p filmroom.Play) string { return p.VideoID }), nil
}

func (f *fakeStore) TeamDrives(_ context.Context, _ string, videoIDs []string, opponent bool) ([]filmroom.Drive, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.drivesErr != nil {
		return nil, f.drivesErr
	}
	src := f.ownDrives
	if opponent {
		src = f.oppDrives
	}
	return filterByVideo(src, videoIDs, func(d filmroom.Drive) string { return d.VideoID }), nil
}

func (f *fakeStore) TeamRoster(_ context.Context, _ string) ([]filmroom.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rosterCalls++
	return f.roster, nil
}

func (f *fakeStore) PlayersByID(_ context.Context, ids []string) ([]filmroom.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idRequests = append(f.idRequests, append([]string(nil), ids...))
	out := make([]filmroom.Player, 0, len(ids))
	for _, id := range ids {
		if pl, ok := f.identities[id]; ok {
			out = append(out, pl)
		}
	}
	return out, nil
}

func (f *fakeStore) BlockLine(ctx context.Context, playerID string, _ []string) (filmroom.BlockLine, error) {
	if err := f.wait(ctx, f.lineDelay); err != nil {
		return filmroom.BlockLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.blockErrs[playerID]; err != nil {
		return filmroom.BlockLine{}, err
	}
	return f.blocks[playerID], nil
}

func (f *fakeStore) PenaltyCount(ctx context.Context, playerID string, _ []string) (int, error) {
	if err := f.wait(ctx, f.lineDelay); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.penalties[playerID], nil
}

func (f *fakeStore) TackleLine(ctx context.Context, playerID string, _ []string) (filmroom.TackleLine, error) {
	if err := f.wait(ctx, f.defenseDelay); err != nil {
		return filmroom.TackleLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.tackleErrs[playerID]; err != nil {
		return filmroom.TackleLine{}, err
	}
	return f.tackles[playerID], nil
}

func (f *fakeStore) PressureLine(ctx context.Context, playerID string, _ []string) (filmroom.PressureLine, error) {
	if err := f.wait(ctx, f.defenseDelay); err != nil {
		return filmroom.PressureLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pressures[playerID], nil
}

func (f *fakeStore) CoverageLine(ctx context.Context, playerID string, _ []string) (filmroom.CoverageLine, error) {
	if err := f.wait(ctx, f.defenseDelay); err != nil {
		return filmroom.CoverageLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coverages[playerID], nil
}

func (f *fakeStore) ParticipationSnaps(ctx context.Context, playerID string, _ []string) (int, error) {
	if err := f.wait(ctx, f.defenseDelay); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.partSnaps[playerID], nil
}

func (f *fakeStore) DefensiveSnaps(ctx context.Context, _ string, _ []string) (int, error) {
	if err := f.wait(ctx, f.defenseDelay); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.teamSnapsErr != nil {
		return 0, f.teamSnapsErr
	}
	return f.teamSnaps, nil
}

func (f *fakeStore) PassRushSnaps(ctx context.Context, _ string, _ []string) (int, error) {
	if err := f.wait(ctx, f.defenseDelay); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passSnaps, nil
}

func (f *fakeStore) SituationalCounts(_ context.Context, _ string, _ []string, condition string, _ bool) (filmroom.SplitCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.splitErr != nil {
		return filmroom.SplitCounts{}, f.splitErr
	}
	return f.splits[condition], nil
}

func newTestService(fs *fakeStore) *Service {
	return NewService(fs, slog.New(slog.DiscardHandler), 0)
}

// tierConfig builds the stored config a team on the given tier would have.
func tierConfig(teamID string, tier filmroom.Tier) filmroom.AnalyticsConfig {
	return filmroom.AnalyticsConfig{
		TeamID:      teamID,
		Tier:        tier,
		Features:    filmroom.FeaturesForTier(tier),
		Granularity: filmroom.GranularityForTier(tier),
	}
}

func wantFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func runPlay(carrier string, yards int, td, success bool) filmroom.Play {
	return filmroom.Play{
		TeamID:    "t1",
		VideoID:   "v1",
		PlayType:  "run",
		CarrierID: carrier,
		Yards:     yards,
		Touchdown: td,
		Success:   success,
	}
}

func passPlay(qb, target string, yards int, complete, td bool) filmroom.Play {
	return filmroom.Play{
		TeamID:        "t1",
		VideoID:       "v1",
		PlayType:      "pass",
		QuarterbackID: qb,
		TargetID:      target,
		Yards:         yards,
		Complete:      complete,
		Touchdown:     td,
		Success:       complete,
	}
}
