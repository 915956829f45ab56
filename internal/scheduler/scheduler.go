// Package scheduler runs the background jobs: nightly snapshot warming and
// session pruning. Jobs log failures and move on; a bad team or a Redis
// outage never takes the scheduler down.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/huddleup/filmroom/internal/analytics"
)

const (
	// Sessions older than this are swept nightly.
	sessionMaxAge = 7 * 24 * time.Hour

	// Per-job deadline. Snapshot warming visits every team and must not
	// run unbounded against a wedged database.
	jobTimeout = 5 * time.Minute
)

// Engine computes the reports worth precomputing.
type Engine interface {
	UnifiedPlayerStats(ctx context.Context, teamID, gameID string) ([]analytics.UnifiedPlayerStats, error)
}

// SnapshotWriter persists a precomputed report.
type SnapshotWriter interface {
	WriteUnified(ctx context.Context, teamID, gameID string, payload any) error
}

// Publisher pushes an event to a team's live subscribers.
type Publisher interface {
	Publish(teamID, event string, payload any)
}

// Store is the slice of storage the jobs touch.
type Store interface {
	TeamIDs(ctx context.Context) ([]string, error)
	PruneSessions(ctx context.Context, maxAge time.Duration) (int64, error)
}

type Scheduler struct {
	s         gocron.Scheduler
	store     Store
	engine    Engine
	snapshots SnapshotWriter
	events    Publisher
	logger    *slog.Logger
}

func New(store Store, engine Engine, snapshots SnapshotWriter, events Publisher, logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	return &Scheduler{
		s:         s,
		store:     store,
		engine:    engine,
		snapshots: snapshots,
		events:    events,
		logger:    logger,
	}, nil
}

// Start registers the jobs and begins running them.
func (s *Scheduler) Start() error {
	// Warm season snapshots before morning film sessions.
	_, err := s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(4, 10, 0))),
		gocron.NewTask(s.warmSnapshots),
	)
	if err != nil {
		return fmt.Errorf("creating snapshot job: %w", err)
	}

	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(s.pruneSessions),
	)
	if err != nil {
		return fmt.Errorf("creating session prune job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) warmSnapshots() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	teams, err := s.store.TeamIDs(ctx)
	if err != nil {
		s.logger.Error("snapshot warm: listing teams failed", "error", err)
		return
	}

	var warmed int
	for _, teamID := range teams {
		stats, err := s.engine.UnifiedPlayerStats(ctx, teamID, "")
		if err != nil {
			s.logger.Error("snapshot warm: compute failed", "team_id", teamID, "error", err)
			continue
		}
		if err := s.snapshots.WriteUnified(ctx, teamID, "", stats); err != nil {
			s.logger.Error("snapshot warm: write failed", "team_id", teamID, "error", err)
			continue
		}
		s.events.Publish(teamID, "snapshot.ready", map[string]string{"teamId": teamID})
		warmed++
	}
	s.logger.Info("snapshot warm finished", "teams", len(teams), "warmed", warmed)
}

func (s *Scheduler) pruneSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	pruned, err := s.store.PruneSessions(ctx, sessionMaxAge)
	if err != nil {
		s.logger.Error("session prune failed", "error", err)
		return
	}
	s.logger.Info("session prune finished", "pruned", pruned)
}
