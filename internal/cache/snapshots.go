// Package cache keeps precomputed unified-stat snapshots in Redis so the
// most expensive report can be served without re-running the merge. The
// cache is strictly best-effort: a miss or a Redis failure always falls
// back to computing the report.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSnapshotTTL bounds how stale a served snapshot can be. Config
// changes invalidate eagerly; new tagging only has to wait this long.
const DefaultSnapshotTTL = 5 * time.Minute

type Snapshots struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshots wraps a Redis client. ttl <= 0 selects the default.
func NewSnapshots(client *redis.Client, ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Snapshots{client: client, ttl: ttl}
}

func unifiedKey(teamID, gameID string) string {
	if gameID == "" {
		return fmt.Sprintf("team:%s:unified", teamID)
	}
	return fmt.Sprintf("team:%s:game:%s:unified", teamID, gameID)
}

// ReadUnified returns the cached unified payload, or nil on a miss.
func (s *Snapshots) ReadUnified(ctx context.Context, teamID, gameID string) ([]byte, error) {
	data, err := s.client.Get(ctx, unifiedKey(teamID, gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

// WriteUnified stores a computed unified payload under the snapshot TTL.
func (s *Snapshots) WriteUnified(ctx context.Context, teamID, gameID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := s.client.Set(ctx, unifiedKey(teamID, gameID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// InvalidateTeam drops every snapshot for a team. Called on config changes,
// where serving the old tier's reports would be worse than recomputing.
func (s *Snapshots) InvalidateTeam(ctx context.Context, teamID string) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("team:%s:*", teamID), 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning snapshots: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("dropping snapshots: %w", err)
	}
	return nil
}
