package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TeamPosition is a team's last reported location.
type TeamPosition struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy,omitempty"`
	ReportedAt time.Time `json:"reportedAt"`
}

// PositionCache keeps each team's last position in Redis with a short TTL,
// so the admin view shows live locations and teams that stopped reporting
// age out on their own.
type PositionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPositionCache(rdb *redis.Client) *PositionCache {
	return &PositionCache{rdb: rdb, ttl: 5 * time.Minute}
}

func positionKey(teamID string) string { return "geohunt:pos:" + teamID }

func (c *PositionCache) Set(ctx context.Context, teamID string, pos TeamPosition) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, positionKey(teamID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching position: %w", err)
	}
	return nil
}

// Get returns the team's last position, reporting false if none is cached.
func (c *PositionCache) Get(ctx context.Context, teamID string) (TeamPosition, bool, error) {
	data, err := c.rdb.Get(ctx, positionKey(teamID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return TeamPosition{}, false, nil
	}
	if err != nil {
		return TeamPosition{}, false, fmt.Errorf("reading position: %w", err)
	}

	var pos TeamPosition
	if err := json.Unmarshal(data, &pos); err != nil {
		return TeamPosition{}, false, err
	}
	return pos, true, nil
}
