package stats

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	keyShots     = "pocketrush:shots_total"
	keyPotted    = "pocketrush:balls_potted_total"
	keyObstacles = "pocketrush:obstacles_spawned_total"
	keyBounces   = "pocketrush:bounce_counts" // sorted set: predicted bounce count -> shots
)

// Connect opens and verifies a Redis client for live counters.
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// Stats keeps session-independent counters in Redis. A nil *Stats is a
// no-op so the server runs without Redis configured.
type Stats struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Stats {
	return &Stats{rdb: rdb}
}

// ShotFinished bumps the shot counters for one settled shot.
func (s *Stats) ShotFinished(ctx context.Context, potted, predictedBounces int) {
	if s == nil {
		return
	}
	pipe := s.rdb.Pipeline()
	pipe.Incr(ctx, keyShots)
	if potted > 0 {
		pipe.IncrBy(ctx, keyPotted, int64(potted))
	}
	pipe.ZIncrBy(ctx, keyBounces, 1, strconv.Itoa(predictedBounces))
	pipe.Exec(ctx)
}

// ObstaclesSpawned records the running spawn total reported by the field.
func (s *Stats) ObstaclesSpawned(ctx context.Context, total int) {
	if s == nil {
		return
	}
	s.rdb.Set(ctx, keyObstacles, total, 0)
}

// Summary returns the counter values for the stats endpoint.
func (s *Stats) Summary(ctx context.Context) (map[string]int64, error) {
	if s == nil {
		return nil, redis.Nil
	}
	keys := map[string]string{
		"shots_total":             keyShots,
		"balls_potted_total":      keyPotted,
		"obstacles_spawned_total": keyObstacles,
	}
	out := make(map[string]int64, len(keys))
	for name, key := range keys {
		n, err := s.rdb.Get(ctx, key).Int64()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		out[name] = n
	}
	return out, nil
}
