package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// SessionLocks reserves one live screening session per (candidate, job) pair.
// The reservation expires on its own so an abandoned browser tab cannot wedge
// a candidate forever.
type SessionLocks struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionLocks(rdb *redis.Client, ttl time.Duration) *SessionLocks {
	return &SessionLocks{rdb: rdb, ttl: ttl}
}

func pairKey(candidateID, jobID int64) string {
	return fmt.Sprintf("screening:active:%d:%d", candidateID, jobID)
}

// Acquire reserves the pair, returning false when another session holds it.
func (l *SessionLocks) Acquire(ctx context.Context, candidateID, jobID, interviewID int64) (bool, error) {
	return l.rdb.SetNX(ctx, pairKey(candidateID, jobID), interviewID, l.ttl).Result()
}

// Refresh extends the reservation while answers keep arriving.
func (l *SessionLocks) Refresh(ctx context.Context, candidateID, jobID int64) error {
	return l.rdb.Expire(ctx, pairKey(candidateID, jobID), l.ttl).Err()
}

// Release frees the pair once the session completes or errors out.
func (l *SessionLocks) Release(ctx context.Context, candidateID, jobID int64) error {
	return l.rdb.Del(ctx, pairKey(candidateID, jobID)).Err()
}
