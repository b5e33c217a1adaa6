// utils/vote_session.go
package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// VoteSessions tracks the per-session "already voted" flag. Votes are never
// persisted to the users collection or tallied anywhere; the flag only keeps
// the ballot closed for the rest of the session. Redis backs the flag when
// available so it survives instance restarts; otherwise an in-memory map
// serves a single instance.
type VoteSessions struct {
	redis *redis.Client
	mu    sync.RWMutex
	local map[string]string // userID -> candidateID
}

func NewVoteSessions(redisClient *redis.Client) *VoteSessions {
	return &VoteSessions{
		redis: redisClient,
		local: make(map[string]string),
	}
}

// MarkVoted closes the ballot for this session.
func (v *VoteSessions) MarkVoted(userID, candidateID string, ttl time.Duration) error {
	if v.redis != nil {
		return v.redis.Set(context.Background(), "vote_session:"+userID, candidateID, ttl).Err()
	}
	v.mu.Lock()
	v.local[userID] = candidateID
	v.mu.Unlock()
	return nil
}

// Voted reports whether this session already cast a ballot and for whom.
func (v *VoteSessions) Voted(userID string) (string, bool, error) {
	if v.redis != nil {
		candidateID, err := v.redis.Get(context.Background(), "vote_session:"+userID).Result()
		if err == redis.Nil {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return candidateID, true, nil
	}
	v.mu.RLock()
	candidateID, ok := v.local[userID]
	v.mu.RUnlock()
	return candidateID, ok, nil
}

// Clear drops the flag, e.g. when the session ends on logout.
func (v *VoteSessions) Clear(userID string) error {
	if v.redis != nil {
		return v.redis.Del(context.Background(), "vote_session:"+userID).Err()
	}
	v.mu.Lock()
	delete(v.local, userID)
	v.mu.Unlock()
	return nil
}
