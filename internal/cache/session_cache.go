package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"legiscore/internal/model"
)

const sessionTTL = 24 * time.Hour

// SessionCache tracks each user's active scoring session (the in_progress
// assignment), backing the one-bill-at-a-time guard without a Mongo query
// on every request
type SessionCache interface {
	Set(ctx context.Context, userID string, assignment *model.Assignment) error
	Get(ctx context.Context, userID string) (*model.Assignment, error)
	Delete(ctx context.Context, userID string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func (c *sessionCache) Set(ctx context.Context, userID string, assignment *model.Assignment) error {
	data, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "session:"+userID, data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, userID string) (*model.Assignment, error) {
	data, err := c.client.Get(ctx, "session:"+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var assignment model.Assignment
	if err := json.Unmarshal([]byte(data), &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *sessionCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "session:"+userID).Err()
}
