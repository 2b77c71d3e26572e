package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"legiscore/internal/model"
)

const draftTTL = 12 * time.Hour

// DraftCache holds the working draft in Redis so every mutation reads and
// writes memory-speed state while Mongo persistence runs behind it
type DraftCache interface {
	Set(ctx context.Context, draft *model.Draft) error
	Get(ctx context.Context, userID, billID string) (*model.Draft, error)
	Delete(ctx context.Context, userID, billID string) error
}

type draftCache struct {
	client *redis.Client
}

// NewDraftCache creates a new draft cache
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{
		client: client,
	}
}

func draftKey(userID, billID string) string {
	return "draft:" + userID + ":" + billID
}

func (c *draftCache) Set(ctx context.Context, draft *model.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, draftKey(draft.UserID, draft.BillID), data, draftTTL).Err()
}

func (c *draftCache) Get(ctx context.Context, userID, billID string) (*model.Draft, error) {
	data, err := c.client.Get(ctx, draftKey(userID, billID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *draftCache) Delete(ctx context.Context, userID, billID string) error {
	return c.client.Del(ctx, draftKey(userID, billID)).Err()
}
