package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/tomnaj/todo-app/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "task:list:"

// TaskCache caches per-user task lists in Redis. Keys carry the owning
// user id so one user's invalidation never touches another's entries.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for userID, or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, userID string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyListPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []dom.Task{}
	}
	return list, nil
}

// SetList stores the list for userID.
func (c *TaskCache) SetList(ctx context.Context, userID string, list []dom.Task) error {
	if list == nil {
		list = []dom.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyListPrefix+userID, b, c.ttl).Err()
}

// Invalidate drops the cached list for userID (cache invalidation on write).
func (c *TaskCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, keyListPrefix+userID).Err()
}
