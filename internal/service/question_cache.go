package service

import (
	"context"
	"encoding/json"
	"exammaster_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

// QuestionCache holds catalog rows by id.
type QuestionCache interface {
	GetMany(ctx context.Context, ids []string) (map[string]model.Question, error)
	SetMany(ctx context.Context, questions []model.Question) error
	Invalidate(ctx context.Context, ids ...string) error
}

type RedisQuestionCache struct {
	Redis  *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisQuestionCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisQuestionCache {
	return &RedisQuestionCache{Redis: rdb, Prefix: prefix, TTL: ttl}
}

func (c *RedisQuestionCache) key(id string) string {
	return c.Prefix + id
}

func (c *RedisQuestionCache) GetMany(ctx context.Context, ids []string) (map[string]model.Question, error) {
	found := make(map[string]model.Question, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}

	vals, err := c.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var q model.Question
		// an undecodable entry is treated as a miss and rewritten on the next fill
		if err := json.Unmarshal([]byte(s), &q); err != nil {
			continue
		}
		found[q.ID] = q
	}
	return found, nil
}

func (c *RedisQuestionCache) SetMany(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	pipe := c.Redis.Pipeline()
	for i := range questions {
		data, err := json.Marshal(&questions[i])
		if err != nil {
			return err
		}
		pipe.Set(ctx, c.key(questions[i].ID), data, c.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisQuestionCache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}
	return c.Redis.Del(ctx, keys...).Err()
}
