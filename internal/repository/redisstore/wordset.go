package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"lingo/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the list key holding JSON-encoded word sets
const DefaultKey = "lingo:wordsets"

// listClient is the subset of redis.Cmdable the store needs
type listClient interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// WordSetStore implements repository.WordSetRepository on a Redis list
type WordSetStore struct {
	client listClient
	key    string
}

// NewWordSetStore creates a store for the given list key
func NewWordSetStore(client listClient, key string) *WordSetStore {
	if key == "" {
		key = DefaultKey
	}
	return &WordSetStore{client: client, key: key}
}

// ListWordSets decodes every entry of the list
func (s *WordSetStore) ListWordSets(ctx context.Context) ([]domain.WordSet, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}

	sets := make([]domain.WordSet, 0, len(entries))
	for i, entry := range entries {
		var ws domain.WordSet
		if err := json.Unmarshal([]byte(entry), &ws); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", s.key, i, err)
		}
		sets = append(sets, ws)
	}
	return sets, nil
}

// SaveWordSets replaces the list contents atomically
func (s *WordSetStore) SaveWordSets(ctx context.Context, sets []domain.WordSet) error {
	values := make([]interface{}, 0, len(sets))
	for _, ws := range sets {
		data, err := json.Marshal(ws)
		if err != nil {
			return fmt.Errorf("encode word set: %w", err)
		}
		values = append(values, data)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.RPush(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}
