package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"safesound/internal/platform/redis"
)

const activationKeyPrefix = "activation:"

// RedisCodeStore keeps activation codes in Redis so pending activations
// survive restarts and expire without a sweeper.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func (s *RedisCodeStore) SaveActivation(ctx context.Context, code, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, activationKeyPrefix+code, email, ttl).Err(); err != nil {
		return fmt.Errorf("save activation code: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) TakeActivation(ctx context.Context, code string) (string, error) {
	email, err := s.client.GetDel(ctx, activationKeyPrefix+code).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("take activation code: %w", err)
	}
	return email, nil
}
