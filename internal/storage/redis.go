package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	inErrors "github.com/Alturino/tgcart/internal/errors"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores values with the given ttl; zero keeps them forever.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(c context.Context, key string) (string, error) {
	v, err := r.client.Get(c, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", inErrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed getting key=%s from redis with error=%w", key, err)
	}
	return v, nil
}

func (r *Redis) Set(c context.Context, key string, value string) error {
	if err := r.client.Set(c, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed setting key=%s in redis with error=%w", key, err)
	}
	return nil
}

func (r *Redis) Delete(c context.Context, key string) error {
	if err := r.client.Del(c, key).Err(); err != nil {
		return fmt.Errorf("failed deleting key=%s from redis with error=%w", key, err)
	}
	return nil
}
