package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PublishLock guards the external publish call of one post.
// Release only drops the lock held under the token returned by Acquire.
type PublishLock interface {
	Acquire(ctx context.Context, key string) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

// RedisLocker is the subset of the Redis client the lock needs.
type RedisLocker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	DeleteIfEqual(ctx context.Context, key, value string) (bool, error)
}

type redisPublishLock struct {
	client RedisLocker
	ttl    time.Duration
}

func NewRedisPublishLock(client RedisLocker, ttl time.Duration) PublishLock {
	return &redisPublishLock{client: client, ttl: ttl}
}

func lockKey(key string) string {
	return "socialdash:lock:" + key
}

func (l *redisPublishLock) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, lockKey(key), token, l.ttl)
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *redisPublishLock) Release(ctx context.Context, key, token string) error {
	if token == "" {
		return nil
	}
	// false means the key expired and may now belong to another request
	_, err := l.client.DeleteIfEqual(ctx, lockKey(key), token)
	return err
}

type noopPublishLock struct{}

// NewNoopPublishLock always grants the lock. Used when Redis is not configured.
func NewNoopPublishLock() PublishLock {
	return noopPublishLock{}
}

func (noopPublishLock) Acquire(context.Context, string) (string, bool, error) { return "", true, nil }

func (noopPublishLock) Release(context.Context, string, string) error { return nil }
