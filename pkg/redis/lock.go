package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SyncLockPrefix is the prefix of the per player sync locks, shared by the api and the scheduler.
const SyncLockPrefix = "sync"

// ErrLockHeld means another process holds the lock.
var ErrLockHeld = errors.New("lock is held by another process")

// LockHeldError tells when the current holder's lock expires.
type LockHeldError struct {
	RetryAfter time.Duration
}

func (e *LockHeldError) Error() string {
	return ErrLockHeld.Error()
}

func (e *LockHeldError) Unwrap() error {
	return ErrLockHeld
}

// LockClient is the part of the redis client used by the locks.
type LockClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// KeyLock is a SETNX lock with a TTL, one key per id.
type KeyLock struct {
	client LockClient
	prefix string
	ttl    time.Duration
}

// NewKeyLock creates the lock. A non positive ttl defaults to two minutes.
func NewKeyLock(client LockClient, prefix string, ttl time.Duration) *KeyLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	return &KeyLock{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key generates a consistent hash-based key for the id.
func (l *KeyLock) Key(id string) string {
	hasher := sha256.New()
	hasher.Write([]byte(strings.ToLower(id)))
	keyHash := hex.EncodeToString(hasher.Sum(nil))

	return fmt.Sprintf("%s:%s", l.prefix, keyHash)
}

// Acquire takes the lock, or returns a *LockHeldError with the remaining time of the holder.
func (l *KeyLock) Acquire(ctx context.Context, id string) error {
	key := l.Key(id)

	acquired, err := l.client.SetNX(ctx, key, "processing", l.ttl).Result()
	if err != nil {
		return fmt.Errorf("couldn't check the lock %s on redis: %w", key, err)
	}

	if acquired {
		return nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		// Missing or not expiring, the caller just retries.
		return &LockHeldError{}
	}

	return &LockHeldError{RetryAfter: ttl}
}

// Release frees the lock even when the context was cancelled.
func (l *KeyLock) Release(ctx context.Context, id string) error {
	key := l.Key(id)
	if err := l.client.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
		return fmt.Errorf("couldn't release the lock %s: %w", key, err)
	}
	return nil
}
