package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultSessionTTL bounds how long an idle session's cached walk data
// survives in Redis.
const DefaultSessionTTL = 4 * time.Hour

// RedisSessionStore keeps each session as one Redis hash, so a session
// clear is a single DEL and writes are atomic per key.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSessionStore connects to Redis at addr (host:port).
func NewRedisSessionStore(addr string) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to session store at %s: %w", addr, err)
	}

	return &RedisSessionStore{
		client: client,
		prefix: "openl2m:session:",
		ttl:    DefaultSessionTTL,
	}, nil
}

// SetTTL overrides the idle-session expiry
func (s *RedisSessionStore) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

func (s *RedisSessionStore) hashKey(session string) string {
	return s.prefix + session
}

// Get reads one key from the session hash
func (s *RedisSessionStore) Get(ctx context.Context, session, key string) ([]byte, bool, error) {
	val, err := s.client.HGet(ctx, s.hashKey(session), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session get %s/%s: %w", session, key, err)
	}
	return val, true, nil
}

// Set writes one key and refreshes the session expiry
func (s *RedisSessionStore) Set(ctx context.Context, session, key string, value []byte) error {
	hk := s.hashKey(session)
	if err := s.client.HSet(ctx, hk, key, value).Err(); err != nil {
		return fmt.Errorf("session set %s/%s: %w", session, key, err)
	}
	if s.ttl > 0 {
		s.client.Expire(ctx, hk, s.ttl)
	}
	return nil
}

// Delete removes keys from the session hash
func (s *RedisSessionStore) Delete(ctx context.Context, session string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.hashKey(session), keys...).Err(); err != nil {
		return fmt.Errorf("session delete %s: %w", session, err)
	}
	return nil
}

// Clear drops the whole session
func (s *RedisSessionStore) Clear(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, s.hashKey(session)).Err(); err != nil {
		return fmt.Errorf("session clear %s: %w", session, err)
	}
	return nil
}

// Close releases the Redis connection
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
