// Package redis provides Redis-based adapters for chemclass.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces session scopes in a shared Redis.
const DefaultKeyPrefix = "chemclass:session:"

// DefaultTTL is the idle lifetime of a session scope.
const DefaultTTL = 7 * 24 * time.Hour

// ErrEmptyScope is returned when a write targets a blank scope id.
var ErrEmptyScope = errors.New("session scope id cannot be empty")

// SessionStore keeps each browser session as a Redis hash with a sliding TTL.
// Every Load and Save refreshes the expiry.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// SessionStoreOptions configures a SessionStore. Zero values fall back to the defaults.
type SessionStoreOptions struct {
	Prefix string
	TTL    time.Duration
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

// Prefix returns the key prefix of session scopes.
func (s *SessionStore) Prefix() string { return s.prefix }

func (s *SessionStore) key(scopeID string) string { return s.prefix + scopeID }

// Load returns all fields of the scope and slides its TTL; an unknown scope yields
// an empty map.
func (s *SessionStore) Load(ctx context.Context, scopeID string) (map[string]string, error) {
	if scopeID == "" {
		return map[string]string{}, nil
	}
	key := s.key(scopeID)
	var get *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		get = p.HGetAll(ctx, key)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis load session: %w", err)
	}
	fields, err := get.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return fields, nil
}

// Save writes fields and refreshes the scope TTL in one transaction.
func (s *SessionStore) Save(ctx context.Context, scopeID string, fields map[string]string) error {
	if scopeID == "" {
		return ErrEmptyScope
	}
	if len(fields) == 0 {
		return nil
	}

	key := s.key(scopeID)
	values := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		values = append(values, k, v)
	}

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, values...)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Remove deletes fields from the scope. Redis drops the hash once it is empty.
func (s *SessionStore) Remove(ctx context.Context, scopeID string, fields ...string) error {
	if scopeID == "" || len(fields) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key(scopeID), fields...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

// Destroy deletes the scope.
func (s *SessionStore) Destroy(ctx context.Context, scopeID string) error {
	if scopeID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(scopeID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// ScopeInfo describes a stored session scope for operator tooling.
type ScopeInfo struct {
	ID     string
	Fields map[string]string
	TTL    time.Duration
}

// Scan walks every session scope, calling fn for each. Iteration stops at the first error.
func (s *SessionStore) Scan(ctx context.Context, fn func(ScopeInfo) error) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fields, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("redis hgetall %s: %w", key, err)
		}
		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("redis ttl %s: %w", key, err)
		}
		if err := fn(ScopeInfo{ID: key[len(s.prefix):], Fields: fields, TTL: ttl}); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

// Purge deletes every session scope and returns how many were removed.
func (s *SessionStore) Purge(ctx context.Context) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		n, err := s.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return removed, fmt.Errorf("redis del %s: %w", iter.Val(), err)
		}
		removed += int(n)
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan: %w", err)
	}
	return removed, nil
}
