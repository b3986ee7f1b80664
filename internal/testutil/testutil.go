// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Cleanup(func())
	Skip(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

const (
	pingTimeout = 2 * time.Second
	// dbLockTTL outlives any single package run.
	dbLockTTL   = 30 * time.Minute
	dbLockKey   = "chemclass:testutil:db_lock:%d"
	firstTestDB = 1
	lastTestDB  = 15
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func truthy(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// redisRequired turns a missing Redis into a test failure instead of a skip.
func redisRequired() bool {
	return truthy("TEST_REQUIRE_REDIS") || truthy("TEST_REQUIRE_INFRA")
}

func ping(addr string) error {
	c := redis.NewClient(&redis.Options{Addr: addr})
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return c.Ping(ctx).Err()
}

// findRedis returns the first address that answers PING. REDIS_ADDR, when set, is
// the only candidate.
func findRedis(t TestingTB) (string, bool) {
	t.Helper()
	candidates := []string{"redis:6379", "localhost:6379"}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		candidates = []string{addr}
	}
	for _, addr := range candidates {
		if err := ping(addr); err != nil {
			t.Logf("redis not reachable at %s: %v", addr, err)
			continue
		}
		return addr, true
	}
	return "", false
}

// reserveDB claims a logical database through a lock key in DB 0 so concurrently
// running packages never flush each other. TEST_REDIS_DB pins the index.
func reserveDB(t TestingTB, addr string) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			return db
		}
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr})
	defer meta.Close()

	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for db := firstTestDB; db <= lastTestDB; db++ {
		key := fmt.Sprintf(dbLockKey, db)
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		ok, err := meta.SetNX(ctx, key, owner, dbLockTTL).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() {
			c := redis.NewClient(&redis.Options{Addr: addr})
			defer c.Close()
			ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
			defer cancel()
			if err := c.Del(ctx, key).Err(); err != nil {
				t.Logf("release %s: %v", key, err)
			}
		})
		return db
	}

	t.Logf("all test databases locked; sharing DB %d", firstTestDB)
	return firstTestDB
}

// SetupTestRedis returns a client on an empty database and closes it when the
// test ends. Without a reachable Redis the test is skipped, or failed when
// TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr, ok := findRedis(t)
	if !ok {
		if redisRequired() {
			t.Fatalf("redis not available for testing")
		}
		t.Skip("redis not available for testing")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: reserveDB(t, addr)})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush test database at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
