package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/ghugn/chem-class-git/internal/adapters/redis"
	"github.com/ghugn/chem-class-git/internal/testutil"
)

type fakeSessions struct {
	scopes    []redisstore.ScopeInfo
	destroyed []string
	purged    bool
	scanErr   error
}

func (f *fakeSessions) Prefix() string { return "chemclass:sess:" }

func (f *fakeSessions) Scan(_ context.Context, fn func(redisstore.ScopeInfo) error) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	for _, s := range f.scopes {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSessions) Purge(context.Context) (int, error) {
	f.purged = true
	return len(f.scopes), nil
}

func (f *fakeSessions) Destroy(_ context.Context, scopeID string) error {
	f.destroyed = append(f.destroyed, scopeID)
	return nil
}

func newCommandContext(stdin string) (*commandContext, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &commandContext{
		Ctx:    context.Background(),
		Logger: testutil.DiscardLogger(),
		Stdout: out,
		Stdin:  strings.NewReader(stdin),
	}, out
}

func sampleScopes() []redisstore.ScopeInfo {
	return []redisstore.ScopeInfo{
		{
			ID: "sid-admin",
			Fields: map[string]string{
				"token": "secret-admin-token",
				"user":  `{"id":"1","full_name":"Trần Thị B","email":"admin@example.com","role":"ADMIN"}`,
			},
			TTL: 90 * time.Minute,
		},
		{ID: "sid-guest", Fields: map[string]string{"theme": "dark"}},
	}
}

func TestCommandsRegistered(t *testing.T) {
	cmds := commands()
	for _, name := range []string{"list-sessions", "purge-sessions", "end-session", "api-health"} {
		c, ok := cmds[name]
		require.True(t, ok, name)
		assert.Equal(t, name, c.name)
		assert.NotNil(t, c.run)
	}

	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))
	assert.Contains(t, buf.String(), "purge-sessions")
}

func TestSummarize(t *testing.T) {
	scopes := sampleScopes()

	row := summarize(scopes[0])
	assert.Equal(t, "admin@example.com", row.Email)
	assert.Equal(t, "ADMIN", row.Role)
	assert.True(t, row.SignedIn)

	guest := summarize(scopes[1])
	assert.Equal(t, "-", guest.Email)
	assert.False(t, guest.SignedIn)

	broken := summarize(redisstore.ScopeInfo{ID: "x", Fields: map[string]string{"user": "{"}})
	assert.Equal(t, "(unreadable)", broken.Email)
}

func TestListSessions(t *testing.T) {
	store := &fakeSessions{scopes: sampleScopes()}
	var out bytes.Buffer

	require.NoError(t, listSessions(context.Background(), store, &out, false))
	text := out.String()
	assert.Contains(t, text, "admin@example.com")
	assert.Contains(t, text, "sid-guest")
	assert.Contains(t, text, "2 session(s)")
	assert.NotContains(t, text, "secret-admin-token")

	out.Reset()
	require.NoError(t, listSessions(context.Background(), store, &out, true))
	assert.NotContains(t, out.String(), "sid-guest")
	assert.Contains(t, out.String(), "1 session(s)")
}

func TestListSessionsScanError(t *testing.T) {
	store := &fakeSessions{scanErr: errors.New("boom")}
	err := listSessions(context.Background(), store, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan sessions")
}

func TestPurgeSessions(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		store := &fakeSessions{scopes: sampleScopes()}
		cctx, out := newCommandContext("")
		require.NoError(t, purgeSessions(cctx, store, false, true))
		assert.False(t, store.purged)
		assert.Contains(t, out.String(), "would delete 2")
	})

	t.Run("declined", func(t *testing.T) {
		store := &fakeSessions{scopes: sampleScopes()}
		cctx, out := newCommandContext("n\n")
		require.NoError(t, purgeSessions(cctx, store, false, false))
		assert.False(t, store.purged)
		assert.Contains(t, out.String(), "Aborted.")
	})

	t.Run("confirmed", func(t *testing.T) {
		store := &fakeSessions{scopes: sampleScopes()}
		cctx, out := newCommandContext("yes\n")
		require.NoError(t, purgeSessions(cctx, store, false, false))
		assert.True(t, store.purged)
		assert.Contains(t, out.String(), "Deleted 2 session(s)")
	})

	t.Run("yes flag", func(t *testing.T) {
		store := &fakeSessions{scopes: sampleScopes()}
		cctx, out := newCommandContext("")
		require.NoError(t, purgeSessions(cctx, store, true, false))
		assert.True(t, store.purged)
		assert.NotContains(t, out.String(), "Continue?")
	})
}

func TestEndSession(t *testing.T) {
	store := &fakeSessions{}
	cctx, out := newCommandContext("")

	require.NoError(t, endSession(cctx, store, " sid-admin "))
	assert.Equal(t, []string{"sid-admin"}, store.destroyed)
	assert.Contains(t, out.String(), "Session sid-admin ended")

	require.Error(t, endSession(cctx, store, "  "))
}

func TestRunEndSessionRequiresID(t *testing.T) {
	cctx, _ := newCommandContext("")
	err := runEndSession(cctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

func TestCheckAPI(t *testing.T) {
	cctx, out := newCommandContext("")
	require.NoError(t, checkAPI(cctx, stubHealth{}, "http://api.local", time.Second))
	assert.Contains(t, out.String(), "API http://api.local ok")

	out.Reset()
	err := checkAPI(cctx, stubHealth{err: errors.New("connection refused")}, "http://api.local", time.Second)
	require.Error(t, err)
	assert.Contains(t, out.String(), "unreachable")
}

func TestConfirmAction(t *testing.T) {
	var out bytes.Buffer
	ok, err := confirmAction(strings.NewReader("Y"), &out, "Proceed")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = confirmAction(strings.NewReader(""), &out, "Proceed")
	require.NoError(t, err)
	assert.False(t, ok)
}
