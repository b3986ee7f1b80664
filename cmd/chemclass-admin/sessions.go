package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	redisstore "github.com/ghugn/chem-class-git/internal/adapters/redis"
	"github.com/ghugn/chem-class-git/internal/bootstrap"
	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/service"
)

// sessionAdmin is the part of the redis session store the CLI drives.
type sessionAdmin interface {
	Prefix() string
	Scan(ctx context.Context, fn func(redisstore.ScopeInfo) error) error
	Purge(ctx context.Context) (int, error)
	Destroy(ctx context.Context, scopeID string) error
}

// openSessions connects to Redis and returns the session store with a closer.
func openSessions(cctx *commandContext) (sessionAdmin, func(), error) {
	client, err := bootstrap.ConnectRedis(cctx.Ctx, bootstrap.RedisOptions{
		Config: cctx.Config.Redis,
		Logger: cctx.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	closeFn := func() {
		if cerr := client.Close(); cerr != nil && !errors.Is(cerr, redis.ErrClosed) {
			cctx.Logger.Warn("close redis failed", "error", cerr)
		}
	}
	store := redisstore.NewSessionStore(client, redisstore.SessionStoreOptions{
		Prefix: cctx.Config.Session.KeyPrefix,
		TTL:    cctx.Config.Session.TTL,
	})
	return store, closeFn, nil
}

type sessionRow struct {
	ID       string
	Email    string
	Role     string
	SignedIn bool
	TTL      time.Duration
}

// summarize reads the user record of a scope. The token field is never copied.
func summarize(info redisstore.ScopeInfo) sessionRow {
	row := sessionRow{ID: info.ID, TTL: info.TTL, Email: "-", Role: "-"}
	row.SignedIn = strings.TrimSpace(info.Fields[service.SessionTokenKey]) != ""
	raw := strings.TrimSpace(info.Fields[service.SessionUserKey])
	if raw == "" {
		return row
	}
	u, err := domainauth.ParseUser(raw)
	if err != nil {
		row.Email = "(unreadable)"
		return row
	}
	if u.Email != "" {
		row.Email = u.Email
	}
	if u.Role != "" {
		row.Role = u.Role
	}
	return row
}

func runListSessions(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	signedIn := fs.Bool("signed-in", false, "only show sessions holding an API token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeFn, err := openSessions(cctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return listSessions(cctx.Ctx, store, cctx.Stdout, *signedIn)
}

func listSessions(ctx context.Context, store sessionAdmin, out io.Writer, signedInOnly bool) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "SESSION\tEMAIL\tROLE\tSIGNED IN\tEXPIRES IN"); err != nil {
		return err
	}
	count := 0
	err := store.Scan(ctx, func(info redisstore.ScopeInfo) error {
		row := summarize(info)
		if signedInOnly && !row.SignedIn {
			return nil
		}
		count++
		return writef(tw, "%s\t%s\t%s\t%t\t%s\n", row.ID, row.Email, row.Role, row.SignedIn, formatTTL(row.TTL))
	})
	if err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(out, "%d session(s) under prefix %q\n", count, store.Prefix())
}

func formatTTL(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Truncate(time.Second).String()
}

func runPurgeSessions(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("purge-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	dryRun := fs.Bool("dry-run", false, "count sessions without deleting them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeFn, err := openSessions(cctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return purgeSessions(cctx, store, *yes, *dryRun)
}

func purgeSessions(cctx *commandContext, store sessionAdmin, yes, dryRun bool) error {
	if dryRun {
		count := 0
		if err := store.Scan(cctx.Ctx, func(redisstore.ScopeInfo) error {
			count++
			return nil
		}); err != nil {
			return fmt.Errorf("scan sessions: %w", err)
		}
		return writef(cctx.Stdout, "[dry-run] would delete %d session(s)\n", count)
	}

	if !yes {
		msg := fmt.Sprintf("This signs out every user (prefix %q).", store.Prefix())
		ok, err := confirmAction(cctx.Stdin, cctx.Stdout, msg)
		if err != nil {
			return err
		}
		if !ok {
			return writeln(cctx.Stdout, "Aborted.")
		}
	}

	removed, err := store.Purge(cctx.Ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	cctx.Logger.InfoContext(cctx.Ctx, "sessions purged", "count", removed)
	return writef(cctx.Stdout, "Deleted %d session(s)\n", removed)
}

func runEndSession(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("end-session", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: chemclass-admin end-session <session-id>")
	}

	store, closeFn, err := openSessions(cctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return endSession(cctx, store, fs.Arg(0))
}

func endSession(cctx *commandContext, store sessionAdmin, sid string) error {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return errors.New("session id is required")
	}
	if err := store.Destroy(cctx.Ctx, sid); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	cctx.Logger.InfoContext(cctx.Ctx, "session ended", "session_id", sid)
	return writef(cctx.Stdout, "Session %s ended\n", sid)
}

func confirmAction(in io.Reader, out io.Writer, message string) (bool, error) {
	if err := writeln(out, message); err != nil {
		return false, err
	}
	if err := writef(out, "Continue? [y/N]: "); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
