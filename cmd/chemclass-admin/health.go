package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ghugn/chem-class-git/internal/bootstrap"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

func runAPIHealth(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("api-health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	timeout := fs.Duration("timeout", 5*time.Second, "how long to wait for the API")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := bootstrap.NewSchoolAPI(cctx.Config.API, statsd.Nop{}, cctx.Logger)
	if err != nil {
		return err
	}
	return checkAPI(cctx, client, cctx.Config.API.BaseURL, *timeout)
}

func checkAPI(cctx *commandContext, api healthChecker, baseURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(cctx.Ctx, timeout)
	defer cancel()

	start := time.Now()
	if err := api.Health(ctx); err != nil {
		if werr := writef(cctx.Stdout, "API %s unreachable: %v\n", baseURL, err); werr != nil {
			return werr
		}
		return fmt.Errorf("api health: %w", err)
	}
	return writef(cctx.Stdout, "API %s ok (%s)\n", baseURL, time.Since(start).Round(time.Millisecond))
}
