// Command loadgen keeps a demo dashboard busy by calling its routes on a fixed interval.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
)

type options struct {
	target   string
	interval time.Duration
	paths    []string
	rounds   int
	retries  uint64
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "loadgen",
		Short:        "Generate traffic against a demo dashboard",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			err := run(ctx, &http.Client{Timeout: 10 * time.Second}, opts)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.target, "target", "http://localhost:8000", "base URL of the dashboard")
	fs.DurationVar(&opts.interval, "interval", 2*time.Second, "pause between rounds")
	fs.StringSliceVar(&opts.paths, "paths", []string{"/", "/simulate-load"}, "paths requested each round")
	fs.IntVar(&opts.rounds, "rounds", 0, "number of rounds; 0 runs until interrupted")
	fs.Uint64Var(&opts.retries, "retries", 3, "retries per request on connection errors or 5xx")
	return cmd
}

// run requests every path once per round until ctx ends or the rounds are done.
func run(ctx context.Context, client *http.Client, opts options) error {
	if len(opts.paths) == 0 {
		return errors.New("no paths to request")
	}
	if opts.interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", opts.interval)
	}
	base := strings.TrimRight(opts.target, "/")
	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	for round := 1; opts.rounds == 0 || round <= opts.rounds; round++ {
		for _, p := range opts.paths {
			start := time.Now()
			status, err := hit(ctx, client, base+p, opts.retries)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn().Err(err).Str("path", p).Msg("request failed")
				continue
			}
			log.Info().Str("path", p).Int("status", status).Dur("latency", time.Since(start)).Int("round", round).Msg("request completed")
		}
		if opts.rounds != 0 && round == opts.rounds {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func hit(ctx context.Context, client *http.Client, url string, retries uint64) (int, error) {
	var status int
	backoff := retry.WithMaxRetries(retries, retry.NewExponential(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		status = resp.StatusCode
		if status >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %d", status))
		}
		return nil
	})
	return status, err
}
