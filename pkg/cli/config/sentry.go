package config

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/codebind/pkg/domain/types"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string
	Env string

	enabled bool
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for reporting failures (disabled if empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("CODEBIND_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "default",
			Destination: &c.Env,
			Sources:     cli.EnvVars("CODEBIND_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client when a DSN is given
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.AppName + "@" + types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry", goerr.V("env", c.Env))
	}

	c.enabled = true
	return nil
}

// Enabled reports whether failures are sent to Sentry
func (c *Sentry) Enabled() bool {
	return c.enabled
}

// Report sends err to Sentry and waits briefly for delivery
func (c *Sentry) Report(ctx context.Context, err error) {
	if !c.enabled || err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if gerr := goerr.Unwrap(err); gerr != nil {
			for k, v := range gerr.Values() {
				scope.SetExtra(k, v)
			}
		}
	})
	evID := hub.CaptureException(err)

	if !hub.Flush(2 * time.Second) {
		ctxlog.From(ctx).Warn("Timed out sending error to sentry")
	}
	if evID != nil {
		ctxlog.From(ctx).Debug("Reported error to sentry", "event_id", string(*evID))
	}
}
