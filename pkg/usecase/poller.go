package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/codebind/pkg/domain/interfaces"
	"github.com/m-mizutani/codebind/pkg/domain/model"
)

const (
	// DefaultPollInterval is the wait between status queries
	DefaultPollInterval = 2 * time.Second
	// DefaultPollMaxAttempts bounds polling to about five minutes, above the
	// roughly 250 second worst case observed for generation
	DefaultPollMaxAttempts = 150
)

type pollerConfig struct {
	interval    time.Duration
	maxAttempts int
}

// PollerOption configures the generation status poller
type PollerOption func(*pollerConfig)

// WithPollInterval sets the wait between status queries
func WithPollInterval(d time.Duration) PollerOption {
	return func(c *pollerConfig) {
		if d >= 0 {
			c.interval = d
		}
	}
}

// WithPollMaxAttempts sets how many status queries are made before giving up
func WithPollMaxAttempts(n int) PollerOption {
	return func(c *pollerConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

type generationPoller struct {
	client interfaces.SchemaRegistryClient
	cfg    pollerConfig
}

// NewGenerationPoller creates a GenerationPoller backed by the schema registry
func NewGenerationPoller(client interfaces.SchemaRegistryClient, opts ...PollerOption) interfaces.GenerationPoller {
	cfg := pollerConfig{
		interval:    DefaultPollInterval,
		maxAttempts: DefaultPollMaxAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &generationPoller{client: client, cfg: cfg}
}

// PollUntilComplete queries the generation status until it reports
// CREATE_COMPLETE. Any status other than CREATE_IN_PROGRESS fails at once.
func (p *generationPoller) PollUntilComplete(ctx context.Context, req *model.DownloadRequest) error {
	logger := ctxlog.From(ctx)

	for attempt := 1; attempt <= p.cfg.maxAttempts; attempt++ {
		status, err := p.client.DescribeCodeBinding(ctx, req.Language, req.RegistryName, req.SchemaName, req.SchemaVersion)
		if err != nil {
			logger.Error("Failed to get code generation status",
				"error", err,
				"schema", req.SchemaName,
				"attempt", attempt,
			)
			return goerr.Wrap(err, "failed to get code generation status",
				goerr.V("schema", req.SchemaName),
				goerr.V("attempt", attempt),
			)
		}

		switch status {
		case model.GenerationCreateComplete:
			logger.Info("Code generation completed", "schema", req.SchemaName, "attempts", attempt)
			return nil

		case model.GenerationCreateInProgress:
			logger.Debug("Code generation in progress", "schema", req.SchemaName, "attempt", attempt)

		default:
			return model.NewUserError(model.ErrInvalidGenerationStatus,
				fmt.Sprintf("Invalid Code generation status %s", status.String()), nil)
		}

		if attempt == p.cfg.maxAttempts {
			break
		}
		if err := sleep(ctx, p.cfg.interval); err != nil {
			return goerr.Wrap(err, "polling interrupted", goerr.V("schema", req.SchemaName))
		}
	}

	logger.Warn("Code generation did not complete in time",
		"schema", req.SchemaName,
		"max_attempts", p.cfg.maxAttempts,
		"interval", p.cfg.interval,
	)
	return model.NewUserError(model.ErrGenerationTimeout,
		fmt.Sprintf("Failed to download code for schema %s before timeout. Please try again later", req.SchemaName), nil)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
