package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/codebind/pkg/domain/model"
	"github.com/m-mizutani/codebind/pkg/usecase"
)

func TestGenerationPoller_TimesOutAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	req := newTestRequest(t.TempDir())

	for _, maxAttempts := range []int{1, 2, 5} {
		client := &MockSchemaClient{
			describeCodeBindingFunc: statusSequence(model.GenerationCreateInProgress),
		}
		poller := usecase.NewGenerationPoller(client,
			usecase.WithPollInterval(time.Millisecond),
			usecase.WithPollMaxAttempts(maxAttempts),
		)

		err := poller.PollUntilComplete(ctx, req)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrGenerationTimeout))
		gt.A(t, client.describeCalls).Length(maxAttempts)
		gt.Equal(t, model.UserMessage(err),
			"Failed to download code for schema aws.events@Widget before timeout. Please try again later")
	}
}

func TestGenerationPoller_ShortCircuitsOnComplete(t *testing.T) {
	ctx := context.Background()
	req := newTestRequest(t.TempDir())

	for k := 1; k <= 4; k++ {
		statuses := make([]model.GenerationStatus, 0, k)
		for i := 1; i < k; i++ {
			statuses = append(statuses, model.GenerationCreateInProgress)
		}
		statuses = append(statuses, model.GenerationCreateComplete)

		client := &MockSchemaClient{describeCodeBindingFunc: statusSequence(statuses...)}
		poller := usecase.NewGenerationPoller(client,
			usecase.WithPollInterval(time.Millisecond),
			usecase.WithPollMaxAttempts(10),
		)

		gt.NoError(t, poller.PollUntilComplete(ctx, req))
		gt.A(t, client.describeCalls).Length(k)
	}
}

func TestGenerationPoller_CompleteOnLastAttempt(t *testing.T) {
	client := &MockSchemaClient{
		describeCodeBindingFunc: statusSequence(
			model.GenerationCreateInProgress,
			model.GenerationCreateInProgress,
			model.GenerationCreateComplete,
		),
	}
	poller := usecase.NewGenerationPoller(client,
		usecase.WithPollInterval(time.Millisecond),
		usecase.WithPollMaxAttempts(3),
	)

	gt.NoError(t, poller.PollUntilComplete(context.Background(), newTestRequest(t.TempDir())))
	gt.A(t, client.describeCalls).Length(3)
}

func TestGenerationPoller_InvalidStatusFailsFast(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.GenerationStatus
		calls    int
		message  string
	}{
		{
			name:     "failed status first",
			statuses: []model.GenerationStatus{"CREATE_FAILED"},
			calls:    1,
			message:  "Invalid Code generation status CREATE_FAILED",
		},
		{
			name: "failed status after progress",
			statuses: []model.GenerationStatus{
				model.GenerationCreateInProgress,
				model.GenerationCreateInProgress,
				"CREATE_FAILED",
			},
			calls:   3,
			message: "Invalid Code generation status CREATE_FAILED",
		},
		{
			name:     "empty status",
			statuses: []model.GenerationStatus{""},
			calls:    1,
			message:  "Invalid Code generation status no status available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockSchemaClient{describeCodeBindingFunc: statusSequence(tt.statuses...)}
			poller := usecase.NewGenerationPoller(client,
				usecase.WithPollInterval(time.Millisecond),
				usecase.WithPollMaxAttempts(100),
			)

			err := poller.PollUntilComplete(context.Background(), newTestRequest(t.TempDir()))
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrInvalidGenerationStatus))
			gt.A(t, client.describeCalls).Length(tt.calls)
			gt.Equal(t, model.UserMessage(err), tt.message)
		})
	}
}

func TestGenerationPoller_StatusQueryError(t *testing.T) {
	cause := errors.New("service unavailable")
	client := &MockSchemaClient{
		describeCodeBindingFunc: func(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
			return "", cause
		},
	}
	poller := usecase.NewGenerationPoller(client, usecase.WithPollInterval(time.Millisecond))

	err := poller.PollUntilComplete(context.Background(), newTestRequest(t.TempDir()))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, cause))
	gt.A(t, client.describeCalls).Length(1)
}

func TestGenerationPoller_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &MockSchemaClient{
		describeCodeBindingFunc: func(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
			cancel()
			return model.GenerationCreateInProgress, nil
		},
	}
	poller := usecase.NewGenerationPoller(client,
		usecase.WithPollInterval(time.Hour),
		usecase.WithPollMaxAttempts(5),
	)

	err := poller.PollUntilComplete(ctx, newTestRequest(t.TempDir()))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, context.Canceled))
	gt.A(t, client.describeCalls).Length(1)
}

func TestGenerationPoller_IgnoresInvalidOptions(t *testing.T) {
	client := &MockSchemaClient{describeCodeBindingFunc: statusSequence(model.GenerationCreateComplete)}
	poller := usecase.NewGenerationPoller(client,
		usecase.WithPollInterval(-time.Second),
		usecase.WithPollMaxAttempts(0),
	)

	gt.NoError(t, poller.PollUntilComplete(context.Background(), newTestRequest(t.TempDir())))
	gt.A(t, client.describeCalls).Length(1)
}
