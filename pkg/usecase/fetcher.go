package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/codebind/pkg/domain/interfaces"
	"github.com/m-mizutani/codebind/pkg/domain/model"
)

type codeFetcher struct {
	client interfaces.SchemaRegistryClient
}

// NewCodeFetcher creates a CodeFetcher backed by the schema registry
func NewCodeFetcher(client interfaces.SchemaRegistryClient) interfaces.CodeFetcher {
	return &codeFetcher{client: client}
}

// Fetch downloads the generated archive. A missing archive is reported as
// model.ErrCodeNotFound so the caller can start generation.
func (f *codeFetcher) Fetch(ctx context.Context, req *model.DownloadRequest) ([]byte, error) {
	logger := ctxlog.From(ctx)

	data, err := f.client.GetCodeBindingSource(ctx, req.Language, req.RegistryName, req.SchemaName, req.SchemaVersion)
	if err != nil {
		if errors.Is(err, model.ErrCodeNotFound) {
			logger.Debug("Code binding not generated yet",
				"registry", req.RegistryName,
				"schema", req.SchemaName,
				"language", req.Language,
			)
			return nil, err
		}

		logger.Error("Failed to fetch code binding",
			"error", err,
			"registry", req.RegistryName,
			"schema", req.SchemaName,
			"language", req.Language,
			"version", req.SchemaVersion,
		)
		return nil, goerr.Wrap(err, "failed to fetch code binding", goerr.V("schema", req.SchemaName))
	}

	if len(data) == 0 {
		return nil, goerr.New("code binding archive is empty",
			goerr.V("schema", req.SchemaName),
			goerr.V("language", req.Language),
		)
	}

	logger.Debug("Fetched code binding", "schema", req.SchemaName, "size_bytes", len(data))
	return data, nil
}
