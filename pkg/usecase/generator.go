package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"

	"github.com/m-mizutani/codebind/pkg/domain/interfaces"
	"github.com/m-mizutani/codebind/pkg/domain/model"
)

const msgFailedToGenerate = "Unable to generate schema code"

type codeGenerator struct {
	client interfaces.SchemaRegistryClient
}

// NewCodeGenerator creates a CodeGenerator backed by the schema registry
func NewCodeGenerator(client interfaces.SchemaRegistryClient) interfaces.CodeGenerator {
	return &codeGenerator{client: client}
}

// Generate starts code generation. A conflict means generation is already running
// and is reported as CREATE_IN_PROGRESS.
func (g *codeGenerator) Generate(ctx context.Context, req *model.DownloadRequest) (model.GenerationStatus, error) {
	logger := ctxlog.From(ctx)

	status, err := g.client.PutCodeBinding(ctx, req.Language, req.RegistryName, req.SchemaName, req.SchemaVersion)
	if err != nil {
		if errors.Is(err, model.ErrGenerationConflict) {
			logger.Info("Code generation already in progress",
				"schema", req.SchemaName,
				"language", req.Language,
			)
			return model.GenerationCreateInProgress, nil
		}

		logger.Error("Failed to start code generation",
			"error", err,
			"registry", req.RegistryName,
			"schema", req.SchemaName,
			"language", req.Language,
			"version", req.SchemaVersion,
		)
		return "", model.NewUserError(model.ErrGenerationFailed, msgFailedToGenerate, err)
	}

	logger.Info("Started code generation", "schema", req.SchemaName, "status", status.String())
	return status, nil
}
