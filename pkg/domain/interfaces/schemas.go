package interfaces

import (
	"context"

	"github.com/m-mizutani/codebind/pkg/domain/model"
)

// SchemaRegistryClient defines the code binding operations of a schema registry.
// Implementations translate service failures into model.ErrCodeNotFound and
// model.ErrGenerationConflict so callers can match them with errors.Is.
type SchemaRegistryClient interface {
	// GetCodeBindingSource downloads the generated code binding archive
	GetCodeBindingSource(ctx context.Context, language, registry, schema, version string) ([]byte, error)

	// PutCodeBinding starts code generation and returns the reported status
	PutCodeBinding(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error)

	// DescribeCodeBinding returns the current code generation status
	DescribeCodeBinding(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error)
}

// TempFolderProvider creates scratch folders whose removal is owned by someone else
type TempFolderProvider interface {
	Create(ctx context.Context) (string, error)
}

// Notifier shows progress and failures to the user. Calls are fire-and-forget.
type Notifier interface {
	Info(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}
