package interfaces

import (
	"context"

	"github.com/m-mizutani/codebind/pkg/domain/model"
)

// CodeFetcher downloads an already generated code binding archive
type CodeFetcher interface {
	Fetch(ctx context.Context, req *model.DownloadRequest) ([]byte, error)
}

// CodeGenerator starts code binding generation
type CodeGenerator interface {
	Generate(ctx context.Context, req *model.DownloadRequest) (model.GenerationStatus, error)
}

// GenerationPoller waits until code generation completes
type GenerationPoller interface {
	PollUntilComplete(ctx context.Context, req *model.DownloadRequest) error
}

// CodeExtractor places archive contents into the request's destination directory
// and returns the path of the core file, or an empty string if none was found
type CodeExtractor interface {
	Extract(ctx context.Context, archive []byte, req *model.DownloadRequest) (string, error)
}

// CodeDownloadUseCase runs the whole fetch, generate, poll and extract pipeline
type CodeDownloadUseCase interface {
	DownloadCode(ctx context.Context, req *model.DownloadRequest) (string, error)
}
