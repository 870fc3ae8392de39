package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/codebind/pkg/domain/interfaces"
	"github.com/m-mizutani/codebind/pkg/domain/model"
)

const (
	msgStart       = "Downloading code for schema %s..."
	msgGenerate    = "%s: Generating code (this may take a few seconds the first time)..."
	msgDownloading = "%s: Downloading code..."
	msgExtracting  = "%s: Extracting/copying code..."
	msgFinished    = "Downloaded code for schema %s!"
)

type schemaCodeDownloader struct {
	fetcher   interfaces.CodeFetcher
	generator interfaces.CodeGenerator
	poller    interfaces.GenerationPoller
	extractor interfaces.CodeExtractor
	notifier  interfaces.Notifier
}

// NewSchemaCodeDownloader creates the download pipeline from its stages
func NewSchemaCodeDownloader(
	fetcher interfaces.CodeFetcher,
	generator interfaces.CodeGenerator,
	poller interfaces.GenerationPoller,
	extractor interfaces.CodeExtractor,
	notifier interfaces.Notifier,
) interfaces.CodeDownloadUseCase {
	return &schemaCodeDownloader{
		fetcher:   fetcher,
		generator: generator,
		poller:    poller,
		extractor: extractor,
		notifier:  notifier,
	}
}

// NewCodeDownload wires the default stages around a schema registry client
func NewCodeDownload(
	client interfaces.SchemaRegistryClient,
	tempFolders interfaces.TempFolderProvider,
	notifier interfaces.Notifier,
	pollOpts ...PollerOption,
) interfaces.CodeDownloadUseCase {
	return NewSchemaCodeDownloader(
		NewCodeFetcher(client),
		NewCodeGenerator(client),
		NewGenerationPoller(client, pollOpts...),
		NewCodeExtractor(tempFolders),
		notifier,
	)
}

// DownloadCode fetches the code binding for req, generating it first when the
// registry has none yet, and extracts it into the destination directory. It
// returns the path of the core file, or an empty string if the archive has none.
func (d *schemaCodeDownloader) DownloadCode(ctx context.Context, req *model.DownloadRequest) (string, error) {
	logger := ctxlog.From(ctx)

	if err := req.Validate(); err != nil {
		d.notifier.Error(ctx, model.UserMessage(err))
		return "", err
	}

	d.notifier.Info(ctx, fmt.Sprintf(msgStart, req.SchemaName))

	corePath, err := d.downloadCode(ctx, req)
	if err != nil {
		logger.Error("Failed to download schema code",
			"error", err,
			"registry", req.RegistryName,
			"schema", req.SchemaName,
			"language", req.Language,
			"version", req.SchemaVersion,
		)
		d.notifier.Error(ctx, model.UserMessage(err))
		return "", err
	}

	d.notifier.Info(ctx, fmt.Sprintf(msgFinished, req.SchemaName))
	logger.Info("Downloaded schema code",
		"schema", req.SchemaName,
		"dest_dir", req.DestinationDir,
		"core_file", corePath,
	)

	return corePath, nil
}

func (d *schemaCodeDownloader) downloadCode(ctx context.Context, req *model.DownloadRequest) (string, error) {
	archive, err := d.fetcher.Fetch(ctx, req)
	if err != nil {
		if !errors.Is(err, model.ErrCodeNotFound) {
			return "", err
		}

		d.notifier.Info(ctx, fmt.Sprintf(msgGenerate, req.SchemaName))
		if _, err := d.generator.Generate(ctx, req); err != nil {
			return "", err
		}

		if err := d.poller.PollUntilComplete(ctx, req); err != nil {
			return "", err
		}

		d.notifier.Info(ctx, fmt.Sprintf(msgDownloading, req.SchemaName))
		archive, err = d.fetcher.Fetch(ctx, req)
		if err != nil {
			return "", goerr.Wrap(err, "failed to fetch code binding after generation",
				goerr.V("schema", req.SchemaName),
			)
		}
	}

	d.notifier.Info(ctx, fmt.Sprintf(msgExtracting, req.SchemaName))
	return d.extractor.Extract(ctx, archive, req)
}
