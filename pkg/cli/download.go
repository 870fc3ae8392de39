package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/codebind/pkg/cli/config"
	"github.com/m-mizutani/codebind/pkg/domain/model"
	"github.com/m-mizutani/codebind/pkg/domain/types"
	"github.com/m-mizutani/codebind/pkg/infra/notify"
	"github.com/m-mizutani/codebind/pkg/infra/schemas"
	"github.com/m-mizutani/codebind/pkg/infra/tempdir"
	"github.com/m-mizutani/codebind/pkg/usecase"
)

func cmdDownload(stdout, stderr io.Writer) *cli.Command {
	var (
		awsCfg      config.AWS
		downloadCfg config.Download
		configPath  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML config file with default settings",
			Destination: &configPath,
			Sources:     cli.EnvVars("CODEBIND_CONFIG"),
		},
	}
	flags = append(flags, downloadCfg.Flags()...)
	flags = append(flags, awsCfg.Flags()...)

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Generate (if needed) and download code bindings for a schema",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configPath != "" {
				f, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				awsCfg.Merge(f, c.IsSet)
				if err := downloadCfg.Merge(f, c.IsSet); err != nil {
					return err
				}
			}
			logger.Debug("AWS configuration", "aws", awsCfg)

			lang, err := model.LookupLanguage(downloadCfg.Language)
			if err != nil {
				return err
			}

			dest, err := filepath.Abs(downloadCfg.Destination)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve destination directory", goerr.V("dest", downloadCfg.Destination))
			}

			client, err := schemas.NewClient(ctx, awsCfg.ClientOptions()...)
			if err != nil {
				return goerr.Wrap(err, "failed to create schema registry client")
			}

			disposer := tempdir.NewDisposer()
			defer func() {
				if err := disposer.Dispose(ctx); err != nil {
					logger.Warn("Failed to dispose temporary folders", "error", err)
				}
			}()

			uc := usecase.NewCodeDownload(
				client,
				tempdir.NewProvider(downloadCfg.TempDir, types.AppName, disposer),
				notify.NewConsole(stderr),
				downloadCfg.PollerOptions()...,
			)

			req := model.NewDownloadRequest(downloadCfg.Registry, downloadCfg.Schema, downloadCfg.SchemaVersion, lang, dest)
			corePath, err := uc.DownloadCode(ctx, req)
			if err != nil {
				return goerr.Wrap(err, "failed to download code binding",
					goerr.V("registry", req.RegistryName),
					goerr.V("schema", req.SchemaName),
				)
			}

			if corePath == "" {
				fmt.Fprintf(stdout, "Code extracted to %s (no %s found in archive)\n", dest, req.CoreFileName)
				return nil
			}

			fmt.Fprintln(stdout, corePath)
			return nil
		},
	}
}
