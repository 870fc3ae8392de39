package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/codebind/pkg/usecase"
)

// Download holds settings of one code binding download
type Download struct {
	Registry        string
	Schema          string
	Language        string
	SchemaVersion   string
	Destination     string
	TempDir         string
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Flags returns CLI flags for the download command
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry",
			Aliases:     []string{"r"},
			Usage:       "Schema registry name",
			Required:    true,
			Destination: &c.Registry,
			Sources:     cli.EnvVars("CODEBIND_REGISTRY"),
		},
		&cli.StringFlag{
			Name:        "schema",
			Aliases:     []string{"s"},
			Usage:       "Schema name",
			Required:    true,
			Destination: &c.Schema,
			Sources:     cli.EnvVars("CODEBIND_SCHEMA"),
		},
		&cli.StringFlag{
			Name:        "schema-version",
			Usage:       "Schema version",
			Required:    true,
			Destination: &c.SchemaVersion,
			Sources:     cli.EnvVars("CODEBIND_SCHEMA_VERSION"),
		},
		&cli.StringFlag{
			Name:        "language",
			Aliases:     []string{"l"},
			Usage:       "Code binding language (see 'languages' command)",
			Value:       "Java8",
			Destination: &c.Language,
			Sources:     cli.EnvVars("CODEBIND_LANGUAGE"),
		},
		&cli.StringFlag{
			Name:        "dest",
			Aliases:     []string{"d"},
			Usage:       "Directory to place the generated code in",
			Value:       ".",
			Destination: &c.Destination,
			Sources:     cli.EnvVars("CODEBIND_DEST"),
		},
		&cli.StringFlag{
			Name:        "temp-dir",
			Usage:       "Base directory for scratch archives (default: system temp dir)",
			Destination: &c.TempDir,
			Sources:     cli.EnvVars("CODEBIND_TEMP_DIR"),
		},
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Wait between code generation status checks",
			Value:       usecase.DefaultPollInterval,
			Destination: &c.PollInterval,
			Sources:     cli.EnvVars("CODEBIND_POLL_INTERVAL"),
		},
		&cli.IntFlag{
			Name:        "poll-max-attempts",
			Usage:       "Number of status checks before giving up",
			Value:       usecase.DefaultPollMaxAttempts,
			Destination: &c.PollMaxAttempts,
			Sources:     cli.EnvVars("CODEBIND_POLL_MAX_ATTEMPTS"),
		},
	}
}

// Merge fills settings not given on the command line from the config file
func (c *Download) Merge(f *File, isSet func(string) bool) error {
	if f == nil {
		return nil
	}
	if !isSet("language") && f.Download.Language != "" {
		c.Language = f.Download.Language
	}
	if !isSet("dest") && f.Download.Destination != "" {
		c.Destination = f.Download.Destination
	}
	if !isSet("temp-dir") && f.Download.TempDir != "" {
		c.TempDir = f.Download.TempDir
	}
	if !isSet("poll-max-attempts") && f.Download.PollMaxAttempts > 0 {
		c.PollMaxAttempts = f.Download.PollMaxAttempts
	}
	if !isSet("poll-interval") && f.Download.PollInterval != "" {
		d, err := f.Download.pollInterval()
		if err != nil {
			return err
		}
		c.PollInterval = d
	}
	return nil
}

// PollerOptions converts polling settings into poller options
func (c *Download) PollerOptions() []usecase.PollerOption {
	return []usecase.PollerOption{
		usecase.WithPollInterval(c.PollInterval),
		usecase.WithPollMaxAttempts(c.PollMaxAttempts),
	}
}
