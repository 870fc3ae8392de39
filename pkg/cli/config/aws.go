package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/codebind/pkg/infra/schemas"
)

// AWS holds schema registry connection settings
type AWS struct {
	Region          string
	Profile         string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Flags returns CLI flags for AWS configuration
func (c *AWS) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "aws-region",
			Usage:       "AWS region of the schema registry (default: SDK resolution)",
			Destination: &c.Region,
			Sources:     cli.EnvVars("CODEBIND_AWS_REGION"),
		},
		&cli.StringFlag{
			Name:        "aws-profile",
			Usage:       "Shared config profile to use",
			Destination: &c.Profile,
			Sources:     cli.EnvVars("CODEBIND_AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:        "aws-endpoint",
			Usage:       "Override the schemas service endpoint",
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("CODEBIND_AWS_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "aws-access-key-id",
			Usage:       "Static access key ID (default: SDK credential chain)",
			Destination: &c.AccessKeyID,
			Sources:     cli.EnvVars("CODEBIND_AWS_ACCESS_KEY_ID"),
		},
		&cli.StringFlag{
			Name:        "aws-secret-access-key",
			Usage:       "Static secret access key",
			Destination: &c.SecretAccessKey,
			Sources:     cli.EnvVars("CODEBIND_AWS_SECRET_ACCESS_KEY"),
		},
		&cli.StringFlag{
			Name:        "aws-session-token",
			Usage:       "Static session token",
			Destination: &c.SessionToken,
			Sources:     cli.EnvVars("CODEBIND_AWS_SESSION_TOKEN"),
		},
	}
}

// Merge fills settings not given on the command line from the config file
func (c *AWS) Merge(f *File, isSet func(string) bool) {
	if f == nil {
		return
	}
	if !isSet("aws-region") && f.AWS.Region != "" {
		c.Region = f.AWS.Region
	}
	if !isSet("aws-profile") && f.AWS.Profile != "" {
		c.Profile = f.AWS.Profile
	}
	if !isSet("aws-endpoint") && f.AWS.Endpoint != "" {
		c.Endpoint = f.AWS.Endpoint
	}
}

// ClientOptions converts the settings into schema client options
func (c *AWS) ClientOptions() []schemas.Option {
	var opts []schemas.Option
	if c.Region != "" {
		opts = append(opts, schemas.WithRegion(c.Region))
	}
	if c.Profile != "" {
		opts = append(opts, schemas.WithProfile(c.Profile))
	}
	if c.Endpoint != "" {
		opts = append(opts, schemas.WithEndpoint(c.Endpoint))
	}
	if c.AccessKeyID != "" {
		opts = append(opts, schemas.WithStaticCredentials(c.AccessKeyID, c.SecretAccessKey, c.SessionToken))
	}
	return opts
}
