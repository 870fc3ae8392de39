package schemas

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsschemas "github.com/aws/aws-sdk-go-v2/service/schemas"
	"github.com/aws/aws-sdk-go-v2/service/schemas/types"
	"github.com/aws/smithy-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/codebind/pkg/domain/interfaces"
	"github.com/m-mizutani/codebind/pkg/domain/model"
)

// API is the subset of the EventBridge Schemas client used for code bindings
type API interface {
	GetCodeBindingSource(ctx context.Context, params *awsschemas.GetCodeBindingSourceInput, optFns ...func(*awsschemas.Options)) (*awsschemas.GetCodeBindingSourceOutput, error)
	PutCodeBinding(ctx context.Context, params *awsschemas.PutCodeBindingInput, optFns ...func(*awsschemas.Options)) (*awsschemas.PutCodeBindingOutput, error)
	DescribeCodeBinding(ctx context.Context, params *awsschemas.DescribeCodeBindingInput, optFns ...func(*awsschemas.Options)) (*awsschemas.DescribeCodeBindingOutput, error)
}

type options struct {
	region       string
	profile      string
	endpoint     string
	accessKey    string
	secretKey    string
	sessionToken string
}

// Option configures the schema registry client
type Option func(*options)

// WithRegion sets the AWS region
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithProfile selects a shared config profile
func WithProfile(profile string) Option {
	return func(o *options) {
		o.profile = profile
	}
}

// WithEndpoint overrides the service endpoint, e.g. for a local emulator
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithStaticCredentials uses fixed credentials instead of the default chain
func WithStaticCredentials(accessKey, secretKey, sessionToken string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
		o.sessionToken = sessionToken
	}
}

type client struct {
	api API
}

// NewClient creates a schema registry client backed by the AWS SDK
func NewClient(ctx context.Context, opts ...Option) (interfaces.SchemaRegistryClient, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.region))
	}
	if cfg.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.profile))
	}
	if cfg.accessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.accessKey, cfg.secretKey, cfg.sessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load AWS config",
			goerr.V("region", cfg.region),
			goerr.V("profile", cfg.profile),
		)
	}

	api := awsschemas.NewFromConfig(awsCfg, func(o *awsschemas.Options) {
		if cfg.endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.endpoint)
		}
	})

	return NewClientWithAPI(api), nil
}

// NewClientWithAPI wraps an existing Schemas API implementation
func NewClientWithAPI(api API) interfaces.SchemaRegistryClient {
	return &client{api: api}
}

// GetCodeBindingSource downloads the generated code binding archive
func (c *client) GetCodeBindingSource(ctx context.Context, language, registry, schema, version string) ([]byte, error) {
	resp, err := c.api.GetCodeBindingSource(ctx, &awsschemas.GetCodeBindingSourceInput{
		Language:      aws.String(language),
		RegistryName:  aws.String(registry),
		SchemaName:    aws.String(schema),
		SchemaVersion: aws.String(version),
	})
	if err != nil {
		return nil, translateError(err, "failed to get code binding source", language, registry, schema, version)
	}

	return resp.Body, nil
}

// PutCodeBinding starts code generation for the schema version
func (c *client) PutCodeBinding(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
	resp, err := c.api.PutCodeBinding(ctx, &awsschemas.PutCodeBindingInput{
		Language:      aws.String(language),
		RegistryName:  aws.String(registry),
		SchemaName:    aws.String(schema),
		SchemaVersion: aws.String(version),
	})
	if err != nil {
		return "", translateError(err, "failed to put code binding", language, registry, schema, version)
	}

	return model.GenerationStatus(resp.Status), nil
}

// DescribeCodeBinding returns the current code generation status
func (c *client) DescribeCodeBinding(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
	resp, err := c.api.DescribeCodeBinding(ctx, &awsschemas.DescribeCodeBindingInput{
		Language:      aws.String(language),
		RegistryName:  aws.String(registry),
		SchemaName:    aws.String(schema),
		SchemaVersion: aws.String(version),
	})
	if err != nil {
		return "", translateError(err, "failed to describe code binding", language, registry, schema, version)
	}

	return model.GenerationStatus(resp.Status), nil
}

// translateError maps typed service exceptions onto domain sentinels
func translateError(err error, msg, language, registry, schema, version string) error {
	opts := []goerr.Option{
		goerr.V("language", language),
		goerr.V("registry", registry),
		goerr.V("schema", schema),
		goerr.V("version", version),
	}

	var notFound *types.NotFoundException
	var conflict *types.ConflictException
	var apiErr smithy.APIError

	switch {
	case errors.As(err, &notFound):
		return goerr.Wrap(errors.Join(model.ErrCodeNotFound, err), msg, opts...)
	case errors.As(err, &conflict):
		return goerr.Wrap(errors.Join(model.ErrGenerationConflict, err), msg, opts...)
	case errors.As(err, &apiErr):
		opts = append(opts, goerr.V("error_code", apiErr.ErrorCode()))
		return goerr.Wrap(err, msg, opts...)
	default:
		return goerr.Wrap(err, msg, opts...)
	}
}
