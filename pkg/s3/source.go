package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/aneilbaboo/accesscontrol-plus/pkg/policy"
)

// Client defines the interface for S3 operations used by Source.
type Client interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Source loads a YAML policy document from a single S3 object. It implements
// policy.DocumentSource and is safe for concurrent use.
type Source struct {
	client Client
	bucket string
	key    string
}

// Option defines a function that configures Source construction.
type Option func(*sourceOptions)

type sourceOptions struct {
	httpClient    *http.Client
	client        Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*awss3.Options)
}

// WithClient sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithClient(client Client) Option {
	return func(o *sourceOptions) {
		o.client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *sourceOptions) {
		o.httpClient = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *sourceOptions) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithClientOption adds a custom S3 client option.
func WithClientOption(option func(*awss3.Options)) Option {
	return func(o *sourceOptions) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// NewSource creates a policy source reading the object named by cfg.
func NewSource(ctx context.Context, cfg Config, opts ...Option) (*Source, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, ErrInvalidConfig
	}

	options := &sourceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// If a pre-configured S3 client is provided, use it directly
	var client Client
	if options.client != nil {
		client = options.client
	} else {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		// Add credentials if provided
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}

		awsOptions = append(awsOptions, options.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = awss3.NewFromConfig(awsConfig, func(o *awss3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range options.clientOptions {
				opt(o)
			}
		})
	}

	return &Source{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
	}, nil
}

// LoadDocument fetches and parses the policy object.
func (s *Source) LoadDocument(ctx context.Context) (*policy.Document, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, classifyError(err, "get policy object")
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadPolicy, err)
	}

	return policy.ParseYAML(data)
}

// classifyError converts S3 errors to domain-specific errors.
func classifyError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, err)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "NoSuchKey":
			return fmt.Errorf("%w: %s", ErrObjectNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			// Include error code in message for debugging
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}
