package s3list

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// MaxPageSize is the most keys S3 returns from one ListObjectsV2 call.
const MaxPageSize = 1000

// Lister lists one bucket through the S3 ListObjectsV2 API.
type Lister struct {
	client s3api.S3API
	bucket string
}

// New creates a Lister for bucket. It loads AWS credentials using the
// default credential chain and applies the given options.
func New(ctx context.Context, bucket string, opts ...Option) (*Lister, error) {
	if bucket == "" {
		return nil, errors.NewError("s3list", fmt.Errorf("%w: bucket name cannot be empty", errors.ErrInvalidInput))
	}

	clientCfg := &Config{
		MaxRetries: 3,
	}
	for _, opt := range opts {
		opt(clientCfg)
	}

	var cfg aws.Config
	if clientCfg.AWSConfig != nil {
		cfg = *clientCfg.AWSConfig
	} else {
		var err error
		cfg, err = config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)
	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if clientCfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(clientCfg.Endpoint)
		})
	}
	if clientCfg.Timeout > 0 {
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return NewWithClient(s3.NewFromConfig(cfg, s3Opts...), bucket), nil
}

// NewWithClient creates a Lister over a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(client s3api.S3API, bucket string) *Lister {
	return &Lister{
		client: client,
		bucket: bucket,
	}
}

// Bucket returns the listed bucket.
func (l *Lister) Bucket() string {
	return l.bucket
}

// List returns one page of the children of req.Prefix.
func (l *Lister) List(ctx context.Context, req walktypes.ListRequest) (*walktypes.Page, error) {
	if req.PageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be at least 1", errors.ErrInvalidInput)
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(l.bucket),
		MaxKeys: aws.Int32(int32(min(req.PageSize, MaxPageSize))),
	}
	if req.Prefix != "" {
		input.Prefix = aws.String(req.Prefix)
	}
	if req.Delimiter != 0 {
		input.Delimiter = aws.String(string(req.Delimiter))
	}
	if req.Cursor != "" {
		input.ContinuationToken = aws.String(req.Cursor)
	}

	output, err := l.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, translateError(err)
	}
	return convertOutput(output), nil
}

// convertOutput converts S3 output to a walker page.
func convertOutput(output *s3.ListObjectsV2Output) *walktypes.Page {
	page := &walktypes.Page{
		Prefixes:  make([]string, 0, len(output.CommonPrefixes)),
		Objects:   make([]walktypes.Object, 0, len(output.Contents)),
		Truncated: aws.ToBool(output.IsTruncated),
	}

	if page.Truncated {
		page.NextCursor = aws.ToString(output.NextContinuationToken)
	}

	for _, prefix := range output.CommonPrefixes {
		page.Prefixes = append(page.Prefixes, aws.ToString(prefix.Prefix))
	}

	for _, obj := range output.Contents {
		page.Objects = append(page.Objects, walktypes.Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
			StorageClass: string(obj.StorageClass),
		})
	}

	return page
}

var _ walktypes.Lister = (*Lister)(nil)
