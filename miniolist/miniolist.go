// Package miniolist lists MinIO and other S3-compatible buckets for the
// recursor walker using the low-level minio-go Core API, which exposes
// ListObjectsV2 one page at a time.
package miniolist

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	walkerrors "github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// MaxPageSize is the most keys one ListObjectsV2 call returns.
const MaxPageSize = 1000

// API is the subset of *minio.Core used by the Lister.
type API interface {
	ListObjectsV2(
		bucketName, objectPrefix, startAfter, continuationToken, delimiter string,
		maxkeys int,
	) (minio.ListBucketV2Result, error)
}

// Options configures New.
type Options struct {
	// AccessKey and SecretKey are static credentials. Both empty means anonymous access.
	AccessKey string
	SecretKey string

	// Secure selects HTTPS
	Secure bool

	// Region is the bucket region, if the server requires one
	Region string
}

// Lister lists one bucket of an S3-compatible server.
type Lister struct {
	api    API
	bucket string
}

// New connects to endpoint (host:port, no scheme) and returns a Lister for bucket.
func New(endpoint, bucket string, opts Options) (*Lister, error) {
	if bucket == "" {
		return nil, walkerrors.NewError("miniolist",
			fmt.Errorf("%w: bucket name cannot be empty", walkerrors.ErrInvalidInput))
	}

	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, walkerrors.NewError("client initialization", err)
	}

	return NewWithAPI(core, bucket), nil
}

// NewWithAPI creates a Lister over an existing client, typically *minio.Core.
func NewWithAPI(api API, bucket string) *Lister {
	return &Lister{api: api, bucket: bucket}
}

// List returns one page of the children of req.Prefix.
// The Core API takes no context, so cancellation is only observed between pages.
func (l *Lister) List(ctx context.Context, req walktypes.ListRequest) (*walktypes.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.PageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be at least 1", walkerrors.ErrInvalidInput)
	}

	var delim string
	if req.Delimiter != 0 {
		delim = string(req.Delimiter)
	}

	res, err := l.api.ListObjectsV2(l.bucket, req.Prefix, "", req.Cursor, delim, min(req.PageSize, MaxPageSize))
	if err != nil {
		return nil, translateError(err)
	}

	page := &walktypes.Page{
		Prefixes:  make([]string, 0, len(res.CommonPrefixes)),
		Objects:   make([]walktypes.Object, 0, len(res.Contents)),
		Truncated: res.IsTruncated,
	}
	if res.IsTruncated {
		page.NextCursor = res.NextContinuationToken
	}
	for _, p := range res.CommonPrefixes {
		page.Prefixes = append(page.Prefixes, p.Prefix)
	}
	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, walktypes.Object{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
			StorageClass: obj.StorageClass,
		})
	}
	return page, nil
}

func translateError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchBucket":
		return fmt.Errorf("%w: %w", walkerrors.ErrBucketNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %w", walkerrors.ErrAccessDenied, err)
	}
	return err
}

var (
	_ API              = (*minio.Core)(nil)
	_ walktypes.Lister = (*Lister)(nil)
)
