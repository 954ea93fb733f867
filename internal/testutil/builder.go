// Package testutil provides a builder for creating mock S3 clients.
package testutil

import (
	"context"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/memlist"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// MockBuilder provides a fluent interface for building MockS3Client instances.
type MockBuilder struct {
	client *MockS3Client
}

// NewMockBuilder creates a new MockBuilder.
func NewMockBuilder() *MockBuilder {
	return &MockBuilder{
		client: &MockS3Client{},
	}
}

// Build returns the configured MockS3Client.
func (b *MockBuilder) Build() *MockS3Client {
	return b.client
}

// WithListObjectsV2 configures the ListObjectsV2 behavior.
func (b *MockBuilder) WithListObjectsV2(
	fn func(context.Context, *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error),
) *MockBuilder {
	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return fn(ctx, params)
	}
	return b
}

// WithEmptyBucket configures the mock to return an empty bucket listing.
func (b *MockBuilder) WithEmptyBucket() *MockBuilder {
	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return &s3.ListObjectsV2Output{
			Name:        params.Bucket,
			Prefix:      params.Prefix,
			Delimiter:   params.Delimiter,
			MaxKeys:     params.MaxKeys,
			IsTruncated: BoolPtr(false),
			KeyCount:    Int32Ptr(0),
		}, nil
	}
	return b
}

// WithKeys configures the mock to list the given keys the way S3 does,
// grouping by delimiter and paging with continuation tokens.
func (b *MockBuilder) WithKeys(keys ...string) *MockBuilder {
	store := memlist.New(keys...)

	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		var delim rune
		if d := aws.ToString(params.Delimiter); d != "" {
			delim, _ = utf8.DecodeRuneInString(d)
		}

		page, err := store.List(ctx, walktypes.ListRequest{
			Prefix:    aws.ToString(params.Prefix),
			Delimiter: delim,
			PageSize:  int(aws.ToInt32(params.MaxKeys)),
			Cursor:    aws.ToString(params.ContinuationToken),
		})
		if err != nil {
			return nil, err
		}

		out := &s3.ListObjectsV2Output{
			Name:        params.Bucket,
			Prefix:      params.Prefix,
			Delimiter:   params.Delimiter,
			MaxKeys:     params.MaxKeys,
			IsTruncated: BoolPtr(page.Truncated),
			KeyCount:    Int32Ptr(int32(len(page.Prefixes) + len(page.Objects))),
		}
		if page.Truncated {
			out.NextContinuationToken = StringPtr(page.NextCursor)
		}
		for _, p := range page.Prefixes {
			out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: StringPtr(p)})
		}
		for _, o := range page.Objects {
			out.Contents = append(out.Contents, CreateTestObject(o.Key, o.Size, o.LastModified))
		}
		return out, nil
	}
	return b
}

// WithNoSuchBucket configures the mock to return bucket not found errors.
func (b *MockBuilder) WithNoSuchBucket() *MockBuilder {
	notFoundErr := &types.NoSuchBucket{
		Message: StringPtr("The specified bucket does not exist"),
	}

	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return nil, notFoundErr
	}
	return b
}

// WithAccessDenied configures the mock to return access denied errors.
func (b *MockBuilder) WithAccessDenied() *MockBuilder {
	accessDeniedErr := &smithy.GenericAPIError{
		Code:    "AccessDenied",
		Message: "Access Denied",
	}

	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return nil, accessDeniedErr
	}
	return b
}

// WithFailedList configures the mock to always fail with err.
func (b *MockBuilder) WithFailedList(err error) *MockBuilder {
	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return nil, err
	}
	return b
}
