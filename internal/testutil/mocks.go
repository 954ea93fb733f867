// Package testutil provides test utilities and mocks for the object store listers.
// This package is internal and should only be used for testing within this module.
package testutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/internal/s3api"
)

// MockS3Client is a mock implementation of the S3API interface for testing.
// It records every ListObjectsV2 input it receives.
type MockS3Client struct {
	ListObjectsV2Func func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)

	mu    sync.Mutex
	calls []*s3.ListObjectsV2Input
}

// ListObjectsV2 mocks the S3 ListObjectsV2 operation.
func (m *MockS3Client) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	m.calls = append(m.calls, params)
	m.mu.Unlock()

	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params, optFns...)
	}
	return &s3.ListObjectsV2Output{}, nil
}

// Calls returns the inputs of every ListObjectsV2 call so far.
func (m *MockS3Client) Calls() []*s3.ListObjectsV2Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*s3.ListObjectsV2Input(nil), m.calls...)
}

// Ensure MockS3Client implements S3API
var _ s3api.S3API = (*MockS3Client)(nil)
