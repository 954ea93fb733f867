// Package testutil provides test helper functions.
package testutil

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// StringPtr returns a pointer to the given string.
// This is useful for AWS SDK inputs that require string pointers.
func StringPtr(s string) *string {
	return aws.String(s)
}

// Int64Ptr returns a pointer to the given int64.
func Int64Ptr(i int64) *int64 {
	return aws.Int64(i)
}

// Int32Ptr returns a pointer to the given int32.
func Int32Ptr(i int32) *int32 {
	return aws.Int32(i)
}

// BoolPtr returns a pointer to the given bool.
func BoolPtr(b bool) *bool {
	return aws.Bool(b)
}

// TimePtr returns a pointer to the given time.
// This is useful for AWS SDK outputs that return time pointers.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// GenerateTestBucketName generates a valid test bucket name.
// Bucket names must be DNS-compliant and globally unique.
func GenerateTestBucketName(prefix string) string {
	timestamp := time.Now().Unix()
	random := rand.Int31n(10000)
	name := fmt.Sprintf("%s-%d-%d", prefix, timestamp, random)
	// Ensure DNS compliance
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

// CreateTestObject creates a test S3 object structure.
// This is useful for mocking ListObjectsV2 responses.
func CreateTestObject(key string, size int64, lastModified time.Time) types.Object {
	return types.Object{
		Key:          StringPtr(key),
		Size:         Int64Ptr(size),
		LastModified: TimePtr(lastModified),
		ETag:         StringPtr(fmt.Sprintf(`"%x"`, md5.Sum([]byte(key)))),
		StorageClass: types.ObjectStorageClassStandard,
	}
}

// CreateListObjectsV2Output creates a test ListObjectsV2Output structure.
// A truncated output carries the continuation token "next-token".
func CreateListObjectsV2Output(
	objects []types.Object, prefixes []string, prefix, delimiter string, truncated bool,
) *s3.ListObjectsV2Output {
	output := &s3.ListObjectsV2Output{
		Contents:    objects,
		KeyCount:    Int32Ptr(int32(len(objects) + len(prefixes))),
		MaxKeys:     Int32Ptr(1000),
		Name:        StringPtr("test-bucket"),
		Prefix:      StringPtr(prefix),
		Delimiter:   StringPtr(delimiter),
		IsTruncated: BoolPtr(truncated),
	}
	for _, p := range prefixes {
		output.CommonPrefixes = append(output.CommonPrefixes, types.CommonPrefix{Prefix: StringPtr(p)})
	}
	if truncated {
		output.NextContinuationToken = StringPtr("next-token")
	}
	return output
}
