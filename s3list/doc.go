// Package s3list lists Amazon S3 and S3-compatible buckets for the recursor
// walker using the AWS SDK for Go v2.
//
// A Lister issues one ListObjectsV2 call per page the walker asks for,
// passing the walker's delimiter, page size and continuation token through
// unchanged. Provider errors for a missing bucket or a denied request are
// mapped to errors.ErrBucketNotFound and errors.ErrAccessDenied.
//
// Example:
//
//	lister, err := s3list.New(ctx, "my-bucket",
//	    s3list.WithRegion("us-west-2"),
//	    s3list.WithMaxRetries(5),
//	)
//	if err != nil {
//	    return err
//	}
//
//	w, err := recursor.New(lister, recursor.WithStartPrefix("logs/"))
package s3list
