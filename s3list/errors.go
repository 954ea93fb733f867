package s3list

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	walkerrors "github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
)

// translateError maps well-known S3 errors to the package sentinels.
// The provider error stays in the chain.
func translateError(err error) error {
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: %w", walkerrors.ErrBucketNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return fmt.Errorf("%w: %w", walkerrors.ErrBucketNotFound, err)
		case "AccessDenied", "AllAccessDisabled", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %w", walkerrors.ErrAccessDenied, err)
		}
	}

	return err
}
