package s3list

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Config holds the S3 client settings used by New.
type Config struct {
	// Region overrides the region from the credential chain
	Region string

	// Endpoint is a custom endpoint URL for S3-compatible services
	Endpoint string

	// ForcePathStyle selects path-style addressing
	ForcePathStyle bool

	// MaxRetries is the maximum number of attempts per request
	MaxRetries int

	// Timeout bounds every HTTP request. Zero means no timeout.
	Timeout time.Duration

	// AWSConfig replaces the default configuration loading
	AWSConfig *aws.Config
}

// Option configures New.
type Option func(*Config)

// WithRegion sets the AWS region.
// If not specified, uses the region from the credential chain, or us-east-1.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *Config) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed listings.
// Default is 3.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual listing requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(c *Config) {
		c.AWSConfig = cfg
	}
}
