package config

import (
	"fmt"
	"time"

	"github.com/tendant/resume-url/pkg/resumeurl"
)

// WithPort sets the HTTP port
func WithPort(port string) Option {
	return func(c *Config) error {
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the runtime environment
func WithEnvironment(env string) Option {
	return func(c *Config) error {
		c.Environment = env
		return nil
	}
}

// WithStorageBackend selects the backend type
func WithStorageBackend(backend string) Option {
	return func(c *Config) error {
		c.StorageBackend = backend
		return nil
	}
}

// WithObjectKey overrides the résumé object key
func WithObjectKey(key string) Option {
	return func(c *Config) error {
		c.ObjectKey = key
		return nil
	}
}

// WithExpirationPolicy overrides the default and maximum URL lifetimes
func WithExpirationPolicy(policy resumeurl.ExpirationPolicy) Option {
	return func(c *Config) error {
		c.DefaultExpiration = policy.Default
		c.MaxExpiration = policy.Max
		return nil
	}
}

// WithRequestTimeout sets the per-request timeout
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return fmt.Errorf("%w: request timeout must be positive", resumeurl.ErrInvalidConfig)
		}
		c.RequestTimeout = d
		return nil
	}
}

// WithS3 configures and selects the S3 backend
func WithS3(s3 S3Config) Option {
	return func(c *Config) error {
		c.StorageBackend = BackendS3
		c.S3 = s3
		return nil
	}
}

// WithFilesystem configures and selects the filesystem backend
func WithFilesystem(fs FSConfig) Option {
	return func(c *Config) error {
		c.StorageBackend = BackendFS
		if fs.URLPrefix == "" {
			fs.URLPrefix = c.FS.URLPrefix
		}
		c.FS = fs
		return nil
	}
}
