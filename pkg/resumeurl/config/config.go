// Package config loads résumé URL service configuration from the environment
// and builds the storage backend it describes.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/resume-url/internal/logging"
	"github.com/tendant/resume-url/pkg/resumeurl"
	fsstorage "github.com/tendant/resume-url/pkg/resumeurl/storage/fs"
	"github.com/tendant/resume-url/pkg/resumeurl/storage/memory"
	s3storage "github.com/tendant/resume-url/pkg/resumeurl/storage/s3"
)

// Storage backend types
const (
	BackendS3     = "s3"
	BackendFS     = "fs"
	BackendMemory = "memory"
)

// Config holds everything the server and CLI need. Values come from the
// environment via cleanenv and may be overridden with options.
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	StorageBackend string `env:"STORAGE_BACKEND" env-default:"s3"` // s3, fs, memory

	ObjectKey         string        `env:"RESUME_OBJECT_KEY" env-default:"resume/Resume.pdf"`
	DefaultExpiration time.Duration `env:"RESUME_DEFAULT_EXPIRATION" env-default:"15m"`
	MaxExpiration     time.Duration `env:"RESUME_MAX_EXPIRATION" env-default:"24h"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	S3 S3Config
	FS FSConfig
}

// S3Config configures the S3 backend
type S3Config struct {
	Region          string `env:"AWS_REGION"`
	Bucket          string `env:"AWS_S3_BUCKET"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"AWS_S3_ENDPOINT"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

// FSConfig configures the filesystem backend
type FSConfig struct {
	BaseDir            string `env:"FS_BASE_DIR"`
	URLPrefix          string `env:"FS_URL_PREFIX" env-default:"http://localhost:8080"`
	SignatureSecretKey string `env:"FS_SIGNATURE_SECRET_KEY"`
}

// Storage is implemented by every backend this package can build
type Storage interface {
	resumeurl.Signer
	resumeurl.ObjectStater
	resumeurl.Uploader
}

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load reads the environment (applying defaults for unset variables),
// applies opts in order and validates the result.
func Load(opts ...Option) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", resumeurl.ErrInvalidConfig, err)
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for the selected backend
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", resumeurl.ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", resumeurl.ErrInvalidConfig, err)
	}
	if c.ObjectKey == "" {
		return fmt.Errorf("%w: RESUME_OBJECT_KEY must not be empty", resumeurl.ErrInvalidConfig)
	}
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", resumeurl.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be positive", resumeurl.ErrInvalidConfig)
	}

	switch c.StorageBackend {
	case BackendS3:
		if c.S3.Region == "" {
			return fmt.Errorf("%w: AWS_REGION is required for the s3 backend", resumeurl.ErrInvalidConfig)
		}
		if c.S3.Bucket == "" {
			return fmt.Errorf("%w: AWS_S3_BUCKET is required for the s3 backend", resumeurl.ErrInvalidConfig)
		}
	case BackendFS:
		if c.FS.BaseDir == "" {
			return fmt.Errorf("%w: FS_BASE_DIR is required for the fs backend", resumeurl.ErrInvalidConfig)
		}
		if c.FS.SignatureSecretKey == "" {
			return fmt.Errorf("%w: FS_SIGNATURE_SECRET_KEY is required for the fs backend", resumeurl.ErrInvalidConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unsupported STORAGE_BACKEND %q (use s3, fs or memory)", resumeurl.ErrInvalidConfig, c.StorageBackend)
	}

	return nil
}

// ValidateServing rejects backends whose URLs no HTTP client can fetch.
// The memory backend signs memory:// URLs and is only meant for tests and
// the CLI.
func (c *Config) ValidateServing() error {
	if c.StorageBackend == BackendMemory {
		return fmt.Errorf("%w: STORAGE_BACKEND=memory cannot serve résumé URLs (use s3 or fs)", resumeurl.ErrInvalidConfig)
	}
	return nil
}

// Policy returns the configured expiration policy
func (c *Config) Policy() resumeurl.ExpirationPolicy {
	return resumeurl.ExpirationPolicy{
		Default: c.DefaultExpiration,
		Max:     c.MaxExpiration,
	}
}

// ServiceOptions returns the resumeurl options derived from this configuration.
// The caller still supplies the signer.
func (c *Config) ServiceOptions() []resumeurl.Option {
	return []resumeurl.Option{
		resumeurl.WithObjectKey(c.ObjectKey),
		resumeurl.WithPolicy(c.Policy()),
	}
}

// BuildStorage constructs the configured backend. For s3 this resolves
// credentials, so a bad key pair or an empty default chain fails here.
func (c *Config) BuildStorage(ctx context.Context) (Storage, error) {
	switch c.StorageBackend {
	case BackendS3:
		backend, err := s3storage.New(ctx, s3storage.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			Endpoint:        c.S3.Endpoint,
			UsePathStyle:    c.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 backend: %w", err)
		}
		return backend, nil
	case BackendFS:
		backend, err := fsstorage.New(fsstorage.Config{
			BaseDir:   c.FS.BaseDir,
			URLPrefix: c.FS.URLPrefix,
			SecretKey: c.FS.SignatureSecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create fs backend: %w", err)
		}
		return backend, nil
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported storage backend %q", resumeurl.ErrInvalidConfig, c.StorageBackend)
	}
}
