package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tendant/resume-url/pkg/resumeurl"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // Static access key ID, used only together with SecretAccessKey
	SecretAccessKey string // Static secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
}

// Backend signs GET URLs for objects in a single bucket.
// It holds only immutable configuration and is safe for concurrent use.
type Backend struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	config        Config
}

var (
	_ resumeurl.Signer       = (*Backend)(nil)
	_ resumeurl.ObjectStater = (*Backend)(nil)
	_ resumeurl.Uploader     = (*Backend)(nil)
)

// New creates a new S3 storage backend.
//
// Credentials come from the static key pair when both halves are non-empty,
// otherwise from the SDK default chain (environment, shared files, role).
// Credentials are resolved once here so a misconfigured process fails at
// startup instead of on the first request.
func New(ctx context.Context, config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket name is required", resumeurl.ErrInvalidConfig)
	}
	if config.Region == "" {
		return nil, fmt.Errorf("%w: region is required", resumeurl.ErrInvalidConfig)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %v", resumeurl.ErrInvalidConfig, err)
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to resolve AWS credentials: %v", resumeurl.ErrInvalidConfig, err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	} else if config.UsePathStyle {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Backend{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        config.Bucket,
		config:        config,
	}, nil
}

// Bucket returns the bucket the backend signs URLs for
func (b *Backend) Bucket() string {
	return b.bucket
}

// Sign returns a SigV4 query-string presigned GET URL valid for expiresIn.
// The duration is passed to the SDK as-is; its own limits apply.
func (b *Backend) Sign(ctx context.Context, objectKey string, expiresIn time.Duration) (string, error) {
	result, err := b.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}

	return result.URL, nil
}

// Stat retrieves metadata for an object in S3
func (b *Backend) Stat(ctx context.Context, objectKey string) (*resumeurl.ObjectMeta, error) {
	result, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrStatFailed)
	}

	meta := &resumeurl.ObjectMeta{
		Key:         objectKey,
		Size:        aws.ToInt64(result.ContentLength),
		ContentType: aws.ToString(result.ContentType),
		ETag:        strings.Trim(aws.ToString(result.ETag), "\""),
	}
	if meta.ContentType == "" {
		meta.ContentType = "application/octet-stream"
	}
	if result.LastModified != nil {
		meta.LastModified = *result.LastModified
	}

	return meta, nil
}

// Upload uploads content to S3 using the multipart upload manager
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	if reader == nil {
		return errors.New("reader is required")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	uploader := manager.NewUploader(b.client)
	if _, err := uploader.Upload(ctx, input); err != nil {
		return wrapS3Error(err, ErrUploadFailed)
	}

	return nil
}
