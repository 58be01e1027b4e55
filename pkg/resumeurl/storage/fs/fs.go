package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tendant/resume-url/pkg/resumeurl"
	"github.com/tendant/resume-url/pkg/resumeurl/presigned"
)

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Scheme and host (plus optional path) the download route is served under
	SecretKey string // HMAC key for signing download URLs
}

// Backend is a filesystem implementation of resumeurl.Signer. Objects live
// under BaseDir and URLs point at the presigned download route of this process.
type Backend struct {
	baseDir   string
	urlPrefix *url.URL
	signer    *presigned.Signer
}

var (
	_ resumeurl.Signer       = (*Backend)(nil)
	_ resumeurl.ObjectStater = (*Backend)(nil)
	_ resumeurl.Uploader     = (*Backend)(nil)
	_ presigned.ObjectOpener = (*Backend)(nil)
)

// New creates a new filesystem storage backend
func New(config Config, opts ...presigned.Option) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, fmt.Errorf("%w: base directory is required", resumeurl.ErrInvalidConfig)
	}
	if config.SecretKey == "" {
		return nil, fmt.Errorf("%w: signature secret key is required", resumeurl.ErrInvalidConfig)
	}

	prefix, err := url.Parse(strings.TrimSuffix(config.URLPrefix, "/"))
	if err != nil || prefix.Scheme == "" || prefix.Host == "" {
		return nil, fmt.Errorf("%w: URL prefix must be an absolute URL, got %q", resumeurl.ErrInvalidConfig, config.URLPrefix)
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: prefix,
		signer:    presigned.New(append([]presigned.Option{presigned.WithSecretKey(config.SecretKey)}, opts...)...),
	}, nil
}

// Signer returns the HMAC signer shared with the download handlers
func (b *Backend) Signer() *presigned.Signer {
	return b.signer
}

// Sign returns <prefix>/download/<key>?signature=...&expires=...
func (b *Backend) Sign(ctx context.Context, objectKey string, expiresIn time.Duration) (string, error) {
	if _, err := b.resolve(objectKey); err != nil {
		return "", err
	}

	q, err := b.signer.SignQuery(http.MethodGet, objectKey, expiresIn)
	if err != nil {
		return "", err
	}

	u := *b.urlPrefix
	u.Path = u.Path + presigned.DownloadPrefix + objectKey
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Stat retrieves metadata for an object in the filesystem
func (b *Backend) Stat(ctx context.Context, objectKey string) (*resumeurl.ObjectMeta, error) {
	filePath, err := b.resolve(objectKey)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", objectKey, os.ErrNotExist)
	}

	return &resumeurl.ObjectMeta{
		Key:          objectKey,
		Size:         info.Size(),
		ContentType:  contentType(filePath),
		LastModified: info.ModTime(),
	}, nil
}

// Open opens an object for serving
func (b *Backend) Open(ctx context.Context, objectKey string) (io.ReadSeekCloser, *resumeurl.ObjectMeta, error) {
	meta, err := b.Stat(ctx, objectKey)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(b.baseDir, filepath.FromSlash(objectKey)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, meta, nil
}

// Upload writes content to the filesystem. contentType is not stored; it is
// derived from the file extension on read.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	filePath, err := b.resolve(objectKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return file.Close()
}

// resolve maps an object key onto a path inside baseDir, rejecting keys that escape it
func (b *Backend) resolve(objectKey string) (string, error) {
	if objectKey == "" {
		return "", errors.New("object key is required")
	}

	clean := filepath.Clean(filepath.FromSlash(objectKey))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", objectKey)
	}

	return filepath.Join(b.baseDir, clean), nil
}

func contentType(filePath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filePath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
