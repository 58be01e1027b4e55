package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/tendant/resume-url/pkg/resumeurl"
)

// ErrObjectNotFound is returned by Stat for keys that were never uploaded
var ErrObjectNotFound = errors.New("object not found")

// SignCall records the arguments of a Sign invocation
type SignCall struct {
	ObjectKey string
	ExpiresIn time.Duration
}

// Backend is an in-memory implementation of resumeurl.Signer, resumeurl.ObjectStater
// and resumeurl.Uploader. URLs it signs use the memory:// scheme and carry
// the expiry as a unix timestamp, so they are deterministic for a fixed clock.
type Backend struct {
	mu              sync.RWMutex
	objects         map[string][]byte
	objectsMimeType map[string]string
	calls           []SignCall
	signErr         error
	now             func() time.Time
}

// Option configures a Backend
type Option func(*Backend)

// WithClock sets the time source used for embedded expiries
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// WithSignError makes every Sign call fail with err
func WithSignError(err error) Option {
	return func(b *Backend) {
		b.signErr = err
	}
}

// New creates a new in-memory storage backend
func New(opts ...Option) *Backend {
	b := &Backend{
		objects:         make(map[string][]byte),
		objectsMimeType: make(map[string]string),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sign returns memory://<key>?expires=<unix>&ttl=<seconds>
func (b *Backend) Sign(ctx context.Context, objectKey string, expiresIn time.Duration) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, SignCall{ObjectKey: objectKey, ExpiresIn: expiresIn})
	signErr := b.signErr
	b.mu.Unlock()

	if signErr != nil {
		return "", signErr
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(b.now().Add(expiresIn).Unix(), 10))
	q.Set("ttl", strconv.FormatInt(int64(expiresIn/time.Second), 10))

	u := url.URL{Scheme: "memory", Path: "/" + objectKey, RawQuery: q.Encode()}
	return u.String(), nil
}

// Calls returns the Sign invocations seen so far
func (b *Backend) Calls() []SignCall {
	b.mu.RLock()
	defer b.mu.RUnlock()

	calls := make([]SignCall, len(b.calls))
	copy(calls, b.calls)
	return calls
}

// Upload stores content under objectKey
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	b.objectsMimeType[objectKey] = contentType
	return nil
}

// Stat retrieves metadata for an object in memory
func (b *Backend) Stat(ctx context.Context, objectKey string) (*resumeurl.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, ErrObjectNotFound
	}

	return &resumeurl.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: b.objectsMimeType[objectKey],
	}, nil
}
