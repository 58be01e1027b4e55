package resumeurl

import (
	"context"
	"io"
	"time"
)

// Signer produces a URL that grants unauthenticated GET access to an object
// until expiresIn has elapsed. Implementations must be safe for concurrent use.
type Signer interface {
	Sign(ctx context.Context, objectKey string, expiresIn time.Duration) (string, error)
}

// ObjectStater is implemented by backends that can report whether an object
// exists. It is used by readiness checks.
type ObjectStater interface {
	Stat(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// Uploader is implemented by backends that can store the object.
type Uploader interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error
}

// Service issues signed URLs for the configured object
type Service interface {
	// IssueURL resolves the effective expiration and signs a URL for it
	IssueURL(ctx context.Context, req IssueURLRequest) (*SignedURL, error)

	// ObjectKey returns the key of the object URLs are issued for
	ObjectKey() string

	// Policy returns the expiration policy in effect
	Policy() ExpirationPolicy
}
