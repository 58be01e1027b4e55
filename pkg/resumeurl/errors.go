package resumeurl

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig indicates the service or a backend was configured incorrectly
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSigningFailed indicates the storage provider refused to sign a URL
	ErrSigningFailed = errors.New("signing failed")

	// ErrInvalidExpiration indicates a caller-supplied expiration could not be parsed
	ErrInvalidExpiration = errors.New("invalid expiration")
)

// SigningError reports a Signer failure for a specific object and duration
type SigningError struct {
	ObjectKey string
	ExpiresIn time.Duration
	Err       error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing URL for %s (expires in %s) failed: %v", e.ObjectKey, e.ExpiresIn, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrSigningFailed) match any SigningError.
func (e *SigningError) Is(target error) bool {
	return target == ErrSigningFailed
}
