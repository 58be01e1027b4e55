package resumeurl

import (
	"context"
	"fmt"
	"time"
)

// service implements the Service interface
type service struct {
	signer    Signer
	objectKey string
	policy    ExpirationPolicy
	now       func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithSigner sets the signer used to produce URLs
func WithSigner(signer Signer) Option {
	return func(s *service) {
		s.signer = signer
	}
}

// WithObjectKey overrides the object URLs are issued for
func WithObjectKey(key string) Option {
	return func(s *service) {
		s.objectKey = key
	}
}

// WithPolicy overrides the expiration policy
func WithPolicy(policy ExpirationPolicy) Option {
	return func(s *service) {
		s.policy = policy
	}
}

// WithClock sets the time source used for ExpiresAt
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		objectKey: DefaultObjectKey,
		policy:    DefaultPolicy(),
		now:       time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.signer == nil {
		return nil, fmt.Errorf("%w: signer is required", ErrInvalidConfig)
	}
	if s.objectKey == "" {
		return nil, fmt.Errorf("%w: object key is required", ErrInvalidConfig)
	}
	if s.now == nil {
		return nil, fmt.Errorf("%w: clock is required", ErrInvalidConfig)
	}
	if err := s.policy.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *service) IssueURL(ctx context.Context, req IssueURLRequest) (*SignedURL, error) {
	expiresIn := ResolveExpiration(req.ExpiresInMinutes, s.policy)

	url, err := s.signer.Sign(ctx, s.objectKey, expiresIn)
	if err != nil {
		return nil, &SigningError{ObjectKey: s.objectKey, ExpiresIn: expiresIn, Err: err}
	}

	// Computed separately from whatever expiry the signer embedded; the two
	// may differ by the time spent signing.
	return &SignedURL{
		URL:       url,
		ExpiresAt: s.now().Add(expiresIn).UTC(),
		ExpiresIn: expiresIn,
	}, nil
}

func (s *service) ObjectKey() string {
	return s.objectKey
}

func (s *service) Policy() ExpirationPolicy {
	return s.policy
}
