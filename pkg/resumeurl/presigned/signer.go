package presigned

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Query parameter names carried by signed URLs
const (
	SignatureParam = "signature"
	ExpiresParam   = "expires"
)

// Signer generates and validates HMAC-SHA256 signatures with an embedded expiry.
// It is immutable after New and safe for concurrent use.
type Signer struct {
	secretKey []byte
	now       func() time.Time
}

// New creates a new Signer with the given options
func New(opts ...Option) *Signer {
	s := &Signer{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignQuery returns the signature and expires query parameters for a request
// of the given method against objectKey, valid for expiresIn.
// Zero and negative durations yield a URL that is already expired.
func (s *Signer) SignQuery(method, objectKey string, expiresIn time.Duration) (url.Values, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrNoSecretKey
	}

	expiresAt := s.now().Add(expiresIn).Unix()
	signature := s.generateSignature(s.createPayload(method, objectKey, expiresAt))

	q := url.Values{}
	q.Set(SignatureParam, signature)
	q.Set(ExpiresParam, strconv.FormatInt(expiresAt, 10))
	return q, nil
}

// ValidateRequest validates the signature and expiration carried in the query of r
func (s *Signer) ValidateRequest(r *http.Request, objectKey string) error {
	query := r.URL.Query()
	signature := query.Get(SignatureParam)
	expiresStr := query.Get(ExpiresParam)

	if signature == "" {
		return ErrMissingSignature
	}
	if expiresStr == "" {
		return ErrMissingExpiration
	}

	expiresAt, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}

	return s.Validate(r.Method, objectKey, signature, expiresAt)
}

// Validate validates the signature and expiration for a given method, object key, signature, and expiration timestamp
func (s *Signer) Validate(method, objectKey, signature string, expiresAt int64) error {
	if len(s.secretKey) == 0 {
		return ErrNoSecretKey
	}

	// A URL is no longer valid at its expiry second.
	if s.now().Unix() >= expiresAt {
		return ErrExpired
	}

	expectedSignature := s.generateSignature(s.createPayload(method, objectKey, expiresAt))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return ErrInvalidSignature
	}

	return nil
}

// IsEnabled reports whether a secret key is configured. A disabled Signer
// can neither sign nor validate.
func (s *Signer) IsEnabled() bool {
	return len(s.secretKey) > 0
}

// createPayload creates the signature payload: METHOD|OBJECT_KEY|EXPIRES
func (s *Signer) createPayload(method, objectKey string, expiresAt int64) string {
	return fmt.Sprintf("%s|%s|%d", method, objectKey, expiresAt)
}

func (s *Signer) generateSignature(payload string) string {
	h := hmac.New(sha256.New, s.secretKey)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
