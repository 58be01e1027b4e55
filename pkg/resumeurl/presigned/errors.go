package presigned

import "errors"

var (
	// ErrNoSecretKey means the Signer was built without a key and cannot sign or validate
	ErrNoSecretKey = errors.New("presigned: no secret key configured")

	// Download URL rejections. A request carrying any of these never reaches storage.
	ErrMissingSignature  = errors.New("presigned: missing signature parameter")
	ErrMissingExpiration = errors.New("presigned: missing expires parameter")
	ErrInvalidExpiration = errors.New("presigned: invalid expires parameter")
	ErrExpired           = errors.New("presigned: URL has expired")
	ErrInvalidSignature  = errors.New("presigned: invalid signature")
)

// IsAuthError reports whether err rejects the caller's URL, as opposed to a
// server-side problem such as a missing secret key.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrMissingExpiration) ||
		errors.Is(err, ErrInvalidExpiration) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidSignature)
}
