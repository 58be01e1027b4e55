// Package presigned provides HMAC-based presigned download URLs for storage
// backends that have no signing scheme of their own, such as the local
// filesystem backend used in development.
//
// Signing
//
//	signer := presigned.New(presigned.WithSecretKey(secret))
//	q, err := signer.SignQuery(http.MethodGet, "resume/Resume.pdf", 15*time.Minute)
//	// q carries signature=<hex hmac-sha256>&expires=<unix seconds>
//
// The signed payload is METHOD|OBJECT_KEY|EXPIRES, so URLs stay valid no
// matter which host or prefix they are served under.
//
// Serving
//
//	handlers := presigned.NewHandlers(signer, store, logger)
//	handlers.Mount(router) // GET /download/*, wrapped in ValidateMiddleware
//
// ValidateMiddleware can also guard routes of your own; the handler behind it
// reads the validated key with ObjectKeyFromContext.
// Missing parameters answer 401, a malformed expires answers 400, and an
// expired or forged signature answers 403. A Signer without a secret key
// refuses every download with 503.
//
// Checking
//
// Client.Check performs a ranged GET against any signed URL (S3 or local) and
// reports whether the storage side accepts it.
package presigned
