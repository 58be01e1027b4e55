// Package resumeurl issues time-limited signed URLs for a single résumé
// object kept in object storage.
//
// The Service resolves how long a URL should live from an optional caller
// request and an ExpirationPolicy, hands the effective duration to a Signer,
// and returns the signed URL together with its absolute expiry instant.
// Signer implementations live under storage/ (S3 and a local filesystem
// backend for development).
//
// Expiration Policy
//
// Requests without a duration get the policy default. Requests above the
// policy maximum are clamped down to it. Everything else, zero and negative
// values included, is passed to the Signer unchanged; what an already-expired
// URL means is left to the storage provider.
package resumeurl
