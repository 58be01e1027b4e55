package resumeurl

import "time"

// DefaultObjectKey is the key of the résumé object within the bucket
const DefaultObjectKey = "resume/Resume.pdf"

// SignedURL is the result of a single issuance
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

// ObjectMeta describes a stored object
type ObjectMeta struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}
