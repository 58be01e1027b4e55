package resumeurl

// IssueURLRequest carries the caller's input for IssueURL.
// A nil ExpiresInMinutes means the caller did not ask for a duration,
// which is distinct from asking for zero.
type IssueURLRequest struct {
	ExpiresInMinutes *int64
}
