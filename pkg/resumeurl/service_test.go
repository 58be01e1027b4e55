package resumeurl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/resume-url/pkg/resumeurl"
	memorystorage "github.com/tendant/resume-url/pkg/resumeurl/storage/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []resumeurl.Option
		expectError bool
	}{
		{
			name:        "no signer should fail",
			options:     []resumeurl.Option{},
			expectError: true,
		},
		{
			name: "with signer should succeed",
			options: []resumeurl.Option{
				resumeurl.WithSigner(memorystorage.New()),
			},
		},
		{
			name: "empty object key should fail",
			options: []resumeurl.Option{
				resumeurl.WithSigner(memorystorage.New()),
				resumeurl.WithObjectKey(""),
			},
			expectError: true,
		},
		{
			name: "invalid policy should fail",
			options: []resumeurl.Option{
				resumeurl.WithSigner(memorystorage.New()),
				resumeurl.WithPolicy(resumeurl.ExpirationPolicy{Default: time.Hour, Max: time.Minute}),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := resumeurl.New(tt.options...)

			if tt.expectError {
				assert.ErrorIs(t, err, resumeurl.ErrInvalidConfig)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, svc)
				assert.Equal(t, resumeurl.DefaultObjectKey, svc.ObjectKey())
				assert.Equal(t, resumeurl.DefaultPolicy(), svc.Policy())
			}
		})
	}
}

func TestIssueURL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tests := []struct {
		name      string
		requested *int64
		want      time.Duration
	}{
		{"default", nil, 15 * time.Minute},
		{"sixty minutes", minutes(60), 60 * time.Minute},
		{"clamped", minutes(2000), 24 * time.Hour},
		{"zero", minutes(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := memorystorage.New(memorystorage.WithClock(clock))
			svc, err := resumeurl.New(resumeurl.WithSigner(signer), resumeurl.WithClock(clock))
			require.NoError(t, err)

			result, err := svc.IssueURL(context.Background(), resumeurl.IssueURLRequest{ExpiresInMinutes: tt.requested})
			require.NoError(t, err)

			assert.Equal(t, tt.want, result.ExpiresIn)
			assert.Equal(t, now.Add(tt.want), result.ExpiresAt)
			assert.NotEmpty(t, result.URL)

			calls := signer.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, resumeurl.DefaultObjectKey, calls[0].ObjectKey)
			assert.Equal(t, tt.want, calls[0].ExpiresIn)
		})
	}
}

func TestIssueURL_ExpiresAtIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 5, 1, 14, 0, 0, 0, loc)

	svc, err := resumeurl.New(
		resumeurl.WithSigner(memorystorage.New()),
		resumeurl.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	result, err := svc.IssueURL(context.Background(), resumeurl.IssueURLRequest{})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, result.ExpiresAt.Location())
	assert.True(t, now.Add(15*time.Minute).Equal(result.ExpiresAt))
}

func TestIssueURL_DifferentInstantsDifferentURLs(t *testing.T) {
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	svc, err := resumeurl.New(
		resumeurl.WithSigner(memorystorage.New(memorystorage.WithClock(clock))),
		resumeurl.WithClock(clock),
	)
	require.NoError(t, err)

	req := resumeurl.IssueURLRequest{ExpiresInMinutes: minutes(60)}

	first, err := svc.IssueURL(context.Background(), req)
	require.NoError(t, err)

	current = current.Add(time.Minute)
	second, err := svc.IssueURL(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.URL, second.URL)
	assert.Equal(t, first.ExpiresIn, second.ExpiresIn)
	assert.Equal(t, time.Minute, second.ExpiresAt.Sub(first.ExpiresAt))
}

func TestIssueURL_SignerFailure(t *testing.T) {
	cause := errors.New("InvalidAccessKeyId")
	svc, err := resumeurl.New(resumeurl.WithSigner(memorystorage.New(memorystorage.WithSignError(cause))))
	require.NoError(t, err)

	result, err := svc.IssueURL(context.Background(), resumeurl.IssueURLRequest{ExpiresInMinutes: minutes(30)})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, resumeurl.ErrSigningFailed)
	assert.ErrorIs(t, err, cause)

	var signingErr *resumeurl.SigningError
	require.True(t, errors.As(err, &signingErr))
	assert.Equal(t, resumeurl.DefaultObjectKey, signingErr.ObjectKey)
	assert.Equal(t, 30*time.Minute, signingErr.ExpiresIn)
}
