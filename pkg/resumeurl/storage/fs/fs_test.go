package fs_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/resume-url/pkg/resumeurl"
	"github.com/tendant/resume-url/pkg/resumeurl/presigned"
	fsstorage "github.com/tendant/resume-url/pkg/resumeurl/storage/fs"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newBackend(t *testing.T, opts ...presigned.Option) *fsstorage.Backend {
	t.Helper()
	backend, err := fsstorage.New(fsstorage.Config{
		BaseDir:   t.TempDir(),
		URLPrefix: "http://localhost:8080/",
		SecretKey: testSecret,
	}, opts...)
	require.NoError(t, err)
	return backend
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config fsstorage.Config
	}{
		{"missing base dir", fsstorage.Config{URLPrefix: "http://localhost:8080", SecretKey: testSecret}},
		{"missing secret", fsstorage.Config{BaseDir: "unused", URLPrefix: "http://localhost:8080"}},
		{"relative prefix", fsstorage.Config{BaseDir: "unused", URLPrefix: "/files", SecretKey: testSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fsstorage.New(tt.config)
			assert.ErrorIs(t, err, resumeurl.ErrInvalidConfig)
		})
	}
}

func TestFilesystemBackend(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)
	testKey := "resume/Resume.pdf"
	testData := "%PDF-1.7 resume"

	t.Run("StatMissing", func(t *testing.T) {
		_, err := backend.Stat(ctx, testKey)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("Upload", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, testKey, strings.NewReader(testData), "application/pdf"))
	})

	t.Run("Stat", func(t *testing.T) {
		meta, err := backend.Stat(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, int64(len(testData)), meta.Size)
		assert.Equal(t, "application/pdf", meta.ContentType)
		assert.False(t, meta.LastModified.IsZero())
	})

	t.Run("Open", func(t *testing.T) {
		rc, meta, err := backend.Open(ctx, testKey)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, testData, string(data))
		assert.Equal(t, testKey, meta.Key)
	})

	t.Run("StatDirectory", func(t *testing.T) {
		_, err := backend.Stat(ctx, "resume")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestFilesystemBackend_Sign(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	backend := newBackend(t, presigned.WithClock(func() time.Time { return now }))

	signed, err := backend.Sign(context.Background(), "resume/Resume.pdf", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:8080", u.Host)
	assert.Equal(t, "/download/resume/Resume.pdf", u.Path)
	assert.Equal(t, strconv.FormatInt(now.Add(time.Hour).Unix(), 10), u.Query().Get(presigned.ExpiresParam))

	expiresAt, _ := strconv.ParseInt(u.Query().Get(presigned.ExpiresParam), 10, 64)
	err = backend.Signer().Validate(http.MethodGet, "resume/Resume.pdf", u.Query().Get(presigned.SignatureParam), expiresAt)
	assert.NoError(t, err)
}

func TestFilesystemBackend_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)

	for _, key := range []string{"../secret", "resume/../../secret", "/etc/passwd", ""} {
		t.Run(key, func(t *testing.T) {
			_, err := backend.Sign(ctx, key, time.Minute)
			assert.Error(t, err)

			err = backend.Upload(ctx, key, strings.NewReader("x"), "")
			assert.Error(t, err)
		})
	}
}

func TestFilesystemBackend_OpensExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "resume"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume", "Resume.pdf"), []byte("%PDF"), 0644))

	backend, err := fsstorage.New(fsstorage.Config{BaseDir: dir, URLPrefix: "http://example.test", SecretKey: testSecret})
	require.NoError(t, err)

	rc, meta, err := backend.Open(context.Background(), "resume/Resume.pdf")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, int64(4), meta.Size)
}
