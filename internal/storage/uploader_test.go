package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
)

// fakeStore answers uploads and sign requests; uploadDelay simulates a
// stalled transfer.
type fakeStore struct {
	mu          sync.Mutex
	uploadDelay time.Duration
	uploads     []string
	contentType string
	srv         *httptest.Server
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()

	f := &fakeStore{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/object/sign/") {
			io.WriteString(w, `{"signedURL":"/object/sign/outfit-images/outfit/test.jpg?token=signed-token"}`)
			return
		}

		f.mu.Lock()
		delay := f.uploadDelay
		f.uploads = append(f.uploads, r.URL.Path)
		f.contentType = r.Header.Get("Content-Type")
		f.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		io.WriteString(w, `{"Key":"outfit-images/outfit/test.jpg"}`)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func newTestUploader(t *testing.T, store *fakeStore, timeout time.Duration, maxBytes int64) *Uploader {
	t.Helper()
	cfg := &config.Config{
		SupabaseURL:       store.srv.URL,
		SupabaseSecretKey: "secret-key",
		StorageBucket:     "outfit-images",
		SignedURLExpiry:   7 * 24 * time.Hour,
		UploadTimeout:     timeout,
		MaxUploadBytes:    maxBytes,
	}
	return NewUploader(cfg)
}

func TestUploadReturnsSignedURL(t *testing.T) {
	store := newFakeStore(t)
	u := newTestUploader(t, store, time.Second, 1024)

	url, err := u.Upload(context.Background(), []byte("image bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, url, "token=signed-token")

	require.Len(t, store.uploads, 1)
	assert.Contains(t, store.uploads[0], "/object/outfit-images/outfit/")
	assert.True(t, strings.HasSuffix(store.uploads[0], ".jpg"))
	assert.Equal(t, "image/jpeg", store.contentType)
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	store := newFakeStore(t)
	u := newTestUploader(t, store, time.Second, 4)

	_, err := u.Upload(context.Background(), []byte("way more than four bytes"), "image/jpeg")
	require.Error(t, err)
	assert.Equal(t, errs.CodeUploadTooLarge, errs.CodeOf(err))

	// Rejected before any network call
	assert.Empty(t, store.uploads)
}

func TestUploadTimesOut(t *testing.T) {
	store := newFakeStore(t)
	store.uploadDelay = 300 * time.Millisecond
	u := newTestUploader(t, store, 30*time.Millisecond, 1024)

	_, err := u.Upload(context.Background(), []byte("image bytes"), "image/jpeg")
	require.Error(t, err)
	assert.Equal(t, errs.CodeUploadTimeout, errs.CodeOf(err))
}

func TestUploadStopsOnCancelledContext(t *testing.T) {
	store := newFakeStore(t)
	store.uploadDelay = 300 * time.Millisecond
	u := newTestUploader(t, store, 5*time.Second, 1024)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := u.Upload(ctx, []byte("image bytes"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, errs.Is(err, context.Canceled))

	// The caller going away must not leave the request waiting out the
	// full upload bound
	assert.Less(t, time.Since(start), time.Second)
}

func TestUploadObjectNamesAreUnique(t *testing.T) {
	store := newFakeStore(t)
	u := newTestUploader(t, store, time.Second, 1024)

	_, err := u.Upload(context.Background(), []byte("first"), "image/jpeg")
	require.NoError(t, err)
	_, err = u.Upload(context.Background(), []byte("second"), "image/jpeg")
	require.NoError(t, err)

	require.Len(t, store.uploads, 2)
	assert.NotEqual(t, store.uploads[0], store.uploads[1])
}
