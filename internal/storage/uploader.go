// Package storage uploads outfit images to the object store and hands
// back time-limited signed URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
)

type Uploader struct {
	client  *storage_go.Client
	bucket  string
	timeout time.Duration
	maxSize int64
	expiry  time.Duration
}

func NewUploader(cfg *config.Config) *Uploader {
	client := storage_go.NewClient(cfg.SupabaseURL+"/storage/v1", cfg.SupabaseSecretKey, nil)
	return &Uploader{
		client:  client,
		bucket:  cfg.StorageBucket,
		timeout: cfg.UploadTimeout,
		maxSize: cfg.MaxUploadBytes,
		expiry:  cfg.SignedURLExpiry,
	}
}

// Upload stores the image under a fresh object name and returns a
// signed URL for it. Oversized payloads are rejected before any network
// call; the upload itself is bounded by the configured timeout and by
// ctx, after which the operation fails even if the transfer later
// completes.
func (u *Uploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if int64(len(data)) > u.maxSize {
		return "", errs.UploadTooLarge(fmt.Sprintf("image is %d bytes, limit is %d", len(data), u.maxSize))
	}

	path := fmt.Sprintf("outfit/%s.jpg", uuid.NewString())

	cacheControl := "3600"
	done := make(chan error, 1)
	go func() {
		_, err := u.client.UploadFile(u.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
			ContentType:  &contentType,
			CacheControl: &cacheControl,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", errs.Generic("uploading image", err)
		}
	case <-time.After(u.timeout):
		return "", errs.UploadTimeout("upload timed out")
	case <-ctx.Done():
		return "", errs.Generic("uploading image", ctx.Err())
	}

	signed, err := u.client.CreateSignedUrl(u.bucket, path, int(u.expiry.Seconds()))
	if err != nil {
		return "", errs.Generic("creating signed url", err)
	}
	return signed.SignedURL, nil
}
