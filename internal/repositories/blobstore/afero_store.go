// Package blobstore stores uploaded media on an afero filesystem and serves it by URL.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/spf13/afero"
)

var knownBuckets = map[string]bool{
	portsrepo.BucketCars:     true,
	portsrepo.BucketReceipts: true,
	portsrepo.BucketAvatars:  true,
}

// FileStore implements BlobStore on top of an afero filesystem. Objects live at
// <bucket>/<key> inside fs and are published under <baseURL>/<bucket>/<key>.
type FileStore struct {
	fs      afero.Fs
	baseURL string
}

// NewFileStore creates a store rooted at fs. baseURL is the public prefix, e.g. "/media".
func NewFileStore(fs afero.Fs, baseURL string) *FileStore {
	return &FileStore{fs: fs, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewOsFileStore creates a store rooted at the directory root on the local disk.
func NewOsFileStore(root, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", root, err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), root), baseURL), nil
}

var _ portsrepo.BlobStore = (*FileStore)(nil)

// Fs exposes the underlying filesystem so it can be served over HTTP.
func (s *FileStore) Fs() afero.Fs {
	return s.fs
}

func (s *FileStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := objectPath(bucket, key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path.Dir(name), err)
	}
	if err := afero.WriteFile(s.fs, name, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *FileStore) Delete(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := objectPath(bucket, key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) KeyFromURL(url string) (string, string, bool) {
	rest, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return "", "", false
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || !knownBuckets[bucket] {
		return "", "", false
	}
	if _, err := objectPath(bucket, key); err != nil {
		return "", "", false
	}
	return bucket, key, true
}

// objectPath validates bucket and key and joins them. Keys may not escape their bucket.
func objectPath(bucket, key string) (string, error) {
	if !knownBuckets[bucket] {
		return "", fmt.Errorf("unknown bucket %q", bucket)
	}
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+key {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return bucket + "/" + key, nil
}
