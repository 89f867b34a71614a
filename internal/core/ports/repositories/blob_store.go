package repositories

import "context"

// Buckets used for stored objects.
const (
	BucketCars     = "cars"
	BucketReceipts = "receipts"
	BucketAvatars  = "avatars"
)

// BlobStore stores uploaded binary objects and serves them by public URL.
type BlobStore interface {
	// Put stores body under bucket/key and returns its public URL.
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error)

	// Delete removes bucket/key. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket, key string) error

	// KeyFromURL maps a public URL produced by Put back to its bucket and key.
	KeyFromURL(url string) (bucket, key string, ok bool)
}
