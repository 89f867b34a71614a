package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/imaging"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/jaevor/go-nanoid"
	"golang.org/x/sync/errgroup"
)

const (
	// avatarMaxWidth caps profile pictures, which are only shown small.
	avatarMaxWidth = 512
	// uploadConcurrency bounds how many images of one request are compressed at once.
	uploadConcurrency = 4
	objectIDLength    = 21
)

// receiptFallbackTypes are stored as-is when a receipt cannot be compressed.
var receiptFallbackTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/bmp":       ".bmp",
	"application/pdf": ".pdf",
}

type mediaService struct {
	BaseService
	store   portsrepo.BlobStore
	opts    imaging.Options
	metrics *metrics.Metrics
	newID   func() string
}

// NewMediaService creates the image upload service. opts are the compression settings used
// for listing photos and receipts.
func NewMediaService(store portsrepo.BlobStore, opts imaging.Options, m *metrics.Metrics) (portssvc.MediaSvc, error) {
	idGenerator, err := nanoid.Standard(objectIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create object id generator: %w", err)
	}
	return &mediaService{store: store, opts: opts, metrics: m, newID: idGenerator}, nil
}

var _ portssvc.MediaSvc = (*mediaService)(nil)

func (s *mediaService) UploadListingImages(ctx context.Context, userID string, files []dto.FileUpload) []string {
	urls := make([]string, len(files))

	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for i, file := range files {
		g.Go(func() error {
			url, err := s.compressAndStore(ctx, portsrepo.BucketCars, userID, file, s.opts)
			if err != nil {
				// A single bad photo does not fail the listing.
				s.LogWarn(ctx, "Skipping listing image",
					slog.String("file", file.Name),
					slog.String("error", err.Error()))
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	_ = g.Wait()

	stored := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			stored = append(stored, u)
		}
	}
	return stored
}

func (s *mediaService) UploadReceipt(ctx context.Context, userID string, file dto.FileUpload) (string, error) {
	url, err := s.compressAndStore(ctx, portsrepo.BucketReceipts, userID, file, s.opts)
	if err == nil {
		return url, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if !isImageError(err) {
		return "", err
	}

	contentType := http.DetectContentType(file.Data)
	ext, ok := receiptFallbackTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported receipt type %s", apperrors.ErrValidation, contentType)
	}
	s.LogWarn(ctx, "Receipt compression failed, storing original",
		slog.String("content_type", contentType),
		slog.String("error", err.Error()))

	key := path.Join(userID, s.newID()+ext)
	url, err = s.store.Put(ctx, portsrepo.BucketReceipts, key, file.Data, contentType)
	if err != nil {
		s.metrics.ObserveImage(portsrepo.BucketReceipts, "failed", 0)
		s.LogError(ctx, err, "Failed to store receipt", slog.String("key", key))
		return "", fmt.Errorf("failed to store receipt: %w", err)
	}
	s.metrics.ObserveImage(portsrepo.BucketReceipts, "original", 0)
	return url, nil
}

func (s *mediaService) UploadAvatar(ctx context.Context, userID string, file dto.FileUpload) (string, error) {
	opts := s.opts
	opts.MaxWidth = avatarMaxWidth
	url, err := s.compressAndStore(ctx, portsrepo.BucketAvatars, userID, file, opts)
	if err != nil {
		if isImageError(err) {
			return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return "", err
	}
	return url, nil
}

func (s *mediaService) DeleteByURL(ctx context.Context, urls ...string) {
	for _, u := range urls {
		bucket, key, ok := s.store.KeyFromURL(u)
		if !ok {
			s.LogWarn(ctx, "Not deleting object with foreign URL", slog.String("url", u))
			continue
		}
		if err := s.store.Delete(ctx, bucket, key); err != nil {
			s.LogError(ctx, err, "Failed to delete stored object",
				slog.String("bucket", bucket), slog.String("key", key))
		}
	}
}

// compressAndStore re-encodes file as JPEG and stores it under bucket/<owner>/<id>.jpg.
func (s *mediaService) compressAndStore(ctx context.Context, bucket, owner string, file dto.FileUpload, opts imaging.Options) (string, error) {
	start := time.Now()
	res, err := imaging.Compress(ctx, bytes.NewReader(file.Data), opts)
	if err != nil {
		s.metrics.ObserveImage(bucket, "rejected", 0)
		return "", err
	}
	took := time.Since(start)

	key := path.Join(owner, s.newID()+imaging.Extension)
	url, err := s.store.Put(ctx, bucket, key, res.Data, res.ContentType)
	if err != nil {
		s.metrics.ObserveImage(bucket, "failed", took)
		return "", fmt.Errorf("failed to store %s/%s: %w", bucket, key, err)
	}

	s.metrics.ObserveImage(bucket, "ok", took)
	s.LogDebug(ctx, "Stored image",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("source_bytes", len(file.Data)),
		slog.Int("stored_bytes", len(res.Data)),
		slog.Int("width", res.Width),
		slog.Int("height", res.Height))
	return url, nil
}

// isImageError reports whether err came from the image itself rather than from storage.
func isImageError(err error) bool {
	for _, target := range []error{imaging.ErrDecode, imaging.ErrEmptyImage, imaging.ErrSurface, imaging.ErrEncode, imaging.ErrTooLarge} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
