package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/dto"
)

// MediaSvc compresses and stores uploaded images.
type MediaSvc interface {
	// UploadListingImages stores each file under the owner's folder. Files that cannot be
	// compressed or stored are skipped; the URLs of the stored ones are returned in input order.
	UploadListingImages(ctx context.Context, userID string, files []dto.FileUpload) []string

	// UploadReceipt stores a payment receipt, falling back to the original bytes if it cannot be compressed.
	UploadReceipt(ctx context.Context, userID string, file dto.FileUpload) (string, error)

	// UploadAvatar stores a compressed avatar image.
	UploadAvatar(ctx context.Context, userID string, file dto.FileUpload) (string, error)

	// DeleteByURL removes previously stored objects. Failures are logged, not returned.
	DeleteByURL(ctx context.Context, urls ...string)
}
