package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_market_app/internal/models"
	"github.com/SscSPs/car_market_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPremiumRequestRepository struct {
	BaseRepository
}

func newPgxPremiumRequestRepository(db *pgxpool.Pool) portsrepo.PremiumRequestRepositoryFacade {
	return &PgxPremiumRequestRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PremiumRequestRepositoryFacade = (*PgxPremiumRequestRepository)(nil)

const premiumRequestSelectQuery = `
SELECT
	p.request_id, p.listing_id, p.user_id, p.receipt_url, p.status,
	p.created_at, p.reviewed_at, p.reviewed_by,
	l.title AS listing_title, l.price AS listing_price, l.currency AS listing_currency,
	u.full_name AS requester_name, u.phone AS requester_phone
FROM premium_requests p
LEFT JOIN listings l ON l.listing_id = p.listing_id
LEFT JOIN users u ON u.user_id = p.user_id`

func (r *PgxPremiumRequestRepository) getRequests(ctx context.Context, q pgxQuerier, tail string, args ...any) ([]domain.PremiumRequest, error) {
	rows, err := q.Query(ctx, premiumRequestSelectQuery+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query premium requests: %w", err)
	}
	requests, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.PremiumRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to collect premium request rows: %w", err)
	}
	return mapping.ToDomainPremiumRequestSlice(requests), nil
}

func (r *PgxPremiumRequestRepository) findByID(ctx context.Context, q pgxQuerier, requestID string) (*domain.PremiumRequest, error) {
	requests, err := r.getRequests(ctx, q, " WHERE p.request_id = $1", requestID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &requests[0], nil
}

func (r *PgxPremiumRequestRepository) FindPremiumRequestByID(ctx context.Context, requestID string) (*domain.PremiumRequest, error) {
	return r.findByID(ctx, r.Pool, requestID)
}

func (r *PgxPremiumRequestRepository) ListPremiumRequests(ctx context.Context, reviewed bool) ([]domain.PremiumRequest, error) {
	if reviewed {
		return r.getRequests(ctx, r.Pool, " WHERE p.status <> $1 ORDER BY p.reviewed_at DESC NULLS LAST, p.created_at DESC", string(domain.PremiumPending))
	}
	return r.getRequests(ctx, r.Pool, " WHERE p.status = $1 ORDER BY p.created_at DESC", string(domain.PremiumPending))
}

func (r *PgxPremiumRequestRepository) ListPendingByUser(ctx context.Context, userID string) ([]domain.PremiumRequest, error) {
	return r.getRequests(ctx, r.Pool, " WHERE p.user_id = $1 AND p.status = $2 ORDER BY p.created_at DESC", userID, string(domain.PremiumPending))
}

func (r *PgxPremiumRequestRepository) HasPendingRequest(ctx context.Context, listingID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM premium_requests WHERE listing_id = $1 AND status = $2);`,
		listingID, string(domain.PremiumPending),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending requests for listing %s: %w", listingID, err)
	}
	return exists, nil
}

// SavePremiumRequest inserts a request. A second pending request for the same listing
// violates the partial unique index and yields ErrDuplicate.
func (r *PgxPremiumRequestRepository) SavePremiumRequest(ctx context.Context, req domain.PremiumRequest) error {
	m := mapping.ToModelPremiumRequest(req)
	query := `
		INSERT INTO premium_requests (request_id, listing_id, user_id, receipt_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := r.Pool.Exec(ctx, query, m.RequestID, m.ListingID, m.UserID, m.ReceiptURL, m.Status, m.CreatedAt); err != nil {
		return mapWriteError(err, "premium request")
	}
	return nil
}

// ReviewPremiumRequest transitions a pending request. Only pending rows are updated, so
// concurrent reviews of the same request resolve to one winner and ErrConflict for the rest.
func (r *PgxPremiumRequestRepository) ReviewPremiumRequest(ctx context.Context, requestID string, status domain.PremiumRequestStatus, reviewerID string, now time.Time) (*domain.PremiumRequest, error) {
	if status != domain.PremiumApproved && status != domain.PremiumRejected {
		return nil, fmt.Errorf("%w: cannot review to status %q", apperrors.ErrValidation, status)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var listingID string
	err = tx.QueryRow(ctx, `
		UPDATE premium_requests
		SET status = $1, reviewed_at = $2, reviewed_by = $3
		WHERE request_id = $4 AND status = $5
		RETURNING listing_id;
	`, string(status), now, reviewerID, requestID, string(domain.PremiumPending)).Scan(&listingID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to review premium request %s: %w", requestID, err)
		}
		if _, findErr := r.findByID(ctx, tx, requestID); findErr != nil {
			return nil, findErr
		}
		return nil, fmt.Errorf("premium request %s was already reviewed: %w", requestID, apperrors.ErrConflict)
	}

	if status == domain.PremiumApproved {
		_, err = tx.Exec(ctx, `
			UPDATE listings
			SET is_premium = TRUE, last_updated_at = $1, last_updated_by = $2
			WHERE listing_id = $3;
		`, now, reviewerID, listingID)
		if err != nil {
			return nil, fmt.Errorf("failed to promote listing %s: %w", listingID, err)
		}
	}

	reviewed, err := r.findByID(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return reviewed, nil
}
