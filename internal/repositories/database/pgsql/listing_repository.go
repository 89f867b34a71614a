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

type PgxListingRepository struct {
	BaseRepository
}

func newPgxListingRepository(db *pgxpool.Pool) portsrepo.ListingRepositoryFacade {
	return &PgxListingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ListingRepositoryFacade = (*PgxListingRepository)(nil)

// Listings of soft-deleted users are never returned.
const listingSelectQuery = `
SELECT
	l.listing_id, l.user_id, l.title, l.price, l.currency, l.governorate, l.brand, l.year,
	l.transmission, l.fuel_type, l.description, l.images, l.is_premium,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
	u.full_name AS seller_name, u.phone AS seller_phone, u.created_at AS seller_joined_at
FROM listings l
JOIN users u ON u.user_id = l.user_id AND u.deleted_at IS NULL`

func (r *PgxListingRepository) getListings(ctx context.Context, qb *queryBuilder, tail string) ([]domain.Listing, error) {
	rows, err := r.Pool.Query(ctx, listingSelectQuery+qb.whereClause()+tail, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	listings, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Listing])
	if err != nil {
		return nil, fmt.Errorf("failed to collect listing rows: %w", err)
	}
	return mapping.ToDomainListingSlice(listings), nil
}

func (r *PgxListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	var qb queryBuilder
	qb.where("l.listing_id = " + qb.arg(listingID))
	listings, err := r.getListings(ctx, &qb, "")
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &listings[0], nil
}

// SearchListings orders by (created_at, listing_id) descending and continues after filter.Cursor.
func (r *PgxListingRepository) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	var qb queryBuilder
	if filter.UserID != "" {
		qb.where("l.user_id = " + qb.arg(filter.UserID))
	}
	if filter.Search != "" {
		p := qb.arg(containsPattern(filter.Search))
		qb.where(fmt.Sprintf("(l.title ILIKE %s OR l.brand ILIKE %s OR l.description ILIKE %s)", p, p, p))
	}
	if filter.Governorate != "" {
		qb.where("l.governorate = " + qb.arg(filter.Governorate))
	}
	if filter.PremiumOnly != nil {
		qb.where("l.is_premium = " + qb.arg(*filter.PremiumOnly))
	}
	if filter.MinPrice != nil {
		qb.where("l.price >= " + qb.arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		qb.where("l.price <= " + qb.arg(*filter.MaxPrice))
	}
	if filter.MinYear != nil {
		qb.where("l.year >= " + qb.arg(*filter.MinYear))
	}
	if filter.MaxYear != nil {
		qb.where("l.year <= " + qb.arg(*filter.MaxYear))
	}
	if filter.Transmission != "" {
		qb.where("l.transmission = " + qb.arg(string(filter.Transmission)))
	}
	if filter.FuelType != "" {
		qb.where("l.fuel_type = " + qb.arg(string(filter.FuelType)))
	}
	if filter.Cursor != nil {
		qb.where(fmt.Sprintf("(l.created_at, l.listing_id) < (%s, %s)",
			qb.arg(filter.Cursor.CreatedAt), qb.arg(filter.Cursor.ListingID)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	tail := " ORDER BY l.created_at DESC, l.listing_id DESC LIMIT " + qb.arg(limit)
	return r.getListings(ctx, &qb, tail)
}

func (r *PgxListingRepository) ListListingsForAdmin(ctx context.Context, filter domain.AdminListingFilter) ([]domain.Listing, error) {
	var qb queryBuilder
	if filter.PremiumOnly != nil {
		qb.where("l.is_premium = " + qb.arg(*filter.PremiumOnly))
	}
	if filter.Search != "" {
		p := qb.arg(containsPattern(filter.Search))
		qb.where(fmt.Sprintf("(l.title ILIKE %s OR l.brand ILIKE %s OR u.full_name ILIKE %s OR u.phone ILIKE %s)", p, p, p, p))
	}

	order := "DESC"
	if filter.Sort == domain.SortOldest {
		order = "ASC"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	tail := fmt.Sprintf(" ORDER BY l.created_at %s, l.listing_id %s LIMIT %s OFFSET %s",
		order, order, qb.arg(limit), qb.arg(max(filter.Offset, 0)))
	return r.getListings(ctx, &qb, tail)
}

func (r *PgxListingRepository) SaveListing(ctx context.Context, listing domain.Listing) error {
	m := mapping.ToModelListing(listing)
	query := `
		INSERT INTO listings (
			listing_id, user_id, title, price, currency, governorate, brand, year,
			transmission, fuel_type, description, images, is_premium,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ListingID, m.UserID, m.Title, m.Price, m.Currency, m.Governorate, m.Brand, m.Year,
		m.Transmission, m.FuelType, m.Description, m.Images, m.IsPremium,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "listing")
	}
	return nil
}

func (r *PgxListingRepository) UpdateListing(ctx context.Context, listing domain.Listing, previousImages []string) error {
	m := mapping.ToModelListing(listing)
	if previousImages == nil {
		previousImages = []string{}
	}
	query := `
		UPDATE listings
		SET title = $1, price = $2, currency = $3, governorate = $4, brand = $5, year = $6,
			transmission = $7, fuel_type = $8, description = $9, images = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE listing_id = $13 AND images = $14::text[];
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title, m.Price, m.Currency, m.Governorate, m.Brand, m.Year,
		m.Transmission, m.FuelType, m.Description, m.Images,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.ListingID, previousImages,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", m.ListingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missingOrChanged(ctx, m.ListingID, "images were changed by another request")
	}
	return nil
}

// AppendImages appends in a single statement so concurrent uploads cannot overwrite each other.
func (r *PgxListingRepository) AppendImages(ctx context.Context, listingID string, urls []string, maxImages int, updatedBy string, now time.Time) ([]string, error) {
	query := `
		UPDATE listings
		SET images = images || $1::text[], last_updated_at = $2, last_updated_by = $3
		WHERE listing_id = $4 AND cardinality(images) + cardinality($1::text[]) <= $5
		RETURNING images;
	`
	var images []string
	err := r.Pool.QueryRow(ctx, query, urls, now, updatedBy, listingID, maxImages).Scan(&images)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missingOrChanged(ctx, listingID, fmt.Sprintf("a listing can have at most %d images", maxImages))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append images to listing %s: %w", listingID, err)
	}
	return images, nil
}

// missingOrChanged explains a conditional update that touched no rows.
func (r *PgxListingRepository) missingOrChanged(ctx context.Context, listingID, reason string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE listing_id = $1);`, listingID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check listing %s: %w", listingID, err)
	}
	if !exists {
		return fmt.Errorf("listing %s: %w", listingID, apperrors.ErrNotFound)
	}
	return fmt.Errorf("listing %s: %s: %w", listingID, reason, apperrors.ErrConflict)
}

func (r *PgxListingRepository) SetPremium(ctx context.Context, listingID string, premium bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE listings
		SET is_premium = $1, last_updated_at = $2, last_updated_by = $3
		WHERE listing_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, premium, now, updatedBy, listingID)
	if err != nil {
		return fmt.Errorf("failed to set premium flag on listing %s: %w", listingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", listingID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteListing removes the listing; premium_requests rows cascade.
func (r *PgxListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM listings WHERE listing_id = $1;`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", listingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", listingID, apperrors.ErrNotFound)
	}
	return nil
}
