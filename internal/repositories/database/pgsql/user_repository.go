package pgsql

import (
	"context"
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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	u.user_id, u.phone, u.login_email, u.password_hash, u.full_name, u.role,
	u.avatar_url, u.address, u.date_of_birth,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by, u.deleted_at
FROM users u`

// getUsers runs userSelectQuery with the given tail (WHERE/ORDER/LIMIT).
func (r *PgxUserRepository) getUsers(ctx context.Context, tail string, args ...any) ([]models.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, tail string, args ...any) (*domain.User, error) {
	users, err := r.getUsers(ctx, tail, args...)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNotFound
	}
	user := mapping.ToDomainUser(users[0])
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, " WHERE u.user_id = $1 AND u.deleted_at IS NULL", userID)
}

func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, " WHERE u.phone = $1 AND u.deleted_at IS NULL", phone)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(filter.Offset, 0)

	var qb queryBuilder
	qb.where("u.deleted_at IS NULL")
	if filter.Role != nil {
		qb.where("u.role = " + qb.arg(string(*filter.Role)))
	}
	if filter.Search != "" {
		p := qb.arg(containsPattern(filter.Search))
		qb.where(fmt.Sprintf("(u.full_name ILIKE %s OR u.phone ILIKE %s)", p, p))
	}

	order := "DESC"
	if filter.Sort == domain.SortOldest {
		order = "ASC"
	}
	tail := qb.whereClause() +
		fmt.Sprintf(" ORDER BY u.created_at %s, u.user_id %s LIMIT %s OFFSET %s", order, order, qb.arg(limit), qb.arg(offset))

	users, err := r.getUsers(ctx, tail, qb.args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, phone, login_email, password_hash, full_name, role,
			avatar_url, address, date_of_birth,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Phone, m.LoginEmail, m.PasswordHash, m.FullName, m.Role,
		m.AvatarURL, m.Address, m.DateOfBirth,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET phone = $1, login_email = $2, full_name = $3, avatar_url = $4, address = $5,
			date_of_birth = $6, last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $9 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Phone, m.LoginEmail, m.FullName, m.AvatarURL, m.Address,
		m.DateOfBirth, m.LastUpdatedAt, m.LastUpdatedBy,
		m.UserID,
	)
	if err != nil {
		return mapWriteError(err, "user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET password_hash = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND deleted_at IS NULL;
	`
	return r.execUserUpdate(ctx, query, passwordHash, now, updatedBy, userID)
}

func (r *PgxUserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET role = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND deleted_at IS NULL;
	`
	return r.execUserUpdate(ctx, query, string(role), now, updatedBy, userID)
}

func (r *PgxUserRepository) execUserUpdate(ctx context.Context, query string, args ...any) error {
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkUserDeleted soft-deletes the user. Their listings and pending requests are
// removed in the same transaction so they stop appearing publicly.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE users
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3 AND deleted_at IS NULL;
	`, deletedAt, deletedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM listings WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete listings of user %s: %w", userID, err)
	}

	return r.Commit(ctx, tx)
}
