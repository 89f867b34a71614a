package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_market_app/internal/models"
	"github.com/SscSPs/car_market_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingRepository struct {
	BaseRepository
}

func newPgxSettingRepository(db *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

const settingSelectQuery = `SELECT key, value, updated_at, updated_by FROM settings`

func (r *PgxSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	settings, err := r.list(ctx, " WHERE key = $1", key)
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("setting %q: %w", key, apperrors.ErrNotFound)
	}
	return &settings[0], nil
}

func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return r.list(ctx, " ORDER BY key")
}

func (r *PgxSettingRepository) list(ctx context.Context, tail string, args ...any) ([]domain.Setting, error) {
	rows, err := r.Pool.Query(ctx, settingSelectQuery+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Setting])
	if err != nil {
		return nil, fmt.Errorf("failed to collect setting rows: %w", err)
	}
	settings := make([]domain.Setting, len(ms))
	for i, m := range ms {
		settings[i] = mapping.ToDomainSetting(m)
	}
	return settings, nil
}

func (r *PgxSettingRepository) UpsertSettings(ctx context.Context, settings []domain.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	query := `
		INSERT INTO settings (key, value, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, s := range settings {
		m := mapping.ToModelSetting(s)
		batch.Queue(query, m.Key, m.Value, m.UpdatedAt, m.UpdatedBy)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return r.Commit(ctx, tx)
}
