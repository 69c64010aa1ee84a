package featureflag

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/glowbeauty/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с фиче-флагами.
// Флаги читаются из БД на каждый запрос — состояние меняется
// без перезапуска сервиса.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория фиче-флагов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает флаг по имени
func (r *Repository) Get(ctx context.Context, name string) (*domain.FeatureFlag, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"name",
		"enabled",
		"updated_by",
		"updated_at",
	).
		From("feature_flags").
		Where(squirrel.Eq{"name": name}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var flag domain.FeatureFlag
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&flag.Name,
		&flag.Enabled,
		&flag.UpdatedBy,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFlagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan flag: %v", ErrScanRow, err)
	}

	flag.UpdatedAt = updatedAt.Time

	return &flag, nil
}

// IsEnabled возвращает текущее состояние флага.
// Неизвестный флаг считается выключенным.
func (r *Repository) IsEnabled(ctx context.Context, name string) (bool, error) {
	flag, err := r.Get(ctx, name)
	if err == ErrFlagNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return flag.Enabled, nil
}

// GetAll получает все флаги
func (r *Repository) GetAll(ctx context.Context) ([]*domain.FeatureFlag, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"name",
		"enabled",
		"updated_by",
		"updated_at",
	).
		From("feature_flags").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	flags := make([]*domain.FeatureFlag, 0)
	for rows.Next() {
		var flag domain.FeatureFlag
		var updatedAt sql.NullTime

		if err := rows.Scan(&flag.Name, &flag.Enabled, &flag.UpdatedBy, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		flag.UpdatedAt = updatedAt.Time
		flags = append(flags, &flag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return flags, nil
}

// Upsert создает флаг или обновляет его состояние
func (r *Repository) Upsert(ctx context.Context, name string, enabled bool, updatedBy *string) (*domain.FeatureFlag, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("feature_flags").
		Columns("name", "enabled", "updated_by").
		Values(name, enabled, updatedBy).
		Suffix(`ON CONFLICT (name) DO UPDATE
			SET enabled = EXCLUDED.enabled, updated_by = EXCLUDED.updated_by, updated_at = NOW()
			RETURNING name, enabled, updated_by, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var flag domain.FeatureFlag
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&flag.Name,
		&flag.Enabled,
		&flag.UpdatedBy,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	flag.UpdatedAt = updatedAt.Time

	return &flag, nil
}
