package bookingchange

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/glowbeauty/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий журнала изменений записей.
// Журнал append-only: строки только добавляются, обновления и удаления
// не предусмотрены.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала изменений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет строку в журнал изменений.
// Вызывается в той же транзакции, что и само изменение записи.
func (r *Repository) Create(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_changes").
		Columns(
			"booking_id",
			"change_type",
			"previous_status",
			"new_status",
			"previous_staff_id",
			"new_staff_id",
			"previous_date",
			"new_date",
			"previous_time",
			"new_time",
			"reason",
			"actor",
		).
		Values(
			change.BookingID,
			change.ChangeType,
			change.PreviousStatus,
			change.NewStatus,
			change.PreviousStaffID,
			change.NewStaffID,
			change.PreviousDate,
			change.NewDate,
			change.PreviousTime,
			change.NewTime,
			change.Reason,
			change.Actor,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&change.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	change.CreatedAt = createdAt.Time

	return change, nil
}

// GetByBookingID получает историю изменений записи в хронологическом порядке
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"change_type",
		"previous_status",
		"new_status",
		"previous_staff_id",
		"new_staff_id",
		"previous_date",
		"new_date",
		"previous_time",
		"new_time",
		"reason",
		"actor",
		"created_at",
	).
		From("booking_changes").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	changes := make([]*domain.BookingChange, 0)
	for rows.Next() {
		var change domain.BookingChange
		var createdAt sql.NullTime

		err := rows.Scan(
			&change.ID,
			&change.BookingID,
			&change.ChangeType,
			&change.PreviousStatus,
			&change.NewStatus,
			&change.PreviousStaffID,
			&change.NewStaffID,
			&change.PreviousDate,
			&change.NewDate,
			&change.PreviousTime,
			&change.NewTime,
			&change.Reason,
			&change.Actor,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		change.CreatedAt = createdAt.Time
		changes = append(changes, &change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return changes, nil
}
