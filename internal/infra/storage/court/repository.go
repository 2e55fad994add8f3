package court

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/courtops/CourtBookingService/internal/domain"
	"github.com/courtops/CourtBookingService/pkg/dbmetrics"
	"github.com/courtops/CourtBookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var courtColumns = []string{
	"id",
	"organization_id",
	"name",
	"open_time",
	"close_time",
	"slot_duration_minutes",
	"price_per_hour_cents",
	"peak_price_per_hour_cents",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога ресурсов: корты и их блокировки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кортов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый корт
func (r *Repository) Create(ctx context.Context, c *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("courts").
		Columns(
			"organization_id",
			"name",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"price_per_hour_cents",
			"peak_price_per_hour_cents",
			"is_active",
		).
		Values(
			c.OrganizationID,
			c.Name,
			c.OpenTime,
			c.CloseTime,
			c.SlotDurationMinutes,
			c.PricePerHourCents,
			c.PeakPricePerHourCents,
			c.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}

// GetByID получает корт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanCourt(executor.QueryRowContext(ctx, query, args...))
}

// GetByOrganizationID получает корты организации.
// При onlyActive=true возвращает только активные.
func (r *Repository) GetByOrganizationID(ctx context.Context, orgID int64, onlyActive bool) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pred := squirrel.And{squirrel.Eq{"organization_id": orgID}}
	if onlyActive {
		pred = append(pred, squirrel.Eq{"is_active": true})
	}

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(pred).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationID - rows error: %v", ErrScanRow, err)
	}
	return courts, nil
}

// Update обновляет настройки корта. Ценовые изменения не затрагивают
// уже созданные бронирования - их слоты хранят цену на момент создания.
func (r *Repository) Update(ctx context.Context, c *domain.Court) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("courts").
		Set("name", c.Name).
		Set("open_time", c.OpenTime).
		Set("close_time", c.CloseTime).
		Set("slot_duration_minutes", c.SlotDurationMinutes).
		Set("price_per_hour_cents", c.PricePerHourCents).
		Set("peak_price_per_hour_cents", c.PeakPricePerHourCents).
		Set("is_active", c.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID, "organization_id": c.OrganizationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCourtNotFound
	}
	return nil
}

// Delete физически удаляет корт. Вызывающий обязан проверить guard
// «нет активных слотов» до удаления.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCourtNotFound
	}
	return nil
}

// CreateBlock создает блокировку корта
func (r *Repository) CreateBlock(ctx context.Context, b *domain.CourtBlock) (*domain.CourtBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("court_blocks").
		Columns("court_id", "organization_id", "start_time", "end_time", "reason").
		Values(b.CourtID, b.OrganizationID, b.StartTime, b.EndTime, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time
	return b, nil
}

// FindBlocksInRange возвращает блокировки корта, пересекающие интервал
// [from, to)
func (r *Repository) FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "court_id", "organization_id", "start_time", "end_time", "reason", "created_at",
	).
		From("court_blocks").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlocksInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlocksInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.CourtBlock, 0)
	for rows.Next() {
		var b domain.CourtBlock
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.CourtID, &b.OrganizationID, &b.StartTime, &b.EndTime, &b.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: FindBlocksInRange - scan block: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindBlocksInRange - rows error: %v", ErrScanRow, err)
	}
	return blocks, nil
}

// DeleteBlock удаляет блокировку корта в пределах организации
func (r *Repository) DeleteBlock(ctx context.Context, id, orgID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("court_blocks").
		Where(squirrel.Eq{"id": id, "organization_id": orgID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourt(row rowScanner) (*domain.Court, error) {
	var c domain.Court
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.OrganizationID,
		&c.Name,
		&c.OpenTime,
		&c.CloseTime,
		&c.SlotDurationMinutes,
		&c.PricePerHourCents,
		&c.PeakPricePerHourCents,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanCourt - scan row: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
