package guest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/courtops/CourtBookingService/internal/domain"
	"github.com/courtops/CourtBookingService/pkg/dbmetrics"
	"github.com/courtops/CourtBookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий гостей (анонимных бронирующих)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrCreateByEmail резолвит гостя по (организация, email), создавая
// запись при первом бронировании. Email нормализуется к нижнему регистру.
// Гонка двух одновременных гостевых бронирований разрешается через
// ON CONFLICT DO UPDATE - оба запроса получают одну и ту же строку.
func (r *Repository) GetOrCreateByEmail(ctx context.Context, orgID int64, name, email string, phone *string) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	normalized := strings.ToLower(strings.TrimSpace(email))

	query, args, err := psqlbuilder.Insert("guests").
		Columns("organization_id", "name", "email", "phone", "public_token").
		Values(orgID, name, normalized, phone, uuid.NewString()).
		Suffix("ON CONFLICT (organization_id, email) DO UPDATE SET name = EXCLUDED.name").
		Suffix("RETURNING id, organization_id, name, email, phone, public_token, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreateByEmail - build upsert: %v", ErrBuildQuery, err)
	}

	return scanGuest(executor.QueryRowContext(ctx, query, args...))
}

// GetByID получает гостя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "organization_id", "name", "email", "phone", "public_token", "created_at",
	).
		From("guests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanGuest(executor.QueryRowContext(ctx, query, args...))
}

func scanGuest(row *sql.Row) (*domain.Guest, error) {
	var g domain.Guest
	var createdAt sql.NullTime

	err := row.Scan(&g.ID, &g.OrganizationID, &g.Name, &g.Email, &g.Phone, &g.PublicToken, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanGuest - scan row: %v", ErrScanRow, err)
	}

	g.CreatedAt = createdAt.Time
	return &g, nil
}
