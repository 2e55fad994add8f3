package courts

import (
	"context"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	Create(ctx context.Context, c *domain.Court) (*domain.Court, error)
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	GetByOrganizationID(ctx context.Context, orgID int64, onlyActive bool) ([]*domain.Court, error)
	Update(ctx context.Context, c *domain.Court) error
	Delete(ctx context.Context, id int64) error
	CreateBlock(ctx context.Context, b *domain.CourtBlock) (*domain.CourtBlock, error)
	FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error)
	DeleteBlock(ctx context.Context, id, orgID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// HasActiveSlotsAfter проверяет наличие активных слотов корта после момента
	HasActiveSlotsAfter(ctx context.Context, courtID int64, after time.Time) (bool, error)
	// FindConfirmedSlots получает подтвержденные слоты корта в интервале [from, to)
	FindConfirmedSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error)
}

// OrgServiceClient интерфейс клиента сервиса организаций
type OrgServiceClient interface {
	GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
