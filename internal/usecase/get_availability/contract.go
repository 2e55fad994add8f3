package get_availability

import (
	"context"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	// GetByID получает корт по ID
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	// FindBlocksInRange получает блокировки корта, пересекающие интервал [from, to)
	FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindOverlappingSlots получает активные слоты корта, пересекающие интервал [from, to)
	FindOverlappingSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error)
}

// OrgServiceClient интерфейс клиента сервиса организаций
type OrgServiceClient interface {
	GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error)
}

// ExpirationSweeper ленивый проход чистильщика перед чтением календаря.
// Ошибка прохода не блокирует выдачу слотов.
type ExpirationSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
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
