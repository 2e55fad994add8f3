package create_booking

import (
	"context"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// InsertBookingWithSlots атомарно создает бронирование, его слоты и платеж
	InsertBookingWithSlots(ctx context.Context, b *domain.Booking, payment *domain.Payment) (*domain.Booking, error)
	// FindOverlappingSlots получает активные слоты корта, пересекающие интервал [from, to)
	FindOverlappingSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error)
	// CountRequesterSlotsOnDate считает активные слоты пользователя или гостя за день
	CountRequesterSlotsOnDate(ctx context.Context, orgID int64, userID, guestID *int64, dayStart, dayEnd time.Time) (int, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error)
}

// GuestRepository интерфейс репозитория гостей
type GuestRepository interface {
	// GetOrCreateByEmail возвращает гостя организации по email, создавая при необходимости
	GetOrCreateByEmail(ctx context.Context, orgID int64, name, email string, phone *string) (*domain.Guest, error)
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
