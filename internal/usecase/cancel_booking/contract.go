package cancel_booking

import (
	"context"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByID получает бронирование со слотами; внутри транзакции строка блокируется
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Cancel переводит подтвержденное бронирование в cancelled и освобождает слоты
	Cancel(ctx context.Context, bookingID int64, reason string, cancelledAt time.Time) error
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
