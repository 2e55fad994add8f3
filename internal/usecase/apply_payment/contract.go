package apply_payment

import (
	"context"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetPaymentByGatewayRef получает платеж по ссылке шлюза; внутри транзакции
	// строка блокируется
	GetPaymentByGatewayRef(ctx context.Context, gatewayRef string) (*domain.Payment, error)
	// GetByID получает бронирование со слотами
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Confirm переводит бронирование в confirmed и закрывает платеж
	Confirm(ctx context.Context, bookingID int64, paidAt time.Time) error
	// MarkPaymentFailed помечает платеж как failed, бронирование не трогает
	MarkPaymentFailed(ctx context.Context, bookingID int64) error
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
