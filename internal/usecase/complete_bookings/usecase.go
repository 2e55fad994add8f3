package complete_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("complete_bookings: internal error")

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CompleteElapsed переводит подтвержденные бронирования с прошедшим
	// последним слотом в completed и возвращает их ID
	CompleteElapsed(ctx context.Context, now time.Time) ([]int64, error)
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

// Response модель результата прохода
type Response struct {
	CompletedCount int     // Число завершенных бронирований
	BookingIDs     []int64 // ID завершенных бронирований
}

// UseCase use case завершения отыгранных бронирований.
// Одиночный UPDATE, транзакция не нужна.
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит в completed все подтвержденные бронирования, у которых
// последний слот уже закончился
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	ids, err := uc.bookingRepo.CompleteElapsed(ctx, now)
	if err != nil {
		uc.logger.Error("CompleteBookings: failed to complete bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to complete bookings: %v", ErrInternal, err)
	}

	if len(ids) > 0 {
		uc.logger.Info("CompleteBookings: completed %d bookings: %v", len(ids), ids)
	}

	return &Response{CompletedCount: len(ids), BookingIDs: ids}, nil
}
