package sweep_expired

import (
	"context"
	"errors"
	"fmt"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("sweep_expired: internal error")

// Response модель результата прохода чистильщика
type Response struct {
	ExpiredCount int     // Число протухших бронирований
	BookingIDs   []int64 // ID протухших бронирований
}

// UseCase use case прохода чистильщика: просроченные pending_payment
// бронирования переводятся в expired, их слоты освобождаются.
// Вызывается планировщиком по таймеру и лениво перед чтением календаря.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход чистильщика.
// Бронирование, его слоты и платеж меняются в одной транзакции; повторный
// проход ничего нового не находит.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	var ids []int64
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		expired, err := uc.bookingRepo.ExpireDue(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: failed to expire bookings: %v", ErrInternal, err)
		}
		ids = expired
		return nil
	})
	if err != nil {
		uc.logger.Error("SweepExpired: %v", err)
		return nil, err
	}

	if len(ids) > 0 {
		uc.logger.Info("SweepExpired: expired %d bookings: %v", len(ids), ids)
	}

	return &Response{ExpiredCount: len(ids), BookingIDs: ids}, nil
}

// SweepExpired выполняет проход и возвращает только число протухших
// бронирований. Форма для вызова из других use case.
func (uc *UseCase) SweepExpired(ctx context.Context) (int, error) {
	resp, err := uc.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return resp.ExpiredCount, nil
}
