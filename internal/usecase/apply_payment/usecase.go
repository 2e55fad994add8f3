package apply_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
)

// UseCase use case применения итога платежа от шлюза
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

// Execute применяет итог платежа. Операция идемпотентна: повторная доставка
// того же события и любое событие по платежу в терминальном статусе
// игнорируются. Успех, пришедший после истечения дедлайна оплаты, бронирование
// не воскрешает: платеж к этому моменту уже переведен чистильщиком в expired.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyPayment: ref=%s, outcome=%s, amount=%d", req.GatewayRef, req.Outcome, req.AmountCents)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyPayment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var resp *Response

	// 2. Платеж и бронирование меняются под блокировкой строк, чтобы вебхук
	// не гонялся с чистильщиком и отменой
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		payment, err := uc.bookingRepo.GetPaymentByGatewayRef(txCtx, req.GatewayRef)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrPaymentNotFound) {
				uc.logger.Warn("ApplyPayment: payment ref=%s not found", req.GatewayRef)
				return ErrPaymentNotFound
			}
			uc.logger.Error("ApplyPayment: failed to get payment ref=%s: %v", req.GatewayRef, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		booking, err := uc.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			uc.logger.Error("ApplyPayment: failed to get booking id=%d: %v", payment.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Терминальный платеж больше не меняется: сюда попадают и повторные
		// доставки, и запоздавший успех после истечения дедлайна
		if payment.IsTerminal() {
			uc.logger.Info("ApplyPayment: payment ref=%s already %s, ignoring %s",
				req.GatewayRef, payment.Status, req.Outcome)
			resp = &Response{
				BookingID:        booking.ID,
				BookingStatus:    string(booking.Status),
				PaymentStatus:    string(payment.Status),
				AlreadyProcessed: true,
			}
			return nil
		}

		switch req.Outcome {
		case domain.OutcomeCompleted:
			if req.AmountCents != payment.AmountCents {
				uc.logger.Warn("ApplyPayment: amount mismatch for ref=%s: got %d, expected %d",
					req.GatewayRef, req.AmountCents, payment.AmountCents)
				return fmt.Errorf("%w: got %d, expected %d", ErrAmountMismatch, req.AmountCents, payment.AmountCents)
			}

			if booking.Status != domain.StatusPendingPayment {
				// Платеж pending при нетерминальном бронировании вне
				// pending_payment не встречается; страховка от рассинхрона
				uc.logger.Error("ApplyPayment: booking id=%d has status %s with pending payment",
					booking.ID, booking.Status)
				return fmt.Errorf("%w: booking is not awaiting payment", ErrInternal)
			}

			if err := uc.bookingRepo.Confirm(txCtx, booking.ID, now); err != nil {
				uc.logger.Error("ApplyPayment: failed to confirm booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
			}
			resp = &Response{
				BookingID:     booking.ID,
				BookingStatus: string(domain.StatusConfirmed),
				PaymentStatus: string(domain.PaymentCompleted),
			}

		case domain.OutcomeFailed:
			// Неудачный платеж не терминален для бронирования: оно остается
			// pending_payment до дедлайна, пользователь может заплатить снова
			// по новому событию шлюза
			if err := uc.bookingRepo.MarkPaymentFailed(txCtx, booking.ID); err != nil {
				uc.logger.Error("ApplyPayment: failed to mark payment failed for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to mark payment failed: %v", ErrInternal, err)
			}
			resp = &Response{
				BookingID:     booking.ID,
				BookingStatus: string(booking.Status),
				PaymentStatus: string(domain.PaymentFailed),
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyPayment: ref=%s applied, booking id=%d status=%s, payment status=%s",
		req.GatewayRef, resp.BookingID, resp.BookingStatus, resp.PaymentStatus)
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.GatewayRef == "" {
		return fmt.Errorf("%w: gateway ref is required", ErrInvalidInput)
	}
	if req.Outcome != domain.OutcomeCompleted && req.Outcome != domain.OutcomeFailed {
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, req.Outcome)
	}
	if req.Outcome == domain.OutcomeCompleted && req.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}
