package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	orgClient "github.com/courtops/CourtBookingService/internal/integrations/orgservice"
)

const (
	reasonCancelledByUser  = "cancelled by user"
	reasonCancelledByAdmin = "cancelled by admin"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	orgService   OrgServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orgService OrgServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orgService:   orgService,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Владелец может отменить подтвержденное бронирование до начала первого
// слота; администратор организации отменяет в любой момент.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Читаем бронирование без блокировки, чтобы узнать организацию
	// и проверить доступ до открытия транзакции
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	org, err := uc.orgService.GetOrganization(ctx, booking.OrganizationID)
	if err != nil {
		if errors.Is(err, orgClient.ErrOrganizationNotFound) {
			uc.logger.Error("CancelBooking: organization id=%d of booking id=%d not found",
				booking.OrganizationID, booking.ID)
			return nil, fmt.Errorf("%w: organization not found", ErrInternal)
		}
		uc.logger.Error("CancelBooking: failed to get organization id=%d: %v", booking.OrganizationID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}

	isAdmin := org.IsAdmin(req.UserID)
	if !isAdmin && (booking.UserID == nil || *booking.UserID != req.UserID) {
		uc.logger.Warn("CancelBooking: user id=%d has no access to booking id=%d", req.UserID, booking.ID)
		return nil, ErrAccessDenied
	}

	reason := cancelReason(req, isAdmin)

	var cancelled *domain.Booking

	// 3. Проверку статуса и отмену выполняем под блокировкой строки,
	// чтобы не гоняться с подтверждением оплаты и чистильщиком
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		if b.Status != domain.StatusConfirmed {
			uc.logger.Warn("CancelBooking: booking id=%d has status %s", b.ID, b.Status)
			return ErrCannotCancel
		}

		// Владелец не может отменить уже начавшееся бронирование
		if !isAdmin && !b.CanBeCancelled(now) {
			uc.logger.Warn("CancelBooking: booking id=%d already started", b.ID)
			return ErrCannotCancel
		}

		if err := uc.bookingRepo.Cancel(txCtx, b.ID, reason, now); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		cancelled = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d, reason=%q", cancelled.ID, reason)

	return &Response{
		ID:           cancelled.ID,
		Status:       string(domain.StatusCancelled),
		CancelledAt:  now,
		CancelReason: reason,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}

// cancelReason выбирает причину отмены: явная из запроса либо по роли инициатора
func cancelReason(req *Request, isAdmin bool) string {
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		return strings.TrimSpace(*req.Reason)
	}
	if isAdmin {
		return reasonCancelledByAdmin
	}
	return reasonCancelledByUser
}
