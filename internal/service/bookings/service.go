package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	"github.com/courtops/CourtBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	orgService  OrgServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, orgService OrgServiceClient, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		orgService:  orgService,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свое бронирование; администратор организации
// видит любое бронирование организации, включая гостевые.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOrganizationBookings получает бронирования организации с фильтрацией
// по корту, периоду и статусу. Доступно только администраторам организации.
func (s *Service) GetOrganizationBookings(ctx context.Context, req *models.GetOrganizationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOrganizationBookings: fetching bookings for org=%d, user=%d", req.OrganizationID, req.UserID)

	if err := s.checkAdminAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOrganizationBookings: invalid filter for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOrganizationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOrganizationBookings: repository error for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: GetOrganizationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrganizationBookings: successfully fetched %d bookings for org=%d",
		len(bookings), req.OrganizationID)
	return models.FromDomainBookingList(bookings), nil
}

// checkUserAccess проверяет, что пользователь владеет бронированием или
// администрирует организацию бронирования
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID != nil && *booking.UserID == userID {
		return nil
	}
	return s.checkAdminAccess(ctx, booking.OrganizationID, userID)
}

// checkAdminAccess проверяет, что пользователь администрирует организацию
func (s *Service) checkAdminAccess(ctx context.Context, orgID, userID int64) error {
	org, err := s.orgService.GetOrganization(ctx, orgID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to get organization id=%d: %v", orgID, err)
		return fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}
	if !org.IsAdmin(userID) {
		return ErrAccessDenied
	}
	return nil
}
