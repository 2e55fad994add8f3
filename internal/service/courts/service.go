package courts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/courtops/CourtBookingService/internal/domain"
	courtRepo "github.com/courtops/CourtBookingService/internal/infra/storage/court"
	"github.com/courtops/CourtBookingService/internal/service/courts/models"
	"github.com/courtops/CourtBookingService/pkg/types"
)

// Service сервис управления каталогом кортов и блокировками.
// Все мутации доступны только администраторам организации.
type Service struct {
	courtRepo    CourtRepository
	bookingRepo  BookingRepository
	orgService   OrgServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса кортов
func NewService(
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	orgService OrgServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		courtRepo:    courtRepo,
		bookingRepo:  bookingRepo,
		orgService:   orgService,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateCourt создает корт организации
func (s *Service) CreateCourt(ctx context.Context, req *models.CreateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("CreateCourt: org=%d, user=%d, name=%q", req.OrganizationID, req.UserID, req.Name)

	org, err := s.checkAdminAccess(ctx, req.OrganizationID, req.UserID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.PricePerHourCents <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	openTime, closeTime, err := parseOperatingHours(req.OpenTime, req.CloseTime)
	if err != nil {
		return nil, err
	}

	duration := org.SlotDurationMinutes
	if req.SlotDurationMinutes != nil {
		duration = *req.SlotDurationMinutes
	}
	if err := validateSlotDuration(duration); err != nil {
		return nil, err
	}

	court := &domain.Court{
		OrganizationID:        req.OrganizationID,
		Name:                  strings.TrimSpace(req.Name),
		OpenTime:              openTime,
		CloseTime:             closeTime,
		SlotDurationMinutes:   duration,
		PricePerHourCents:     req.PricePerHourCents,
		PeakPricePerHourCents: req.PeakPricePerHourCents,
		IsActive:              true,
	}

	created, err := s.courtRepo.Create(ctx, court)
	if err != nil {
		s.logger.Error("CreateCourt: repository error for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: CreateCourt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCourt: successfully created court id=%d for org=%d", created.ID, req.OrganizationID)
	return models.FromDomainCourt(created), nil
}

// GetCourt получает корт организации
func (s *Service) GetCourt(ctx context.Context, orgID, courtID int64) (*models.CourtResponse, error) {
	court, err := s.getOrganizationCourt(ctx, orgID, courtID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCourt(court), nil
}

// ListCourts получает корты организации.
// Неактивные корты видны только администраторам.
func (s *Service) ListCourts(ctx context.Context, orgID, userID int64, includeInactive bool) (*models.CourtListResponse, error) {
	s.logger.Info("ListCourts: org=%d, includeInactive=%v", orgID, includeInactive)

	if includeInactive {
		if _, err := s.checkAdminAccess(ctx, orgID, userID); err != nil {
			return nil, err
		}
	}

	courts, err := s.courtRepo.GetByOrganizationID(ctx, orgID, !includeInactive)
	if err != nil {
		s.logger.Error("ListCourts: repository error for org=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: ListCourts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCourtList(courts), nil
}

// UpdateCourt обновляет корт организации; nil поля запроса не меняются
func (s *Service) UpdateCourt(ctx context.Context, req *models.UpdateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("UpdateCourt: org=%d, court=%d, user=%d", req.OrganizationID, req.CourtID, req.UserID)

	if _, err := s.checkAdminAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	court, err := s.getOrganizationCourt(ctx, req.OrganizationID, req.CourtID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		court.Name = strings.TrimSpace(*req.Name)
	}

	openStr, closeStr := court.OpenTime.String(), court.CloseTime.String()
	if req.OpenTime != nil {
		openStr = *req.OpenTime
	}
	if req.CloseTime != nil {
		closeStr = *req.CloseTime
	}
	court.OpenTime, court.CloseTime, err = parseOperatingHours(openStr, closeStr)
	if err != nil {
		return nil, err
	}

	if req.SlotDurationMinutes != nil {
		if err := validateSlotDuration(*req.SlotDurationMinutes); err != nil {
			return nil, err
		}
		court.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.PricePerHourCents != nil {
		if *req.PricePerHourCents <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
		}
		court.PricePerHourCents = *req.PricePerHourCents
	}
	if req.PeakPricePerHourCents != nil {
		court.PeakPricePerHourCents = req.PeakPricePerHourCents
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}

	if err := s.courtRepo.Update(ctx, court); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		s.logger.Error("UpdateCourt: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: UpdateCourt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateCourt: successfully updated court id=%d", court.ID)
	return models.FromDomainCourt(court), nil
}

// DeleteCourt удаляет корт организации.
// Корт с активными слотами в будущем удалить нельзя.
func (s *Service) DeleteCourt(ctx context.Context, orgID, courtID, userID int64) error {
	s.logger.Info("DeleteCourt: org=%d, court=%d, user=%d", orgID, courtID, userID)

	if _, err := s.checkAdminAccess(ctx, orgID, userID); err != nil {
		return err
	}

	if _, err := s.getOrganizationCourt(ctx, orgID, courtID); err != nil {
		return err
	}

	hasSlots, err := s.bookingRepo.HasActiveSlotsAfter(ctx, courtID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("DeleteCourt: failed to check active slots for court=%d: %v", courtID, err)
		return fmt.Errorf("%w: DeleteCourt - failed to check active slots: %v", ErrInternal, err)
	}
	if hasSlots {
		s.logger.Warn("DeleteCourt: court id=%d has active future bookings", courtID)
		return ErrCourtHasBookings
	}

	if err := s.courtRepo.Delete(ctx, courtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			return ErrCourtNotFound
		}
		s.logger.Error("DeleteCourt: repository error for court=%d: %v", courtID, err)
		return fmt.Errorf("%w: DeleteCourt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteCourt: successfully deleted court id=%d", courtID)
	return nil
}

// CreateBlock блокирует интервал корта.
// Интервал с подтвержденными бронированиями заблокировать нельзя; проверка
// и вставка идут в одной сериализуемой транзакции, чтобы не гоняться с
// созданием бронирований.
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: org=%d, court=%d, user=%d, range=[%s, %s)",
		req.OrganizationID, req.CourtID, req.UserID, req.StartTime, req.EndTime)

	if _, err := s.checkAdminAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: invalid block time range", ErrInvalidInput)
	}

	if _, err := s.getOrganizationCourt(ctx, req.OrganizationID, req.CourtID); err != nil {
		return nil, err
	}

	block := &domain.CourtBlock{
		CourtID:        req.CourtID,
		OrganizationID: req.OrganizationID,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime.UTC(),
		Reason:         req.Reason,
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		confirmed, err := s.bookingRepo.FindConfirmedSlots(txCtx, req.CourtID, block.StartTime, block.EndTime)
		if err != nil {
			s.logger.Error("CreateBlock: failed to check confirmed slots for court=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: CreateBlock - failed to check confirmed slots: %v", ErrInternal, err)
		}
		if len(confirmed) > 0 {
			s.logger.Warn("CreateBlock: court id=%d has %d confirmed slots in range", req.CourtID, len(confirmed))
			return ErrCourtHasBookings
		}

		created, err := s.courtRepo.CreateBlock(txCtx, block)
		if err != nil {
			s.logger.Error("CreateBlock: repository error for court=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
		}
		block = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateBlock: successfully created block id=%d for court=%d", block.ID, req.CourtID)
	return models.FromDomainBlock(block), nil
}

// DeleteBlock снимает блокировку корта
func (s *Service) DeleteBlock(ctx context.Context, orgID, blockID, userID int64) error {
	s.logger.Info("DeleteBlock: org=%d, block=%d, user=%d", orgID, blockID, userID)

	if _, err := s.checkAdminAccess(ctx, orgID, userID); err != nil {
		return err
	}

	if err := s.courtRepo.DeleteBlock(ctx, blockID, orgID); err != nil {
		if errors.Is(err, courtRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: successfully deleted block id=%d", blockID)
	return nil
}

// getOrganizationCourt получает корт и проверяет принадлежность организации
func (s *Service) getOrganizationCourt(ctx context.Context, orgID, courtID int64) (*domain.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		s.logger.Error("getOrganizationCourt: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if court.OrganizationID != orgID {
		return nil, ErrCourtNotFound
	}
	return court, nil
}

// checkAdminAccess проверяет, что пользователь администрирует организацию
func (s *Service) checkAdminAccess(ctx context.Context, orgID, userID int64) (*domain.Organization, error) {
	org, err := s.orgService.GetOrganization(ctx, orgID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to get organization id=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}
	if !org.IsAdmin(userID) {
		s.logger.Warn("checkAdminAccess: user=%d is not an admin of org=%d", userID, orgID)
		return nil, ErrAccessDenied
	}
	return org, nil
}

// parseOperatingHours парсит и проверяет часы работы корта
func parseOperatingHours(openStr, closeStr string) (types.TimeString, types.TimeString, error) {
	openTime, err := types.NewTimeStringFromString(openStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid open time %q", ErrInvalidInput, openStr)
	}
	closeTime, err := types.NewTimeStringFromString(closeStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid close time %q", ErrInvalidInput, closeStr)
	}
	if !openTime.IsBefore(closeTime) {
		return "", "", fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}
	return openTime, closeTime, nil
}

// validateSlotDuration проверяет длительность слота корта
func validateSlotDuration(minutes int) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if minutes%5 != 0 {
		return fmt.Errorf("%w: slot duration must be a multiple of 5 minutes", ErrInvalidInput)
	}
	return nil
}
