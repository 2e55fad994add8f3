package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtops/CourtBookingService/internal/domain"
	courtRepo "github.com/courtops/CourtBookingService/internal/infra/storage/court"
	orgClient "github.com/courtops/CourtBookingService/internal/integrations/orgservice"
)

// UseCase use case получения календаря доступности корта на день
type UseCase struct {
	courtRepo    CourtRepository
	bookingRepo  BookingRepository
	orgService   OrgServiceClient
	sweeper      ExpirationSweeper
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	orgService OrgServiceClient,
	sweeper ExpirationSweeper,
	logger Logger,
) *UseCase {
	return &UseCase{
		courtRepo:    courtRepo,
		bookingRepo:  bookingRepo,
		orgService:   orgService,
		sweeper:      sweeper,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: org=%d, court=%d, date=%s",
		req.OrganizationID, req.CourtID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Ленивый проход чистильщика: протухшие pending-бронирования
	// освобождают слоты до чтения календаря. Ошибка не блокирует выдачу.
	if expired, err := uc.sweeper.SweepExpired(ctx); err != nil {
		uc.logger.Warn("GetAvailability: lazy sweep failed: %v", err)
	} else if expired > 0 {
		uc.logger.Info("GetAvailability: lazy sweep expired %d bookings", expired)
	}

	// 3. Получаем организацию и ее часовой пояс
	org, err := uc.orgService.GetOrganization(ctx, req.OrganizationID)
	if err != nil {
		if errors.Is(err, orgClient.ErrOrganizationNotFound) {
			uc.logger.Warn("GetAvailability: organization id=%d not found", req.OrganizationID)
			return nil, ErrOrganizationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get organization id=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}

	loc, err := org.Location()
	if err != nil {
		uc.logger.Error("GetAvailability: invalid timezone %q for organization id=%d: %v",
			org.Timezone, org.ID, err)
		return nil, fmt.Errorf("%w: invalid organization timezone: %v", ErrInternal, err)
	}

	// 4. Валидация даты относительно "сегодня" в поясе организации
	localNow := uc.timeProvider.Now().In(loc)
	if err := validateDate(req.Date, localNow, org.BookingWindowDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем корт и проверяем принадлежность организации
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	if court.OrganizationID != req.OrganizationID || !court.IsActive {
		uc.logger.Warn("GetAvailability: court id=%d not available in organization id=%d",
			req.CourtID, req.OrganizationID)
		return nil, ErrCourtNotFound
	}

	// 6. Генерируем слоты дня
	candidates, err := buildDaySlots(court, org, req.Date, loc)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build slots for court id=%d: %v", court.ID, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	// 7. Накладываем занятость: активные слоты бронирований и блокировки
	dayStart, dayEnd := dayBoundsUTC(req.Date, loc)

	booked, err := uc.bookingRepo.FindOverlappingSlots(ctx, court.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	blocks, err := uc.courtRepo.FindBlocksInRange(ctx, court.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get court blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get court blocks: %v", ErrInternal, err)
	}

	markOccupied(candidates, collectOccupied(booked, blocks))

	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = Slot{
			StartTime:   c.StartTime,
			EndTime:     c.EndTime,
			PriceCents:  c.PriceCents,
			IsPeak:      c.IsPeak,
			IsAvailable: c.IsAvailable,
		}
	}

	uc.logger.Info("GetAvailability: generated %d slots for court=%d, date=%s",
		len(slots), court.ID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:           req.Date,
		OrganizationID: req.OrganizationID,
		CourtID:        req.CourtID,
		Currency:       org.Currency,
		Slots:          slots,
	}, nil
}
