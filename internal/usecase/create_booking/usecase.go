package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	courtRepo "github.com/courtops/CourtBookingService/internal/infra/storage/court"
	orgClient "github.com/courtops/CourtBookingService/internal/integrations/orgservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	guestRepo    GuestRepository
	orgService   OrgServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	guestRepo GuestRepository,
	orgService OrgServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		guestRepo:    guestRepo,
		orgService:   orgService,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции;
// exclusion constraint на booking_slots страхует от двойного бронирования,
// если конкурентная транзакция успела закоммититься первой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: org=%d, court=%d, date=%s, slots=%d",
		req.OrganizationID, req.CourtID, req.Date.Format(domain.DateFormat), len(req.StartTimes))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем организацию и ее политику
	org, err := uc.orgService.GetOrganization(ctx, req.OrganizationID)
	if err != nil {
		if errors.Is(err, orgClient.ErrOrganizationNotFound) {
			uc.logger.Warn("CreateBooking: organization id=%d not found", req.OrganizationID)
			return nil, ErrOrganizationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get organization id=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}

	// 4. Гостевые бронирования разрешены не всем организациям
	if req.Guest != nil && !org.AllowGuestBookings {
		uc.logger.Warn("CreateBooking: guest bookings disabled for organization id=%d", org.ID)
		return nil, ErrGuestBookingsDisabled
	}

	loc, err := org.Location()
	if err != nil {
		uc.logger.Error("CreateBooking: invalid timezone %q for organization id=%d: %v",
			org.Timezone, org.ID, err)
		return nil, fmt.Errorf("%w: invalid organization timezone: %v", ErrInternal, err)
	}

	// 5. Валидация даты относительно "сегодня" в поясе организации
	localNow := now.In(loc)
	if err := validateDate(req.Date, localNow, org.BookingWindowDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Лимит слотов на один запрос
	if len(req.StartTimes) > org.MaxConsecutiveSlots {
		uc.logger.Warn("CreateBooking: %d slots requested, limit is %d",
			len(req.StartTimes), org.MaxConsecutiveSlots)
		return nil, fmt.Errorf("%w: at most %d consecutive slots", ErrTooManySlots, org.MaxConsecutiveSlots)
	}

	var (
		result     *domain.Booking
		payment    *domain.Payment
		guestToken *string
		respSlots  []Slot
	)

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем корт и проверяем принадлежность организации
		court, err := uc.courtRepo.GetByID(txCtx, req.CourtID)
		if err != nil {
			if errors.Is(err, courtRepo.ErrCourtNotFound) {
				uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
				return ErrCourtNotFound
			}
			uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
		}
		if court.OrganizationID != req.OrganizationID || !court.IsActive {
			uc.logger.Warn("CreateBooking: court id=%d not available in organization id=%d",
				req.CourtID, req.OrganizationID)
			return ErrCourtNotFound
		}

		// 7.2. Валидация сетки слотов: выравнивание, часы работы, непрерывность
		if err := validateSlotGrid(court, req); err != nil {
			uc.logger.Warn("CreateBooking: slot grid validation failed: %v", err)
			return err
		}

		// 7.3. Строим слоты с фиксацией цен на момент создания
		slots, peaks, total, err := buildSlots(court, org, req, loc)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to build slots: %v", err)
			return fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
		}

		// Нельзя бронировать уже начавшийся слот
		if !slots[0].StartTime.After(now) {
			uc.logger.Warn("CreateBooking: first slot %s already started", slots[0].StartTime)
			return ErrTooLateToBook
		}

		// 7.4. Разрешаем гостя внутри транзакции, чтобы создание гостя
		// и бронирования было атомарным
		var userID, guestID *int64
		if req.UserID != nil {
			userID = req.UserID
		} else {
			guest, err := uc.guestRepo.GetOrCreateByEmail(txCtx, org.ID,
				strings.TrimSpace(req.Guest.Name),
				strings.TrimSpace(req.Guest.Email),
				req.Guest.Phone,
			)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to resolve guest: %v", err)
				return fmt.Errorf("%w: failed to resolve guest: %v", ErrInternal, err)
			}
			guestID = &guest.ID
			guestToken = &guest.PublicToken
		}

		// 7.5. Проверяем занятость: активные слоты и блокировки корта
		first, last := slots[0].StartTime, slots[len(slots)-1].EndTime

		booked, err := uc.bookingRepo.FindOverlappingSlots(txCtx, court.ID, first, last)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get booked slots: %v", err)
			return fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
		}
		if len(booked) > 0 {
			uc.logger.Warn("CreateBooking: %d overlapping slots on court id=%d", len(booked), court.ID)
			return ErrSlotNotAvailable
		}

		blocks, err := uc.courtRepo.FindBlocksInRange(txCtx, court.ID, first, last)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get court blocks: %v", err)
			return fmt.Errorf("%w: failed to get court blocks: %v", ErrInternal, err)
		}
		if len(blocks) > 0 {
			uc.logger.Warn("CreateBooking: court id=%d is blocked in requested range", court.ID)
			return ErrSlotNotAvailable
		}

		// 7.6. Дневной лимит: уже занятые слоты инициатора плюс новые
		dayStart, dayEnd := dayBoundsUTC(req.Date, loc)
		existing, err := uc.bookingRepo.CountRequesterSlotsOnDate(txCtx, org.ID, userID, guestID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count requester slots: %v", err)
			return fmt.Errorf("%w: failed to count requester slots: %v", ErrInternal, err)
		}
		if existing+len(slots) > org.MaxConsecutiveSlots {
			uc.logger.Warn("CreateBooking: daily limit exceeded, existing=%d, requested=%d, limit=%d",
				existing, len(slots), org.MaxConsecutiveSlots)
			return fmt.Errorf("%w: at most %d slots per day", ErrDailyLimitExceeded, org.MaxConsecutiveSlots)
		}

		// 7.7. Создаем бронирование в статусе ожидания оплаты
		expiresAt := now.Add(org.PaymentTimeout()).UTC()
		booking := &domain.Booking{
			OrganizationID: org.ID,
			UserID:         userID,
			GuestID:        guestID,
			Status:         domain.StatusPendingPayment,
			TotalCents:     total,
			Currency:       org.Currency,
			ExpiresAt:      &expiresAt,
			Slots:          slots,
		}
		pay := &domain.Payment{
			AmountCents: total,
			Status:      domain.PaymentPending,
			GatewayRef:  uuid.NewString(),
		}

		created, err := uc.bookingRepo.InsertBookingWithSlots(txCtx, booking, pay)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: lost slot race on court id=%d", court.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return fmt.Errorf("%w: failed to insert booking: %v", ErrInternal, err)
		}

		result = created
		payment = pay

		respSlots = make([]Slot, len(created.Slots))
		for i, s := range created.Slots {
			respSlots[i] = Slot{
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
				PriceCents: s.PriceCents,
				IsPeak:     peaks[i],
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%d %s, expires_at=%s",
		result.ID, result.TotalCents, result.Currency, result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:             result.ID,
		OrganizationID: result.OrganizationID,
		CourtID:        req.CourtID,
		Status:         string(result.Status),
		TotalCents:     result.TotalCents,
		Currency:       result.Currency,
		ExpiresAt:      *result.ExpiresAt,
		PaymentRef:     payment.GatewayRef,
		GuestToken:     guestToken,
		Slots:          respSlots,
		CreatedAt:      result.CreatedAt,
	}, nil
}

// buildSlots строит доменные слоты по запрошенным временам с фиксацией цен.
// Времена интерпретируются в часовом поясе организации и сохраняются как UTC.
func buildSlots(court *domain.Court, org *domain.Organization, req *Request, loc *time.Location) ([]domain.BookingSlot, []bool, int64, error) {
	year, month, day := req.Date.Date()
	duration := court.SlotDurationMinutes

	slots := make([]domain.BookingSlot, 0, len(req.StartTimes))
	peaks := make([]bool, 0, len(req.StartTimes))
	var total int64

	for _, st := range req.StartTimes {
		m, err := st.TotalMinutes()
		if err != nil {
			return nil, nil, 0, err
		}

		localStart := time.Date(year, month, day, m/60, m%60, 0, 0, loc)
		localEnd := time.Date(year, month, day, (m+duration)/60, (m+duration)%60, 0, 0, loc)
		price := domain.SlotPriceCents(court, org, localStart)

		slots = append(slots, domain.BookingSlot{
			CourtID:        court.ID,
			OrganizationID: org.ID,
			StartTime:      localStart.UTC(),
			EndTime:        localEnd.UTC(),
			PriceCents:     price,
		})
		peaks = append(peaks, domain.IsPeakTime(org, localStart))
		total += price
	}

	return slots, peaks, total, nil
}

// dayBoundsUTC возвращает границы календарного дня организации как
// полуоткрытый UTC-интервал [start, end)
func dayBoundsUTC(date time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
