package create_booking

import (
	"errors"
	"net/http"

	"github.com/courtops/CourtBookingService/internal/api/handlers"
	"github.com/courtops/CourtBookingService/internal/api/middleware"
	createBooking "github.com/courtops/CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgOrgNotFound         = "организация не найдена"
	msgCourtNotFound       = "корт не найден"
	msgSlotNotAvailable    = "слот уже занят"
	msgDateInPast          = "дата не может быть в прошлом"
	msgDateTooFar          = "дата выходит за окно бронирования"
	msgInvalidTimeSlot     = "время слота не попадает в сетку корта"
	msgSlotsNotContiguous  = "слоты должны образовывать непрерывный блок"
	msgTooManySlots        = "запрошено слишком много слотов"
	msgDailyLimitExceeded  = "превышен дневной лимит слотов"
	msgTooLateToBook       = "слот уже начался"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		respondUseCaseError(w, h.logger, "POST /bookings", userID, err)
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, court_id=%d, slots=%d",
		result.ID, userID, result.CourtID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondUseCaseError мапит ошибки use case создания бронирования на HTTP статусы
func respondUseCaseError(w http.ResponseWriter, logger Logger, route string, requesterID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		logger.Warn("%s - Slot not available: requester_id=%d", route, requesterID)
		handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

	case errors.Is(err, createBooking.ErrOrganizationNotFound):
		logger.Warn("%s - Organization not found: requester_id=%d", route, requesterID)
		handlers.RespondNotFound(w, msgOrgNotFound)

	case errors.Is(err, createBooking.ErrCourtNotFound):
		logger.Warn("%s - Court not found: requester_id=%d", route, requesterID)
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, createBooking.ErrInvalidDate):
		logger.Warn("%s - Date in the past: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgDateInPast)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		logger.Warn("%s - Date beyond booking window: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		logger.Warn("%s - Invalid time slot: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createBooking.ErrSlotsNotContiguous):
		logger.Warn("%s - Slots not contiguous: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgSlotsNotContiguous)

	case errors.Is(err, createBooking.ErrTooManySlots):
		logger.Warn("%s - Too many slots requested: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgTooManySlots)

	case errors.Is(err, createBooking.ErrDailyLimitExceeded):
		logger.Warn("%s - Daily slot limit exceeded: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgDailyLimitExceeded)

	case errors.Is(err, createBooking.ErrTooLateToBook):
		logger.Warn("%s - Too late to book: requester_id=%d", route, requesterID)
		handlers.RespondBadRequest(w, msgTooLateToBook)

	case errors.Is(err, createBooking.ErrInvalidInput):
		logger.Warn("%s - Invalid input: requester_id=%d, error=%v", route, requesterID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		logger.Error("%s - Failed to create booking: requester_id=%d, error=%v", route, requesterID, err)
		handlers.RespondInternalError(w)
	}
}
