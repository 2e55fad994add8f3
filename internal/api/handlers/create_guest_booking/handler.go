package create_guest_booking

import (
	"errors"
	"net/http"

	"github.com/courtops/CourtBookingService/internal/api/handlers"
	createBooking "github.com/courtops/CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgOrgNotFound        = "организация не найдена"
	msgCourtNotFound      = "корт не найден"
	msgGuestsDisabled     = "гостевые бронирования отключены"
	msgSlotNotAvailable   = "слот уже занят"
	msgDateInPast         = "дата не может быть в прошлом"
	msgDateTooFar         = "дата выходит за окно бронирования"
	msgInvalidTimeSlot    = "время слота не попадает в сетку корта"
	msgSlotsNotContiguous = "слоты должны образовывать непрерывный блок"
	msgTooManySlots       = "запрошено слишком много слотов"
	msgDailyLimitExceeded = "превышен дневной лимит слотов"
	msgTooLateToBook      = "слот уже начался"
	msgInvalidInput       = "некорректные данные бронирования"
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

// Handle POST /api/v1/guest-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем тело запроса
	var req CreateGuestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /guest-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /guest-bookings - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /guest-bookings - Slot not available: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrGuestBookingsDisabled):
			h.logger.Warn("POST /guest-bookings - Guest bookings disabled: org_id=%d", req.OrganizationID)
			handlers.RespondForbidden(w, msgGuestsDisabled)

		case errors.Is(err, createBooking.ErrOrganizationNotFound):
			h.logger.Warn("POST /guest-bookings - Organization not found: org_id=%d", req.OrganizationID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /guest-bookings - Court not found: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /guest-bookings - Date in the past: org_id=%d, date=%s",
				req.OrganizationID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /guest-bookings - Date beyond booking window: org_id=%d, date=%s",
				req.OrganizationID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /guest-bookings - Invalid time slot: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrSlotsNotContiguous):
			h.logger.Warn("POST /guest-bookings - Slots not contiguous: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondBadRequest(w, msgSlotsNotContiguous)

		case errors.Is(err, createBooking.ErrTooManySlots):
			h.logger.Warn("POST /guest-bookings - Too many slots requested: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondBadRequest(w, msgTooManySlots)

		case errors.Is(err, createBooking.ErrDailyLimitExceeded):
			h.logger.Warn("POST /guest-bookings - Daily slot limit exceeded: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondBadRequest(w, msgDailyLimitExceeded)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /guest-bookings - Too late to book: org_id=%d, court_id=%d",
				req.OrganizationID, req.CourtID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /guest-bookings - Invalid input: org_id=%d, error=%v",
				req.OrganizationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /guest-bookings - Failed to create booking: org_id=%d, court_id=%d, error=%v",
				req.OrganizationID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /guest-bookings - Guest booking created successfully: booking_id=%d, org_id=%d, court_id=%d, slots=%d",
		result.ID, result.OrganizationID, result.CourtID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
