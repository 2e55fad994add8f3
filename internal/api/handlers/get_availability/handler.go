package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtops/CourtBookingService/internal/api/handlers"
	getAvailability "github.com/courtops/CourtBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidOrgID   = "некорректный ID организации"
	msgInvalidCourtID = "некорректный ID корта"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgOrgNotFound    = "организация не найдена"
	msgCourtNotFound  = "корт не найден"
	msgDateInPast     = "дата не может быть в прошлом"
	msgDateTooFar     = "дата выходит за окно бронирования"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{orgId}/courts/{courtId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем orgId из URL
	orgIDStr := vars["orgId"]
	orgID, err := strconv.ParseInt(orgIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Извлекаем courtId из URL
	courtIDStr := vars["courtId"]
	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(orgID, courtID, dateStr)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailability.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Organization not found: org_id=%d", orgID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, getAvailability.ErrCourtNotFound):
			h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Court not found: org_id=%d, court_id=%d",
				orgID, courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Date in the past: org_id=%d, court_id=%d, date=%s",
				orgID, courtID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Date beyond booking window: org_id=%d, court_id=%d, date=%s",
				orgID, courtID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /organizations/{id}/courts/{id}/availability - Invalid input: org_id=%d, court_id=%d",
				orgID, courtID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /organizations/{id}/courts/{id}/availability - Failed to get availability: org_id=%d, court_id=%d, error=%v",
				orgID, courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /organizations/{id}/courts/{id}/availability - Availability retrieved successfully: org_id=%d, court_id=%d, slots_count=%d",
		orgID, courtID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
