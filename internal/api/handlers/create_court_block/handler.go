package create_court_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtops/CourtBookingService/internal/api/handlers"
	"github.com/courtops/CourtBookingService/internal/api/middleware"
	"github.com/courtops/CourtBookingService/internal/service/courts"
)

const (
	msgInvalidOrgID       = "некорректный ID организации"
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCourtNotFound      = "корт не найден"
	msgForbidden          = "доступ запрещен"
	msgCourtHasBookings   = "интервал пересекается с подтвержденными бронированиями"
	msgInvalidInput       = "некорректные данные блокировки"
)

type Handler struct {
	service CourtService
	logger  Logger
}

func NewHandler(service CourtService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/organizations/{orgId}/courts/{courtId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем orgId из URL
	orgIDStr := vars["orgId"]
	orgID, err := strconv.ParseInt(orgIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Извлекаем courtId из URL
	courtIDStr := vars["courtId"]
	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем блокировку (сервис сам проверит права и пересечения с бронированиями)
	result, err := h.service.CreateBlock(r.Context(), req.ToServiceRequest(orgID, courtID, userID))
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrCourtNotFound):
			h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Court not found: org_id=%d, court_id=%d",
				orgID, courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Access denied: org_id=%d, user_id=%d",
				orgID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, courts.ErrCourtHasBookings):
			h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Interval overlaps confirmed bookings: org_id=%d, court_id=%d",
				orgID, courtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtHasBookings)

		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("POST /organizations/{id}/courts/{id}/blocks - Invalid input: org_id=%d, court_id=%d, error=%v",
				orgID, courtID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /organizations/{id}/courts/{id}/blocks - Failed to create block: org_id=%d, court_id=%d, error=%v",
				orgID, courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /organizations/{id}/courts/{id}/blocks - Block created successfully: org_id=%d, court_id=%d, block_id=%d",
		orgID, courtID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
