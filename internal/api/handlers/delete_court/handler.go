package delete_court

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
	msgInvalidOrgID    = "некорректный ID организации"
	msgInvalidCourtID  = "некорректный ID корта"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgCourtNotFound   = "корт не найден"
	msgForbidden       = "доступ запрещен"
	msgCourtHasActives = "у корта есть активные бронирования"
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

// Handle DELETE /api/v1/organizations/{orgId}/courts/{courtId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем orgId из URL
	orgIDStr := vars["orgId"]
	orgID, err := strconv.ParseInt(orgIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /organizations/{id}/courts/{id} - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Извлекаем courtId из URL
	courtIDStr := vars["courtId"]
	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /organizations/{id}/courts/{id} - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /organizations/{id}/courts/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Деактивируем корт (сервис сам проверит права и активные бронирования)
	if err := h.service.DeleteCourt(r.Context(), orgID, courtID, userID); err != nil {
		switch {
		case errors.Is(err, courts.ErrCourtNotFound):
			h.logger.Warn("DELETE /organizations/{id}/courts/{id} - Court not found: org_id=%d, court_id=%d",
				orgID, courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("DELETE /organizations/{id}/courts/{id} - Access denied: org_id=%d, user_id=%d",
				orgID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, courts.ErrCourtHasBookings):
			h.logger.Warn("DELETE /organizations/{id}/courts/{id} - Court has active bookings: org_id=%d, court_id=%d",
				orgID, courtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtHasActives)

		default:
			h.logger.Error("DELETE /organizations/{id}/courts/{id} - Failed to delete court: org_id=%d, court_id=%d, error=%v",
				orgID, courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /organizations/{id}/courts/{id} - Court deleted successfully: org_id=%d, court_id=%d",
		orgID, courtID)
	w.WriteHeader(http.StatusNoContent)
}
