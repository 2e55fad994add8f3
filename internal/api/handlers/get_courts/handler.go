package get_courts

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
	msgInvalidOrgID  = "некорректный ID организации"
	msgInvalidParams = "некорректные параметры запроса"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/organizations/{orgId}/courts
// Query params: includeInactive (опционально, только для администраторов)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем orgId из URL
	vars := mux.Vars(r)
	orgIDStr := vars["orgId"]

	orgID, err := strconv.ParseInt(orgIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/courts - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Парсим includeInactive из query параметров
	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /organizations/{id}/courts - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	// Роут публичный, userID нужен только для просмотра неактивных кортов
	userID, ok := middleware.GetUserID(r.Context())
	if includeInactive && !ok {
		h.logger.Warn("GET /organizations/{id}/courts - Missing user ID for includeInactive")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем корты организации
	result, err := h.service.ListCourts(r.Context(), orgID, userID, includeInactive)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/courts - Access denied: org_id=%d, user_id=%d",
				orgID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /organizations/{id}/courts - Failed to list courts: org_id=%d, error=%v",
				orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/courts - Courts retrieved successfully: org_id=%d, count=%d",
		orgID, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
