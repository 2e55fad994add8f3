package create_court

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные корта"
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

// Handle POST /api/v1/organizations/{orgId}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем orgId из URL
	vars := mux.Vars(r)
	orgIDStr := vars["orgId"]

	orgID, err := strconv.ParseInt(orgIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/courts - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /organizations/{id}/courts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req CreateCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /organizations/{id}/courts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем корт (сервис сам проверит права администратора)
	result, err := h.service.CreateCourt(r.Context(), req.ToServiceRequest(orgID, userID))
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("POST /organizations/{id}/courts - Access denied: org_id=%d, user_id=%d",
				orgID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("POST /organizations/{id}/courts - Invalid input: org_id=%d, error=%v",
				orgID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /organizations/{id}/courts - Failed to create court: org_id=%d, error=%v",
				orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /organizations/{id}/courts - Court created successfully: org_id=%d, court_id=%d",
		orgID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
