package delete_court_block

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
	msgInvalidOrgID   = "некорректный ID организации"
	msgInvalidBlockID = "некорректный ID блокировки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgBlockNotFound  = "блокировка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/organizations/{orgId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем orgId из URL
	orgIDStr := vars["orgId"]
	orgID, err := strconv.ParseInt(orgIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /organizations/{id}/blocks/{id} - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Извлекаем blockId из URL
	blockIDStr := vars["blockId"]
	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /organizations/{id}/blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /organizations/{id}/blocks/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем блокировку (сервис сам проверит права администратора)
	if err := h.service.DeleteBlock(r.Context(), orgID, blockID, userID); err != nil {
		switch {
		case errors.Is(err, courts.ErrBlockNotFound):
			h.logger.Warn("DELETE /organizations/{id}/blocks/{id} - Block not found: org_id=%d, block_id=%d",
				orgID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, courts.ErrAccessDenied):
			h.logger.Warn("DELETE /organizations/{id}/blocks/{id} - Access denied: org_id=%d, user_id=%d",
				orgID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /organizations/{id}/blocks/{id} - Failed to delete block: org_id=%d, block_id=%d, error=%v",
				orgID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /organizations/{id}/blocks/{id} - Block deleted successfully: org_id=%d, block_id=%d",
		orgID, blockID)
	w.WriteHeader(http.StatusNoContent)
}
