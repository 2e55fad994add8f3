package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/courtops/CourtBookingService/internal/api/handlers"
	applyPayment "github.com/courtops/CourtBookingService/internal/usecase/apply_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPaymentNotFound    = "платеж не найден"
	msgAmountMismatch     = "сумма платежа не совпадает"
	msgInvalidInput       = "некорректные данные события"
)

type Handler struct {
	useCase ApplyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ApplyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем тело запроса
	var req PaymentWebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, applyPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: payment_ref=%s", req.PaymentRef)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, applyPayment.ErrAmountMismatch):
			h.logger.Warn("POST /payments/webhook - Amount mismatch: payment_ref=%s, amount_cents=%d",
				req.PaymentRef, req.AmountCents)
			handlers.RespondError(w, http.StatusConflict, msgAmountMismatch)

		case errors.Is(err, applyPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid input: payment_ref=%s, status=%s",
				req.PaymentRef, req.Status)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments/webhook - Failed to apply payment event: payment_ref=%s, error=%v",
				req.PaymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.AlreadyProcessed {
		h.logger.Info("POST /payments/webhook - Event ignored, payment already terminal: payment_ref=%s, booking_id=%d",
			req.PaymentRef, result.BookingID)
	} else {
		h.logger.Info("POST /payments/webhook - Payment event applied: payment_ref=%s, booking_id=%d, booking_status=%s",
			req.PaymentRef, result.BookingID, result.BookingStatus)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
