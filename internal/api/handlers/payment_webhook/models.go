package payment_webhook

import (
	"github.com/courtops/CourtBookingService/internal/domain"
	applyPayment "github.com/courtops/CourtBookingService/internal/usecase/apply_payment"
)

// PaymentWebhookRequest HTTP request model события платежного шлюза
type PaymentWebhookRequest struct {
	PaymentRef  string `json:"paymentRef"`
	Status      string `json:"status"` // "completed" / "failed"
	AmountCents int64  `json:"amountCents"`
}

// PaymentWebhookResponse HTTP response model
type PaymentWebhookResponse struct {
	BookingID        int64  `json:"bookingId"`
	BookingStatus    string `json:"bookingStatus"`
	PaymentStatus    string `json:"paymentStatus"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PaymentWebhookRequest) ToUseCaseRequest() *applyPayment.Request {
	return &applyPayment.Request{
		GatewayRef:  r.PaymentRef,
		Outcome:     domain.PaymentOutcome(r.Status),
		AmountCents: r.AmountCents,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyPayment.Response) *PaymentWebhookResponse {
	return &PaymentWebhookResponse{
		BookingID:        resp.BookingID,
		BookingStatus:    resp.BookingStatus,
		PaymentStatus:    resp.PaymentStatus,
		AlreadyProcessed: resp.AlreadyProcessed,
	}
}
