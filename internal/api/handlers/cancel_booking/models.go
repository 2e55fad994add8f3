package cancel_booking

import (
	"time"

	cancelBooking "github.com/courtops/CourtBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	CancelledAt  string `json:"cancelledAt"`
	CancelReason string `json:"cancelReason"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:           resp.ID,
		Status:       resp.Status,
		CancelledAt:  resp.CancelledAt.Format(time.RFC3339),
		CancelReason: resp.CancelReason,
	}
}
