package create_booking

import (
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
	createBooking "github.com/courtops/CourtBookingService/internal/usecase/create_booking"
	"github.com/courtops/CourtBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OrganizationID int64    `json:"organizationId"`
	CourtID        int64    `json:"courtId"`
	Date           string   `json:"date"`       // "2026-09-15"
	StartTimes     []string `json:"startTimes"` // ["18:00", "19:00"]
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64          `json:"id"`
	OrganizationID int64          `json:"organizationId"`
	CourtID        int64          `json:"courtId"`
	Status         string         `json:"status"`
	TotalCents     int64          `json:"totalCents"`
	Currency       string         `json:"currency"`
	ExpiresAt      string         `json:"expiresAt"`
	PaymentRef     string         `json:"paymentRef"`
	GuestToken     *string        `json:"guestToken,omitempty"`
	Slots          []SlotResponse `json:"slots"`
	CreatedAt      string         `json:"createdAt"`
}

// SlotResponse модель зарезервированного слота
type SlotResponse struct {
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	PriceCents int64     `json:"priceCents"`
	IsPeak     bool      `json:"isPeak"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим времена начала слотов
	startTimes := make([]types.TimeString, len(r.StartTimes))
	for i, s := range r.StartTimes {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		startTimes[i] = ts
	}

	return &createBooking.Request{
		OrganizationID: r.OrganizationID,
		CourtID:        r.CourtID,
		UserID:         &userID,
		Date:           date,
		StartTimes:     startTimes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			PriceCents: slot.PriceCents,
			IsPeak:     slot.IsPeak,
		}
	}

	return &BookingResponse{
		ID:             resp.ID,
		OrganizationID: resp.OrganizationID,
		CourtID:        resp.CourtID,
		Status:         resp.Status,
		TotalCents:     resp.TotalCents,
		Currency:       resp.Currency,
		ExpiresAt:      resp.ExpiresAt.Format(time.RFC3339),
		PaymentRef:     resp.PaymentRef,
		GuestToken:     resp.GuestToken,
		Slots:          slots,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
