package get_availability

import (
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
	getAvailability "github.com/courtops/CourtBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string             `json:"date"`
	OrganizationID int64              `json:"organizationId"`
	CourtID        int64              `json:"courtId"`
	Currency       string             `json:"currency"`
	Slots          []AvailabilitySlot `json:"slots"`
}

// AvailabilitySlot модель одного слота календаря
type AvailabilitySlot struct {
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	PriceCents  int64     `json:"priceCents"`
	IsPeak      bool      `json:"isPeak"`
	IsAvailable bool      `json:"isAvailable"`
}

// ToUseCaseRequest создает запрос use case из параметров URL и query
func ToUseCaseRequest(orgID, courtID int64, dateStr string) (*getAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		OrganizationID: orgID,
		CourtID:        courtID,
		Date:           date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailabilitySlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailabilitySlot{
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			PriceCents:  slot.PriceCents,
			IsPeak:      slot.IsPeak,
			IsAvailable: slot.IsAvailable,
		}
	}

	return &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		OrganizationID: resp.OrganizationID,
		CourtID:        resp.CourtID,
		Currency:       resp.Currency,
		Slots:          slots,
	}
}
