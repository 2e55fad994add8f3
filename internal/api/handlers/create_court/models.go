package create_court

import (
	"github.com/courtops/CourtBookingService/internal/service/courts/models"
)

// CreateCourtRequest HTTP request model
type CreateCourtRequest struct {
	Name                  string `json:"name"`
	OpenTime              string `json:"openTime"`  // "09:00"
	CloseTime             string `json:"closeTime"` // "22:00"
	SlotDurationMinutes   *int   `json:"slotDurationMinutes,omitempty"`
	PricePerHourCents     int64  `json:"pricePerHourCents"`
	PeakPricePerHourCents *int64 `json:"peakPricePerHourCents,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateCourtRequest) ToServiceRequest(orgID, userID int64) *models.CreateCourtRequest {
	return &models.CreateCourtRequest{
		UserID:                userID,
		OrganizationID:        orgID,
		Name:                  r.Name,
		OpenTime:              r.OpenTime,
		CloseTime:             r.CloseTime,
		SlotDurationMinutes:   r.SlotDurationMinutes,
		PricePerHourCents:     r.PricePerHourCents,
		PeakPricePerHourCents: r.PeakPricePerHourCents,
	}
}
