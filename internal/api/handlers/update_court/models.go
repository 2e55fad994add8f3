package update_court

import (
	"github.com/courtops/CourtBookingService/internal/service/courts/models"
)

// UpdateCourtRequest HTTP request model; nil поля не меняются
type UpdateCourtRequest struct {
	Name                  *string `json:"name,omitempty"`
	OpenTime              *string `json:"openTime,omitempty"`
	CloseTime             *string `json:"closeTime,omitempty"`
	SlotDurationMinutes   *int    `json:"slotDurationMinutes,omitempty"`
	PricePerHourCents     *int64  `json:"pricePerHourCents,omitempty"`
	PeakPricePerHourCents *int64  `json:"peakPricePerHourCents,omitempty"`
	IsActive              *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateCourtRequest) ToServiceRequest(orgID, courtID, userID int64) *models.UpdateCourtRequest {
	return &models.UpdateCourtRequest{
		UserID:                userID,
		OrganizationID:        orgID,
		CourtID:               courtID,
		Name:                  r.Name,
		OpenTime:              r.OpenTime,
		CloseTime:             r.CloseTime,
		SlotDurationMinutes:   r.SlotDurationMinutes,
		PricePerHourCents:     r.PricePerHourCents,
		PeakPricePerHourCents: r.PeakPricePerHourCents,
		IsActive:              r.IsActive,
	}
}
