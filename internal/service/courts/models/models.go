package models

import (
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// Request модели

// CreateCourtRequest запрос на создание корта
type CreateCourtRequest struct {
	UserID                int64  `json:"userId"`
	OrganizationID        int64  `json:"organizationId"`
	Name                  string `json:"name"`
	OpenTime              string `json:"openTime"`  // "09:00"
	CloseTime             string `json:"closeTime"` // "22:00"
	SlotDurationMinutes   *int   `json:"slotDurationMinutes,omitempty"`
	PricePerHourCents     int64  `json:"pricePerHourCents"`
	PeakPricePerHourCents *int64 `json:"peakPricePerHourCents,omitempty"`
}

// UpdateCourtRequest запрос на обновление корта; nil поля не меняются
type UpdateCourtRequest struct {
	UserID                int64   `json:"userId"`
	OrganizationID        int64   `json:"organizationId"`
	CourtID               int64   `json:"courtId"`
	Name                  *string `json:"name,omitempty"`
	OpenTime              *string `json:"openTime,omitempty"`
	CloseTime             *string `json:"closeTime,omitempty"`
	SlotDurationMinutes   *int    `json:"slotDurationMinutes,omitempty"`
	PricePerHourCents     *int64  `json:"pricePerHourCents,omitempty"`
	PeakPricePerHourCents *int64  `json:"peakPricePerHourCents,omitempty"`
	IsActive              *bool   `json:"isActive,omitempty"`
}

// CreateBlockRequest запрос на блокировку корта
type CreateBlockRequest struct {
	UserID         int64     `json:"userId"`
	OrganizationID int64     `json:"organizationId"`
	CourtID        int64     `json:"courtId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Reason         *string   `json:"reason,omitempty"`
}

// Response модели

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID                    int64     `json:"id"`
	OrganizationID        int64     `json:"organizationId"`
	Name                  string    `json:"name"`
	OpenTime              string    `json:"openTime"`
	CloseTime             string    `json:"closeTime"`
	SlotDurationMinutes   int       `json:"slotDurationMinutes"`
	PricePerHourCents     int64     `json:"pricePerHourCents"`
	PeakPricePerHourCents *int64    `json:"peakPricePerHourCents,omitempty"`
	IsActive              bool      `json:"isActive"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// CourtListResponse ответ со списком кортов
type CourtListResponse struct {
	Courts []CourtResponse `json:"courts"`
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID             int64     `json:"id"`
	CourtID        int64     `json:"courtId"`
	OrganizationID int64     `json:"organizationId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Reason         *string   `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainCourt конвертирует domain модель в DTO
func FromDomainCourt(c *domain.Court) *CourtResponse {
	if c == nil {
		return nil
	}
	return &CourtResponse{
		ID:                    c.ID,
		OrganizationID:        c.OrganizationID,
		Name:                  c.Name,
		OpenTime:              c.OpenTime.String(),
		CloseTime:             c.CloseTime.String(),
		SlotDurationMinutes:   c.SlotDurationMinutes,
		PricePerHourCents:     c.PricePerHourCents,
		PeakPricePerHourCents: c.PeakPricePerHourCents,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// FromDomainCourtList конвертирует список domain моделей в DTO
func FromDomainCourtList(courts []*domain.Court) *CourtListResponse {
	result := make([]CourtResponse, 0, len(courts))
	for _, c := range courts {
		if resp := FromDomainCourt(c); resp != nil {
			result = append(result, *resp)
		}
	}
	return &CourtListResponse{Courts: result}
}

// FromDomainBlock конвертирует domain модель блокировки в DTO
func FromDomainBlock(b *domain.CourtBlock) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:             b.ID,
		CourtID:        b.CourtID,
		OrganizationID: b.OrganizationID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Reason:         b.Reason,
		CreatedAt:      b.CreatedAt,
	}
}
