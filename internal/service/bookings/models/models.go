package models

import (
	"errors"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetOrganizationBookingsRequest запрос на получение бронирований организации
type GetOrganizationBookingsRequest struct {
	UserID          int64      `json:"userId"`
	OrganizationID  int64      `json:"organizationId"`
	CourtID         *int64     `json:"courtId,omitempty"`         // Фильтр по корту (опционально)
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные и протухшие
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOrganizationBookingsRequest) ToDomainFilter() (domain.OrganizationBookingsFilter, error) {
	filter := domain.OrganizationBookingsFilter{
		OrganizationID:  r.OrganizationID,
		CourtID:         r.CourtID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SlotResponse один слот бронирования
type SlotResponse struct {
	CourtID    int64     `json:"courtId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	PriceCents int64     `json:"priceCents"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64          `json:"id"`
	OrganizationID int64          `json:"organizationId"`
	UserID         *int64         `json:"userId,omitempty"`
	GuestID        *int64         `json:"guestId,omitempty"`
	Status         string         `json:"status"`
	TotalCents     int64          `json:"totalCents"`
	Currency       string         `json:"currency"`
	ExpiresAt      *time.Time     `json:"expiresAt,omitempty"`
	CancelReason   *string        `json:"cancelReason,omitempty"`
	CancelledAt    *time.Time     `json:"cancelledAt,omitempty"`
	Slots          []SlotResponse `json:"slots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	slots := make([]SlotResponse, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = SlotResponse{
			CourtID:    s.CourtID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			PriceCents: s.PriceCents,
		}
	}

	return &BookingResponse{
		ID:             b.ID,
		OrganizationID: b.OrganizationID,
		UserID:         b.UserID,
		GuestID:        b.GuestID,
		Status:         string(b.Status),
		TotalCents:     b.TotalCents,
		Currency:       b.Currency,
		ExpiresAt:      b.ExpiresAt,
		CancelReason:   b.CancelReason,
		CancelledAt:    b.CancelledAt,
		Slots:          slots,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPendingPayment, domain.StatusConfirmed, domain.StatusCancelled,
		domain.StatusExpired, domain.StatusCompleted:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
