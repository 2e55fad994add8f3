package domain

import (
	"time"

	"github.com/courtops/CourtBookingService/pkg/types"
)

// Court is a bookable resource owned by an organization.
// OpenTime/CloseTime are local wall-clock values in the organization's
// timezone; they carry no date.
type Court struct {
	ID             int64
	OrganizationID int64
	Name           string

	OpenTime  types.TimeString
	CloseTime types.TimeString

	SlotDurationMinutes int

	PricePerHourCents int64
	// PeakPricePerHourCents is nil when the court has no separate peak rate
	PeakPricePerHourCents *int64

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourtBlock is an administrator-imposed unavailability interval
// [StartTime, EndTime) in UTC (maintenance, private events).
type CourtBlock struct {
	ID             int64
	CourtID        int64
	OrganizationID int64
	StartTime      time.Time
	EndTime        time.Time
	Reason         *string
	CreatedAt      time.Time
}

// SlotPriceCents returns the price of one slot of the court's configured
// duration at the standard hourly rate
func (c *Court) SlotPriceCents() int64 {
	return c.PricePerHourCents * int64(c.SlotDurationMinutes) / 60
}

// PeakSlotPriceCents returns the price of one slot at the peak rate.
// Falls back to the standard rate when no peak rate is set; peak is never
// cheaper than standard.
func (c *Court) PeakSlotPriceCents() int64 {
	standard := c.SlotPriceCents()
	if c.PeakPricePerHourCents == nil {
		return standard
	}
	peak := *c.PeakPricePerHourCents * int64(c.SlotDurationMinutes) / 60
	if peak < standard {
		return standard
	}
	return peak
}

// Overlaps reports whether the block intersects [start, end).
// Touching endpoints do not count as overlap.
func (b *CourtBlock) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
