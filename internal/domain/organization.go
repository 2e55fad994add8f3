package domain

import "time"

// Organization is the tenant: every other entity is scoped by its ID.
// The record is resolved through the organization service; this type carries
// only the booking policy fields the engine needs.
type Organization struct {
	ID       int64
	Name     string
	Timezone string // IANA name, e.g. "Europe/Madrid"
	Currency string // ISO 4217, e.g. "EUR"

	BookingWindowDays     int
	SlotDurationMinutes   int // default for courts without their own duration
	MaxConsecutiveSlots   int
	PaymentTimeoutMinutes int
	AllowGuestBookings    bool

	// Peak policy: weekends are all-day peak when WeekendIsPeak is set;
	// on weekdays a slot is peak when its local start hour falls in
	// [PeakStartHour, PeakEndHour).
	WeekendIsPeak bool
	PeakStartHour int
	PeakEndHour   int

	// AdminIDs are users allowed to manage the organization's catalog and
	// cancel arbitrary bookings
	AdminIDs []int64
}

// Location resolves the organization's IANA timezone.
// All day-of-week and hour determinations for peak pricing must use it,
// never server-local or UTC wall time.
func (o *Organization) Location() (*time.Location, error) {
	return time.LoadLocation(o.Timezone)
}

// IsAdmin returns true if the user manages this organization
func (o *Organization) IsAdmin(userID int64) bool {
	for _, id := range o.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// PaymentTimeout returns the payment window as a duration
func (o *Organization) PaymentTimeout() time.Duration {
	return time.Duration(o.PaymentTimeoutMinutes) * time.Minute
}
