package domain

// Default organization policy values, applied when the organization service
// does not supply a field
const (
	DefaultSlotDurationMinutes   = 60
	DefaultBookingWindowDays     = 14
	DefaultMaxConsecutiveSlots   = 3
	DefaultPaymentTimeoutMinutes = 15
	DefaultPeakStartHour         = 18
	DefaultPeakEndHour           = 21
)

// Business validation bounds
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240
	MinBookingWindowDays   = 1
	MaxBookingWindowDays   = 365
	MaxCancelReasonLength  = 500
	MaxGuestNameLength     = 200
	MaxGuestEmailLength    = 320
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelReasonPaymentTimeout is the reason recorded by the expiration sweeper
const CancelReasonPaymentTimeout = "payment timeout"

// InactiveStatuses are bookings whose slots no longer occupy the ledger
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
}

// ActiveStatuses are bookings whose slots block availability
var ActiveStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusCompleted,
}
