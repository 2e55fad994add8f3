package orgservice

import "github.com/courtops/CourtBookingService/internal/domain"

// Organization модель организации (тенанта) из OrgService
type Organization struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`

	BookingWindowDays     int  `json:"booking_window_days"`
	SlotDurationMinutes   int  `json:"slot_duration_minutes"`
	MaxConsecutiveSlots   int  `json:"max_consecutive_slots"`
	PaymentTimeoutMinutes int  `json:"payment_timeout_minutes"`
	AllowGuestBookings    bool `json:"allow_guest_bookings"`

	WeekendIsPeak bool `json:"weekend_is_peak"`
	PeakStartHour int  `json:"peak_start_hour"`
	PeakEndHour   int  `json:"peak_end_hour"`

	AdminIDs []int64 `json:"admin_ids"`
}

// ErrorResponse модель ошибки от OrgService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ OrgService в доменную модель,
// подставляя дефолты политики вместо незаполненных полей
func (o *Organization) ToDomain() *domain.Organization {
	org := &domain.Organization{
		ID:                    o.ID,
		Name:                  o.Name,
		Timezone:              o.Timezone,
		Currency:              o.Currency,
		BookingWindowDays:     o.BookingWindowDays,
		SlotDurationMinutes:   o.SlotDurationMinutes,
		MaxConsecutiveSlots:   o.MaxConsecutiveSlots,
		PaymentTimeoutMinutes: o.PaymentTimeoutMinutes,
		AllowGuestBookings:    o.AllowGuestBookings,
		WeekendIsPeak:         o.WeekendIsPeak,
		PeakStartHour:         o.PeakStartHour,
		PeakEndHour:           o.PeakEndHour,
		AdminIDs:              o.AdminIDs,
	}

	if org.Timezone == "" {
		org.Timezone = "UTC"
	}
	if org.BookingWindowDays == 0 {
		org.BookingWindowDays = domain.DefaultBookingWindowDays
	}
	if org.SlotDurationMinutes == 0 {
		org.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if org.MaxConsecutiveSlots == 0 {
		org.MaxConsecutiveSlots = domain.DefaultMaxConsecutiveSlots
	}
	if org.PaymentTimeoutMinutes == 0 {
		org.PaymentTimeoutMinutes = domain.DefaultPaymentTimeoutMinutes
	}
	if org.PeakEndHour == 0 {
		org.PeakStartHour = domain.DefaultPeakStartHour
		org.PeakEndHour = domain.DefaultPeakEndHour
	}

	return org
}
