package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusExpired        BookingStatus = "expired"
	StatusCompleted      BookingStatus = "completed"
)

// Booking is the aggregate root of a reservation: it owns its slots and its
// payment. Slots are created together with the booking and never added later.
type Booking struct {
	ID             int64
	OrganizationID int64

	// Exactly one of UserID / GuestID is set. Guests are first-class rows,
	// not sentinel users.
	UserID  *int64
	GuestID *int64

	Status     BookingStatus
	TotalCents int64
	Currency   string

	// ExpiresAt is set only while the booking is pending payment
	ExpiresAt *time.Time

	CancelledAt    *time.Time
	CancelReason   *string
	ReminderSentAt *time.Time

	Slots []BookingSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingSlot is one reserved half-open interval [StartTime, EndTime) on a
// court. Times are UTC instants. PriceCents is fixed at creation time and
// never recomputed.
type BookingSlot struct {
	ID             int64
	BookingID      int64
	CourtID        int64
	OrganizationID int64
	StartTime      time.Time
	EndTime        time.Time
	PriceCents     int64
}

// IsActive returns true if the booking still holds its slots in the ledger
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusExpired
}

// IsTerminal returns true if the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled ||
		b.Status == StatusExpired ||
		b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking may be cancelled by its owner:
// it must be confirmed and its first slot must still be in the future.
// Admins may cancel regardless of start time (see admin flag at call sites).
func (b *Booking) CanBeCancelled(now time.Time) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	first := b.FirstSlotStart()
	return first != nil && first.After(now)
}

// FirstSlotStart returns the earliest slot start, or nil when slots are
// not loaded
func (b *Booking) FirstSlotStart() *time.Time {
	if len(b.Slots) == 0 {
		return nil
	}
	min := b.Slots[0].StartTime
	for _, s := range b.Slots[1:] {
		if s.StartTime.Before(min) {
			min = s.StartTime
		}
	}
	return &min
}

// LastSlotEnd returns the latest slot end, or nil when slots are not loaded
func (b *Booking) LastSlotEnd() *time.Time {
	if len(b.Slots) == 0 {
		return nil
	}
	max := b.Slots[0].EndTime
	for _, s := range b.Slots[1:] {
		if s.EndTime.After(max) {
			max = s.EndTime
		}
	}
	return &max
}

// IsGuestBooking returns true if the booking belongs to a guest
func (b *Booking) IsGuestBooking() bool {
	return b.GuestID != nil
}

// Overlaps reports whether the slot intersects [start, end).
// Touching endpoints do not count as overlap.
func (s *BookingSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}
