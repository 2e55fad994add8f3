package domain

import "time"

// PaymentStatus represents the state of a booking's payment.
// It mirrors the booking lifecycle but is driven by the external gateway.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentExpired   PaymentStatus = "expired"
)

// PaymentOutcome is a terminal event delivered by the payment bridge
type PaymentOutcome string

const (
	OutcomeCompleted PaymentOutcome = "completed"
	OutcomeFailed    PaymentOutcome = "failed"
)

// Payment is the 1:1 payment record of a booking
type Payment struct {
	ID         int64
	BookingID  int64
	AmountCents int64
	Status     PaymentStatus
	PaidAt     *time.Time
	GatewayRef string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further gateway events may change the payment
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentCompleted ||
		p.Status == PaymentFailed ||
		p.Status == PaymentExpired
}
