package domain

import "time"

// OrganizationBookingsFilter filters booking queries for one organization.
// Every query through it is tenant-scoped by OrganizationID.
type OrganizationBookingsFilter struct {
	OrganizationID  int64
	CourtID         *int64
	From            *time.Time // slot range start (UTC), inclusive
	To              *time.Time // slot range end (UTC), exclusive
	Status          *BookingStatus
	IncludeInactive bool // include cancelled/expired bookings
}
