package domain

import "time"

// Guest is an anonymous booker identified by email within one organization.
// Repeated guest bookings with the same (organization, email) reuse the row.
type Guest struct {
	ID             int64
	OrganizationID int64
	Name           string
	Email          string
	Phone          *string

	// PublicToken is an opaque reference handed out in guest confirmation
	// links instead of the numeric ID
	PublicToken string

	CreatedAt time.Time
}
