package get_organization_bookings

import (
	"strconv"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
	"github.com/courtops/CourtBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из параметров URL и query
func ToServiceRequest(orgID, userID int64, courtIDStr, statusStr, fromStr, toStr, includeInactiveStr string) (*models.GetOrganizationBookingsRequest, error) {
	req := &models.GetOrganizationBookingsRequest{
		UserID:         userID,
		OrganizationID: orgID,
	}

	if courtIDStr != "" {
		courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CourtID = &courtID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	// Границы периода принимаются как даты, from включительно, to не включительно
	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		to = to.AddDate(0, 0, 1)
		req.To = &to
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
