package get_courts

import (
	"context"

	"github.com/courtops/CourtBookingService/internal/service/courts/models"
)

type CourtService interface {
	ListCourts(ctx context.Context, orgID, userID int64, includeInactive bool) (*models.CourtListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
