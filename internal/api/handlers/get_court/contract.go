package get_court

import (
	"context"

	"github.com/courtops/CourtBookingService/internal/service/courts/models"
)

type CourtService interface {
	GetCourt(ctx context.Context, orgID, courtID int64) (*models.CourtResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
