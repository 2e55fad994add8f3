package create_court_block

import (
	"context"

	"github.com/courtops/CourtBookingService/internal/service/courts/models"
)

type CourtService interface {
	CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
