package create_court_block

import (
	"time"

	"github.com/courtops/CourtBookingService/internal/service/courts/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Reason    *string   `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(orgID, courtID, userID int64) *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:         userID,
		OrganizationID: orgID,
		CourtID:        courtID,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Reason:         r.Reason,
	}
}
