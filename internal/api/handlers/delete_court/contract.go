package delete_court

import "context"

type CourtService interface {
	DeleteCourt(ctx context.Context, orgID, courtID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
