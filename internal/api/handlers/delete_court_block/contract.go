package delete_court_block

import "context"

type CourtService interface {
	DeleteBlock(ctx context.Context, orgID, blockID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
