package scheduler

import (
	"context"
	"time"

	"github.com/courtops/CourtBookingService/internal/usecase/complete_bookings"
	"github.com/courtops/CourtBookingService/internal/usecase/sweep_expired"
)

// ExpirationSweeper переводит просроченные pending_payment бронирования в expired
type ExpirationSweeper interface {
	Execute(ctx context.Context) (*sweep_expired.Response, error)
}

// BookingCompleter переводит отыгранные подтвержденные бронирования в completed
type BookingCompleter interface {
	Execute(ctx context.Context) (*complete_bookings.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически запускает чистильщика и завершение бронирований.
// Ленивый проход перед чтением календаря остается основной гарантией;
// планировщик лишь ограничивает время жизни протухших записей.
type Scheduler struct {
	sweeper   ExpirationSweeper
	completer BookingCompleter
	interval  time.Duration
	logger    Logger
}

// New создает новый экземпляр планировщика
func New(sweeper ExpirationSweeper, completer BookingCompleter, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		sweeper:   sweeper,
		completer: completer,
		interval:  interval,
		logger:    logger,
	}
}

// Start запускает цикл планировщика; блокируется до отмены контекста
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler: started, interval=%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick выполняет один проход; ошибки логируются и не останавливают цикл
func (s *Scheduler) tick(ctx context.Context) {
	if resp, err := s.sweeper.Execute(ctx); err != nil {
		s.logger.Error("scheduler: sweep failed: %v", err)
	} else if resp.ExpiredCount > 0 {
		s.logger.Info("scheduler: expired %d bookings: %v", resp.ExpiredCount, resp.BookingIDs)
	}

	if resp, err := s.completer.Execute(ctx); err != nil {
		s.logger.Error("scheduler: completion failed: %v", err)
	} else if resp.CompletedCount > 0 {
		s.logger.Info("scheduler: completed %d bookings: %v", resp.CompletedCount, resp.BookingIDs)
	}
}
