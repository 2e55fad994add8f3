package complete_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	ids  []int64
	err  error
	seen time.Time
}

func (f *fakeBookingRepo) CompleteElapsed(ctx context.Context, now time.Time) ([]int64, error) {
	f.seen = now
	return f.ids, f.err
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestExecute_CompletesElapsedBookings(t *testing.T) {
	repo := &fakeBookingRepo{ids: []int64{11, 12}}
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CompletedCount)
	assert.Equal(t, []int64{11, 12}, resp.BookingIDs)
	assert.Equal(t, testNow, repo.seen)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("db down")}
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
