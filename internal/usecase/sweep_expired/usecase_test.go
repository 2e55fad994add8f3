package sweep_expired

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	ids   []int64
	err   error
	calls int
	seen  time.Time
}

func (f *fakeBookingRepo) ExpireDue(ctx context.Context, now time.Time) ([]int64, error) {
	f.calls++
	f.seen = now
	if f.err != nil {
		return nil, f.err
	}
	ids := f.ids
	f.ids = nil // повторный проход ничего не находит
	return ids, nil
}

type passthroughTxManager struct{ calls int }

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestExecute_ExpiresDueBookings(t *testing.T) {
	repo := &fakeBookingRepo{ids: []int64{3, 7}}
	tx := &passthroughTxManager{}
	uc := NewUseCase(repo, tx, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ExpiredCount)
	assert.Equal(t, []int64{3, 7}, resp.BookingIDs)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, testNow, repo.seen)
}

func TestExecute_SecondPassFindsNothing(t *testing.T) {
	repo := &fakeBookingRepo{ids: []int64{3}}
	uc := NewUseCase(repo, &passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ExpiredCount)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.ExpiredCount)
	assert.Equal(t, 2, repo.calls)
}

func TestSweepExpired_ReturnsCount(t *testing.T) {
	repo := &fakeBookingRepo{ids: []int64{1, 2, 3}}
	uc := NewUseCase(repo, &passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	n, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("db down")}
	uc := NewUseCase(repo, &passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
