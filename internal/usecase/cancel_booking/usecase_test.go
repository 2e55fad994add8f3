package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	"github.com/courtops/CourtBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelledID     int64
	cancelledReason string
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, bookingID int64, reason string, cancelledAt time.Time) error {
	f.cancelledID = bookingID
	f.cancelledReason = reason
	return nil
}

type fakeOrgService struct{ org *domain.Organization }

func (f *fakeOrgService) GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error) {
	return f.org, nil
}

type passthroughTxManager struct{}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:             5,
		OrganizationID: 10,
		UserID:         ptr.Ptr(int64(42)),
		Status:         domain.StatusConfirmed,
		Slots: []domain.BookingSlot{{
			BookingID: 5,
			CourtID:   1,
			StartTime: testNow.Add(24 * time.Hour),
			EndTime:   testNow.Add(25 * time.Hour),
		}},
	}
}

func newUseCase(repo *fakeBookingRepo, org *domain.Organization) *UseCase {
	uc := NewUseCase(repo, &fakeOrgService{org: org}, &passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExecute_OwnerCancelsFutureBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newUseCase(repo, &domain.Organization{ID: 10})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 42})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "cancelled by user", resp.CancelReason)
	assert.Equal(t, int64(5), repo.cancelledID)
}

func TestExecute_OwnerCannotCancelStartedBooking(t *testing.T) {
	b := confirmedBooking()
	b.Slots[0].StartTime = testNow.Add(-time.Hour)
	repo := &fakeBookingRepo{booking: b}
	uc := newUseCase(repo, &domain.Organization{ID: 10})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, repo.cancelledID)
}

func TestExecute_AdminCancelsStartedBooking(t *testing.T) {
	b := confirmedBooking()
	b.Slots[0].StartTime = testNow.Add(-time.Hour)
	repo := &fakeBookingRepo{booking: b}
	uc := newUseCase(repo, &domain.Organization{ID: 10, AdminIDs: []int64{99}})

	reason := "court flooded"
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 99, Reason: &reason})
	require.NoError(t, err)

	assert.Equal(t, "court flooded", resp.CancelReason)
	assert.Equal(t, "court flooded", repo.cancelledReason)
}

func TestExecute_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newUseCase(repo, &domain.Organization{ID: 10})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 77})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_PendingBookingCannotBeCancelled(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusPendingPayment
	repo := &fakeBookingRepo{booking: b}
	uc := newUseCase(repo, &domain.Organization{ID: 10})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: b}
	uc := newUseCase(repo, &domain.Organization{ID: 10})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &domain.Organization{ID: 10})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, UserID: 42})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
