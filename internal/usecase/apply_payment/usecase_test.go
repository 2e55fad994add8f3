package apply_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	payment *domain.Payment
	booking *domain.Booking

	confirmedID int64
	failedID    int64
}

func (f *fakeBookingRepo) GetPaymentByGatewayRef(ctx context.Context, ref string) (*domain.Payment, error) {
	if f.payment == nil || f.payment.GatewayRef != ref {
		return nil, bookingRepo.ErrPaymentNotFound
	}
	return f.payment, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.booking, nil
}

func (f *fakeBookingRepo) Confirm(ctx context.Context, bookingID int64, paidAt time.Time) error {
	f.confirmedID = bookingID
	return nil
}

func (f *fakeBookingRepo) MarkPaymentFailed(ctx context.Context, bookingID int64) error {
	f.failedID = bookingID
	return nil
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

func newRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		payment: &domain.Payment{
			ID:          1,
			BookingID:   5,
			AmountCents: 4000,
			Status:      domain.PaymentPending,
			GatewayRef:  "ref-1",
		},
		booking: &domain.Booking{
			ID:             5,
			OrganizationID: 10,
			Status:         domain.StatusPendingPayment,
		},
	}
}

func newUseCase(repo *fakeBookingRepo) *UseCase {
	uc := NewUseCase(repo, &passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExecute_SuccessConfirmsBooking(t *testing.T) {
	repo := newRepo()
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		GatewayRef:  "ref-1",
		Outcome:     domain.OutcomeCompleted,
		AmountCents: 4000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), repo.confirmedID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentCompleted), resp.PaymentStatus)
	assert.False(t, resp.AlreadyProcessed)
}

func TestExecute_AmountMismatchChangesNothing(t *testing.T) {
	repo := newRepo()
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		GatewayRef:  "ref-1",
		Outcome:     domain.OutcomeCompleted,
		AmountCents: 1,
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Zero(t, repo.confirmedID)
	assert.Zero(t, repo.failedID)
}

func TestExecute_FailureLeavesBookingPending(t *testing.T) {
	repo := newRepo()
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		GatewayRef: "ref-1",
		Outcome:    domain.OutcomeFailed,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), repo.failedID)
	assert.Zero(t, repo.confirmedID)
	// бронирование живет до дедлайна, пользователь может попробовать еще раз
	assert.Equal(t, string(domain.StatusPendingPayment), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentFailed), resp.PaymentStatus)
}

func TestExecute_DuplicateDeliveryIsIgnored(t *testing.T) {
	repo := newRepo()
	repo.payment.Status = domain.PaymentCompleted
	repo.booking.Status = domain.StatusConfirmed
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		GatewayRef:  "ref-1",
		Outcome:     domain.OutcomeCompleted,
		AmountCents: 4000,
	})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyProcessed)
	assert.Zero(t, repo.confirmedID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.BookingStatus)
}

func TestExecute_LateSuccessAfterExpiryDoesNotResurrect(t *testing.T) {
	repo := newRepo()
	repo.payment.Status = domain.PaymentExpired
	repo.booking.Status = domain.StatusExpired
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		GatewayRef:  "ref-1",
		Outcome:     domain.OutcomeCompleted,
		AmountCents: 4000,
	})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyProcessed)
	assert.Zero(t, repo.confirmedID)
	assert.Equal(t, string(domain.StatusExpired), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentExpired), resp.PaymentStatus)
}

func TestExecute_UnknownRef(t *testing.T) {
	uc := newUseCase(newRepo())

	_, err := uc.Execute(context.Background(), &Request{
		GatewayRef:  "ref-404",
		Outcome:     domain.OutcomeCompleted,
		AmountCents: 4000,
	})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestExecute_UnknownOutcomeRejected(t *testing.T) {
	uc := newUseCase(newRepo())

	_, err := uc.Execute(context.Background(), &Request{
		GatewayRef:  "ref-1",
		Outcome:     domain.PaymentOutcome("refunded"),
		AmountCents: 4000,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
