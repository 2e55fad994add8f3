package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	"github.com/courtops/CourtBookingService/pkg/ptr"
	"github.com/courtops/CourtBookingService/pkg/types"
)

type fakeBookingRepo struct {
	overlapping []domain.BookingSlot
	dayCount    int
	insertErr   error

	inserted        *domain.Booking
	insertedPayment *domain.Payment
}

func (f *fakeBookingRepo) InsertBookingWithSlots(ctx context.Context, b *domain.Booking, payment *domain.Payment) (*domain.Booking, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	b.ID = 100
	b.CreatedAt = time.Now()
	f.inserted = b
	f.insertedPayment = payment
	return b, nil
}

func (f *fakeBookingRepo) FindOverlappingSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error) {
	return f.overlapping, nil
}

func (f *fakeBookingRepo) CountRequesterSlotsOnDate(ctx context.Context, orgID int64, userID, guestID *int64, dayStart, dayEnd time.Time) (int, error) {
	return f.dayCount, nil
}

type fakeCourtRepo struct {
	court  *domain.Court
	blocks []domain.CourtBlock
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	return f.court, nil
}

func (f *fakeCourtRepo) FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error) {
	return f.blocks, nil
}

type fakeGuestRepo struct {
	guest *domain.Guest
	calls int
}

func (f *fakeGuestRepo) GetOrCreateByEmail(ctx context.Context, orgID int64, name, email string, phone *string) (*domain.Guest, error) {
	f.calls++
	return f.guest, nil
}

type fakeOrgService struct{ org *domain.Organization }

func (f *fakeOrgService) GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error) {
	return f.org, nil
}

// passthroughTxManager выполняет функцию без реальной транзакции
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

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testCourt(t *testing.T) *domain.Court {
	t.Helper()
	return &domain.Court{
		ID:                    1,
		OrganizationID:        10,
		Name:                  "Court 1",
		OpenTime:              mustTime(t, "09:00"),
		CloseTime:             mustTime(t, "22:00"),
		SlotDurationMinutes:   60,
		PricePerHourCents:     2000,
		PeakPricePerHourCents: ptr.Ptr(int64(3000)),
		IsActive:              true,
	}
}

func testOrg() *domain.Organization {
	return &domain.Organization{
		ID:                    10,
		Timezone:              "Europe/Madrid",
		Currency:              "EUR",
		BookingWindowDays:     14,
		SlotDurationMinutes:   60,
		MaxConsecutiveSlots:   3,
		PaymentTimeoutMinutes: 15,
		AllowGuestBookings:    true,
		PeakStartHour:         18,
		PeakEndHour:           21,
	}
}

type env struct {
	bookings *fakeBookingRepo
	courts   *fakeCourtRepo
	guests   *fakeGuestRepo
	orgs     *fakeOrgService
	tx       *passthroughTxManager
	uc       *UseCase
}

func newEnv(t *testing.T, now time.Time) *env {
	e := &env{
		bookings: &fakeBookingRepo{},
		courts:   &fakeCourtRepo{court: testCourt(t)},
		guests: &fakeGuestRepo{guest: &domain.Guest{
			ID:             7,
			OrganizationID: 10,
			PublicToken:    "tok-abc",
		}},
		orgs: &fakeOrgService{org: testOrg()},
		tx:   &passthroughTxManager{},
	}
	e.uc = NewUseCase(e.bookings, e.courts, e.guests, e.orgs, e.tx, nopLogger{})
	e.uc.timeProvider = &fixedTime{now: now}
	return e
}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func userRequest(t *testing.T, starts ...string) *Request {
	t.Helper()
	ts := make([]types.TimeString, len(starts))
	for i, s := range starts {
		ts[i] = mustTime(t, s)
	}
	return &Request{
		OrganizationID: 10,
		CourtID:        1,
		UserID:         ptr.Ptr(int64(42)),
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTimes:     ts,
	}
}

func TestExecute_UserBooking(t *testing.T) {
	e := newEnv(t, testNow)

	// 17:00 стандарт + 18:00 пик
	resp, err := e.uc.Execute(context.Background(), userRequest(t, "17:00", "18:00"))
	require.NoError(t, err)

	assert.Equal(t, 1, e.tx.calls)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
	assert.Equal(t, int64(2000+3000), resp.TotalCents)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, testNow.Add(15*time.Minute), resp.ExpiresAt)
	assert.NotEmpty(t, resp.PaymentRef)
	assert.Nil(t, resp.GuestToken)

	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.Slots[0].IsPeak)
	assert.True(t, resp.Slots[1].IsPeak)

	require.NotNil(t, e.bookings.inserted)
	assert.Equal(t, domain.StatusPendingPayment, e.bookings.inserted.Status)
	require.NotNil(t, e.bookings.inserted.UserID)
	assert.Equal(t, int64(42), *e.bookings.inserted.UserID)
	assert.Nil(t, e.bookings.inserted.GuestID)
	require.Len(t, e.bookings.inserted.Slots, 2)

	require.NotNil(t, e.bookings.insertedPayment)
	assert.Equal(t, domain.PaymentPending, e.bookings.insertedPayment.Status)
	assert.Equal(t, resp.TotalCents, e.bookings.insertedPayment.AmountCents)
}

func TestExecute_GuestBooking(t *testing.T) {
	e := newEnv(t, testNow)

	req := userRequest(t, "11:00")
	req.UserID = nil
	req.Guest = &GuestInfo{Name: "Ana", Email: "ana@example.com"}

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, e.guests.calls)
	require.NotNil(t, resp.GuestToken)
	assert.Equal(t, "tok-abc", *resp.GuestToken)

	require.NotNil(t, e.bookings.inserted.GuestID)
	assert.Equal(t, int64(7), *e.bookings.inserted.GuestID)
	assert.Nil(t, e.bookings.inserted.UserID)
}

func TestExecute_GuestBookingsDisabled(t *testing.T) {
	e := newEnv(t, testNow)
	e.orgs.org.AllowGuestBookings = false

	req := userRequest(t, "11:00")
	req.UserID = nil
	req.Guest = &GuestInfo{Name: "Ana", Email: "ana@example.com"}

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrGuestBookingsDisabled)
	assert.Equal(t, 0, e.tx.calls)
}

func TestExecute_BothUserAndGuestRejected(t *testing.T) {
	e := newEnv(t, testNow)

	req := userRequest(t, "11:00")
	req.Guest = &GuestInfo{Name: "Ana", Email: "ana@example.com"}

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NonContiguousSlotsRejected(t *testing.T) {
	e := newEnv(t, testNow)

	// 11:00 и 13:00 с разрывом в час
	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:00", "13:00"))
	assert.ErrorIs(t, err, ErrSlotsNotContiguous)
	assert.Nil(t, e.bookings.inserted)
}

func TestExecute_MisalignedSlotRejected(t *testing.T) {
	e := newEnv(t, testNow)

	// сетка идет от 09:00 с шагом 60 минут
	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:30"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotOutsideOperatingHours(t *testing.T) {
	e := newEnv(t, testNow)

	// 21:30 + 60 минут выходит за закрытие в 22:00, и сетка не совпадает
	_, err := e.uc.Execute(context.Background(), userRequest(t, "22:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_TooManySlots(t *testing.T) {
	e := newEnv(t, testNow)

	_, err := e.uc.Execute(context.Background(), userRequest(t, "10:00", "11:00", "12:00", "13:00"))
	assert.ErrorIs(t, err, ErrTooManySlots)
}

func TestExecute_DailyLimitCountsExistingSlots(t *testing.T) {
	e := newEnv(t, testNow)
	e.bookings.dayCount = 2

	// 2 уже занятых + 2 новых > 3
	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:00", "12:00"))
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
	assert.Nil(t, e.bookings.inserted)
}

func TestExecute_OverlappingSlotRejected(t *testing.T) {
	e := newEnv(t, testNow)
	e.bookings.overlapping = []domain.BookingSlot{{CourtID: 1}}

	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, e.bookings.inserted)
}

func TestExecute_CourtBlockRejected(t *testing.T) {
	e := newEnv(t, testNow)
	e.courts.blocks = []domain.CourtBlock{{CourtID: 1}}

	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_LostSlotRaceMapsToSlotNotAvailable(t *testing.T) {
	e := newEnv(t, testNow)
	e.bookings.insertErr = bookingRepo.ErrSlotConflict

	// конкурент успел закоммититься первым, exclusion constraint сработал
	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CourtFromAnotherOrganization(t *testing.T) {
	e := newEnv(t, testNow)
	e.courts.court.OrganizationID = 777

	_, err := e.uc.Execute(context.Background(), userRequest(t, "11:00"))
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_PastSlotRejected(t *testing.T) {
	// сегодня 10:00 UTC = 12:00 в Мадриде, слот на 11:00 уже прошел
	e := newEnv(t, testNow)

	req := userRequest(t, "11:00")
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}
