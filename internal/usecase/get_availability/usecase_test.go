package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	courtRepo "github.com/courtops/CourtBookingService/internal/infra/storage/court"
	orgClient "github.com/courtops/CourtBookingService/internal/integrations/orgservice"
)

type fakeCourtRepo struct {
	court  *domain.Court
	blocks []domain.CourtBlock
	err    error
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.court == nil || f.court.ID != id {
		return nil, courtRepo.ErrCourtNotFound
	}
	return f.court, nil
}

func (f *fakeCourtRepo) FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error) {
	return f.blocks, nil
}

type fakeBookingRepo struct {
	slots []domain.BookingSlot
	err   error
}

func (f *fakeBookingRepo) FindOverlappingSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fakeOrgService struct {
	org *domain.Organization
	err error
}

func (f *fakeOrgService) GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.org, nil
}

type fakeSweeper struct {
	expired int
	err     error
	calls   int
}

func (f *fakeSweeper) SweepExpired(ctx context.Context) (int, error) {
	f.calls++
	return f.expired, f.err
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(courts *fakeCourtRepo, bookings *fakeBookingRepo, orgs *fakeOrgService, sweeper *fakeSweeper, now time.Time) *UseCase {
	uc := NewUseCase(courts, bookings, orgs, sweeper, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_HappyPath(t *testing.T) {
	court := testCourt(t)
	org := testOrg()
	loc, err := org.Location()
	require.NoError(t, err)

	// одно подтвержденное бронирование 10:00-11:00 и блокировка 15:00-16:00
	booked := []domain.BookingSlot{{
		CourtID:   court.ID,
		StartTime: time.Date(2026, 9, 2, 10, 0, 0, 0, loc).UTC(),
		EndTime:   time.Date(2026, 9, 2, 11, 0, 0, 0, loc).UTC(),
	}}
	blocks := []domain.CourtBlock{{
		CourtID:   court.ID,
		StartTime: time.Date(2026, 9, 2, 15, 0, 0, 0, loc).UTC(),
		EndTime:   time.Date(2026, 9, 2, 16, 0, 0, 0, loc).UTC(),
	}}

	sweeper := &fakeSweeper{}
	uc := newTestUseCase(
		&fakeCourtRepo{court: court, blocks: blocks},
		&fakeBookingRepo{slots: booked},
		&fakeOrgService{org: org},
		sweeper,
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		OrganizationID: org.ID,
		CourtID:        court.ID,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, "EUR", resp.Currency)
	require.Len(t, resp.Slots, 13)

	unavailable := map[int]bool{}
	for _, s := range resp.Slots {
		if !s.IsAvailable {
			unavailable[s.StartTime.In(loc).Hour()] = true
		}
	}
	assert.Equal(t, map[int]bool{10: true, 15: true}, unavailable)
}

func TestExecute_OrganizationNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeCourtRepo{},
		&fakeBookingRepo{},
		&fakeOrgService{err: orgClient.ErrOrganizationNotFound},
		&fakeSweeper{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		OrganizationID: 99,
		CourtID:        1,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestExecute_CourtFromAnotherOrganization(t *testing.T) {
	court := testCourt(t)
	court.OrganizationID = 777
	org := testOrg()

	uc := newTestUseCase(
		&fakeCourtRepo{court: court},
		&fakeBookingRepo{},
		&fakeOrgService{org: org},
		&fakeSweeper{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		OrganizationID: org.ID,
		CourtID:        court.ID,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_InactiveCourt(t *testing.T) {
	court := testCourt(t)
	court.IsActive = false
	org := testOrg()

	uc := newTestUseCase(
		&fakeCourtRepo{court: court},
		&fakeBookingRepo{},
		&fakeOrgService{org: org},
		&fakeSweeper{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		OrganizationID: org.ID,
		CourtID:        court.ID,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeCourtRepo{court: testCourt(t)},
		&fakeBookingRepo{},
		&fakeOrgService{org: testOrg()},
		&fakeSweeper{},
		time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		OrganizationID: 10,
		CourtID:        1,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondBookingWindow(t *testing.T) {
	uc := newTestUseCase(
		&fakeCourtRepo{court: testCourt(t)},
		&fakeBookingRepo{},
		&fakeOrgService{org: testOrg()},
		&fakeSweeper{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	// окно 14 дней, запрашиваем 20-й
	_, err := uc.Execute(context.Background(), &Request{
		OrganizationID: 10,
		CourtID:        1,
		Date:           time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_SweepFailureDoesNotBlockCalendar(t *testing.T) {
	uc := newTestUseCase(
		&fakeCourtRepo{court: testCourt(t)},
		&fakeBookingRepo{},
		&fakeOrgService{org: testOrg()},
		&fakeSweeper{err: errors.New("db down")},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		OrganizationID: 10,
		CourtID:        1,
		Date:           time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 13)
}
