package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	bookingRepo "github.com/courtops/CourtBookingService/internal/infra/storage/booking"
	"github.com/courtops/CourtBookingService/internal/service/bookings/models"
	"github.com/courtops/CourtBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	list    []*domain.Booking

	lastFilter *domain.OrganizationBookingsFilter
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeBookingRepo) GetByOrganizationWithFilter(ctx context.Context, filter domain.OrganizationBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	return f.list, nil
}

type fakeOrgService struct{ org *domain.Organization }

func (f *fakeOrgService) GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error) {
	return f.org, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:             5,
		OrganizationID: 10,
		UserID:         ptr.Ptr(int64(42)),
		Status:         domain.StatusConfirmed,
		TotalCents:     4000,
		Currency:       "EUR",
		Slots: []domain.BookingSlot{{
			BookingID: 5,
			CourtID:   1,
			StartTime: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC),
		}},
	}
}

func newService(repo *fakeBookingRepo, org *domain.Organization) *Service {
	return NewService(repo, &fakeOrgService{org: org}, nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	svc := newService(&fakeBookingRepo{booking: testBooking()}, &domain.Organization{ID: 10})

	resp, err := svc.GetByID(context.Background(), 5, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, resp.Slots, 1)
}

func TestGetByID_AdminSeesGuestBooking(t *testing.T) {
	b := testBooking()
	b.UserID = nil
	b.GuestID = ptr.Ptr(int64(7))
	svc := newService(&fakeBookingRepo{booking: b}, &domain.Organization{ID: 10, AdminIDs: []int64{99}})

	resp, err := svc.GetByID(context.Background(), 5, 99)
	require.NoError(t, err)
	require.NotNil(t, resp.GuestID)
	assert.Equal(t, int64(7), *resp.GuestID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc := newService(&fakeBookingRepo{booking: testBooking()}, &domain.Organization{ID: 10})

	_, err := svc.GetByID(context.Background(), 5, 77)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newService(&fakeBookingRepo{}, &domain.Organization{ID: 10})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("paid"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrganizationBookings_AdminOnly(t *testing.T) {
	svc := newService(&fakeBookingRepo{}, &domain.Organization{ID: 10})

	_, err := svc.GetOrganizationBookings(context.Background(), &models.GetOrganizationBookingsRequest{
		UserID:         42,
		OrganizationID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetOrganizationBookings_FilterPassedThrough(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{testBooking()}}
	svc := newService(repo, &domain.Organization{ID: 10, AdminIDs: []int64{99}})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	resp, err := svc.GetOrganizationBookings(context.Background(), &models.GetOrganizationBookingsRequest{
		UserID:          99,
		OrganizationID:  10,
		CourtID:         ptr.Ptr(int64(1)),
		From:            &from,
		To:              &to,
		Status:          ptr.Ptr("confirmed"),
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(10), repo.lastFilter.OrganizationID)
	assert.Equal(t, int64(1), *repo.lastFilter.CourtID)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)
}
