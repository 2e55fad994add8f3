package courts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	courtRepo "github.com/courtops/CourtBookingService/internal/infra/storage/court"
	"github.com/courtops/CourtBookingService/internal/service/courts/models"
	"github.com/courtops/CourtBookingService/pkg/ptr"
)

type fakeCourtRepo struct {
	court   *domain.Court
	updated *domain.Court
	created *domain.Court
	block   *domain.CourtBlock

	deletedCourtID    int64
	deletedBlockID    int64
	deletedBlockOrgID int64
}

func (f *fakeCourtRepo) Create(ctx context.Context, c *domain.Court) (*domain.Court, error) {
	c.ID = 1
	f.created = c
	return c, nil
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	if f.court == nil || f.court.ID != id {
		return nil, courtRepo.ErrCourtNotFound
	}
	return f.court, nil
}

func (f *fakeCourtRepo) GetByOrganizationID(ctx context.Context, orgID int64, onlyActive bool) ([]*domain.Court, error) {
	if f.court == nil {
		return nil, nil
	}
	return []*domain.Court{f.court}, nil
}

func (f *fakeCourtRepo) Update(ctx context.Context, c *domain.Court) error {
	f.updated = c
	return nil
}

func (f *fakeCourtRepo) Delete(ctx context.Context, id int64) error {
	f.deletedCourtID = id
	return nil
}

func (f *fakeCourtRepo) CreateBlock(ctx context.Context, b *domain.CourtBlock) (*domain.CourtBlock, error) {
	b.ID = 50
	f.block = b
	return b, nil
}

func (f *fakeCourtRepo) FindBlocksInRange(ctx context.Context, courtID int64, from, to time.Time) ([]domain.CourtBlock, error) {
	return nil, nil
}

func (f *fakeCourtRepo) DeleteBlock(ctx context.Context, id, orgID int64) error {
	f.deletedBlockID = id
	f.deletedBlockOrgID = orgID
	return nil
}

type fakeBookingRepo struct {
	hasActive bool
	confirmed []domain.BookingSlot
}

func (f *fakeBookingRepo) HasActiveSlotsAfter(ctx context.Context, courtID int64, after time.Time) (bool, error) {
	return f.hasActive, nil
}

func (f *fakeBookingRepo) FindConfirmedSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error) {
	return f.confirmed, nil
}

type fakeOrgService struct{ org *domain.Organization }

func (f *fakeOrgService) GetOrganization(ctx context.Context, orgID int64) (*domain.Organization, error) {
	return f.org, nil
}

type passthroughTxManager struct{}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const adminID = int64(99)

func adminOrg() *domain.Organization {
	return &domain.Organization{
		ID:                  10,
		SlotDurationMinutes: 60,
		AdminIDs:            []int64{adminID},
	}
}

func existingCourt() *domain.Court {
	return &domain.Court{
		ID:                  1,
		OrganizationID:      10,
		Name:                "Court 1",
		OpenTime:            "09:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 60,
		PricePerHourCents:   2000,
		IsActive:            true,
	}
}

func newService(courts *fakeCourtRepo, bookings *fakeBookingRepo) *Service {
	return NewService(courts, bookings, &fakeOrgService{org: adminOrg()}, &passthroughTxManager{}, nopLogger{})
}

func TestCreateCourt_AdminOnly(t *testing.T) {
	svc := newService(&fakeCourtRepo{}, &fakeBookingRepo{})

	_, err := svc.CreateCourt(context.Background(), &models.CreateCourtRequest{
		UserID:            42,
		OrganizationID:    10,
		Name:              "Court 2",
		OpenTime:          "09:00",
		CloseTime:         "22:00",
		PricePerHourCents: 2000,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateCourt_DefaultsSlotDurationFromOrganization(t *testing.T) {
	repo := &fakeCourtRepo{}
	svc := newService(repo, &fakeBookingRepo{})

	resp, err := svc.CreateCourt(context.Background(), &models.CreateCourtRequest{
		UserID:            adminID,
		OrganizationID:    10,
		Name:              "Court 2",
		OpenTime:          "09:00",
		CloseTime:         "22:00",
		PricePerHourCents: 2000,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.True(t, resp.IsActive)
	require.NotNil(t, repo.created)
}

func TestCreateCourt_RejectsInvertedHours(t *testing.T) {
	svc := newService(&fakeCourtRepo{}, &fakeBookingRepo{})

	_, err := svc.CreateCourt(context.Background(), &models.CreateCourtRequest{
		UserID:            adminID,
		OrganizationID:    10,
		Name:              "Court 2",
		OpenTime:          "22:00",
		CloseTime:         "09:00",
		PricePerHourCents: 2000,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCourt_PartialUpdate(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{})

	resp, err := svc.UpdateCourt(context.Background(), &models.UpdateCourtRequest{
		UserID:            adminID,
		OrganizationID:    10,
		CourtID:           1,
		PricePerHourCents: ptr.Ptr(int64(2500)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), resp.PricePerHourCents)
	// остальные поля не тронуты
	assert.Equal(t, "Court 1", resp.Name)
	assert.Equal(t, "09:00", resp.OpenTime)
	require.NotNil(t, repo.updated)
}

func TestDeleteCourt_GuardedByActiveSlots(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{hasActive: true})

	err := svc.DeleteCourt(context.Background(), 10, 1, adminID)
	assert.ErrorIs(t, err, ErrCourtHasBookings)
	assert.Zero(t, repo.deletedCourtID)
}

func TestDeleteCourt_WithoutFutureSlots(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{})

	err := svc.DeleteCourt(context.Background(), 10, 1, adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.deletedCourtID)
}

func TestCreateBlock_RejectedOverConfirmedSlots(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{confirmed: []domain.BookingSlot{{CourtID: 1}}})

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateBlock(context.Background(), &models.CreateBlockRequest{
		UserID:         adminID,
		OrganizationID: 10,
		CourtID:        1,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrCourtHasBookings)
	assert.Nil(t, repo.block)
}

func TestCreateBlock_Created(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{})

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	resp, err := svc.CreateBlock(context.Background(), &models.CreateBlockRequest{
		UserID:         adminID,
		OrganizationID: 10,
		CourtID:        1,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		Reason:         ptr.Ptr("maintenance"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), resp.ID)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "maintenance", *resp.Reason)
}

func TestDeleteBlock_ScopedToOrganization(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{})

	err := svc.DeleteBlock(context.Background(), 10, 50, adminID)
	require.NoError(t, err)

	assert.Equal(t, int64(50), repo.deletedBlockID)
	assert.Equal(t, int64(10), repo.deletedBlockOrgID)
}

func TestDeleteBlock_AdminOnly(t *testing.T) {
	repo := &fakeCourtRepo{court: existingCourt()}
	svc := newService(repo, &fakeBookingRepo{})

	err := svc.DeleteBlock(context.Background(), 10, 50, 500)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.deletedBlockID)
}

func TestGetCourt_CrossTenantHidden(t *testing.T) {
	court := existingCourt()
	court.OrganizationID = 777
	svc := newService(&fakeCourtRepo{court: court}, &fakeBookingRepo{})

	_, err := svc.GetCourt(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}
