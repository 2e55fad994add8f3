package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtops/CourtBookingService/internal/domain"
	"github.com/courtops/CourtBookingService/pkg/ptr"
	"github.com/courtops/CourtBookingService/pkg/types"
)

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
		ID:                  10,
		Timezone:            "Europe/Madrid",
		Currency:            "EUR",
		BookingWindowDays:   14,
		SlotDurationMinutes: 60,
		PeakStartHour:       18,
		PeakEndHour:         21,
	}
}

func TestBuildDaySlots_FullDay(t *testing.T) {
	court := testCourt(t)
	org := testOrg()
	loc, err := org.Location()
	require.NoError(t, err)

	// среда
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots, err := buildDaySlots(court, org, date, loc)
	require.NoError(t, err)

	// 09:00..22:00 по часу
	require.Len(t, slots, 13)

	first := slots[0]
	assert.Equal(t, time.Date(2026, 9, 2, 9, 0, 0, 0, loc).UTC(), first.StartTime)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, loc).UTC(), first.EndTime)
	assert.False(t, first.IsPeak)
	assert.Equal(t, int64(2000), first.PriceCents)
	assert.True(t, first.IsAvailable)

	last := slots[len(slots)-1]
	assert.Equal(t, time.Date(2026, 9, 2, 21, 0, 0, 0, loc).UTC(), last.StartTime)
}

func TestBuildDaySlots_TrailingPartialSlotDropped(t *testing.T) {
	court := testCourt(t)
	court.CloseTime = mustTime(t, "21:30")
	org := testOrg()
	loc, err := org.Location()
	require.NoError(t, err)

	slots, err := buildDaySlots(court, org, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), loc)
	require.NoError(t, err)

	// 21:00-22:00 не помещается до 21:30, последний слот 20:00-21:00
	require.Len(t, slots, 12)
	assert.Equal(t, time.Date(2026, 9, 2, 21, 0, 0, 0, loc).UTC(), slots[len(slots)-1].EndTime)
}

func TestBuildDaySlots_WeekdayPeakWindow(t *testing.T) {
	court := testCourt(t)
	org := testOrg()
	loc, err := org.Location()
	require.NoError(t, err)

	slots, err := buildDaySlots(court, org, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), loc)
	require.NoError(t, err)

	byLocalHour := map[int]domain.CandidateSlot{}
	for _, s := range slots {
		byLocalHour[s.StartTime.In(loc).Hour()] = s
	}

	// пик [18, 21): 17:00 и 21:00 вне пика
	assert.False(t, byLocalHour[17].IsPeak)
	assert.True(t, byLocalHour[18].IsPeak)
	assert.True(t, byLocalHour[20].IsPeak)
	assert.False(t, byLocalHour[21].IsPeak)

	assert.Equal(t, int64(3000), byLocalHour[18].PriceCents)
	assert.Equal(t, int64(2000), byLocalHour[21].PriceCents)
}

func TestBuildDaySlots_WeekendAllDayPeak(t *testing.T) {
	court := testCourt(t)
	org := testOrg()
	org.WeekendIsPeak = true
	loc, err := org.Location()
	require.NoError(t, err)

	// суббота
	slots, err := buildDaySlots(court, org, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), loc)
	require.NoError(t, err)

	for _, s := range slots {
		assert.True(t, s.IsPeak, "slot %s", s.StartTime)
		assert.Equal(t, int64(3000), s.PriceCents)
	}
}

func TestBuildDaySlots_WeekendWithoutFlagIsNotPeak(t *testing.T) {
	court := testCourt(t)
	org := testOrg()
	loc, err := org.Location()
	require.NoError(t, err)

	// суббота, weekend_is_peak выключен: вечерние часы тоже не пиковые
	slots, err := buildDaySlots(court, org, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), loc)
	require.NoError(t, err)

	for _, s := range slots {
		assert.False(t, s.IsPeak, "slot %s", s.StartTime)
	}
}

func TestBuildDaySlots_PeakNeverCheaperThanStandard(t *testing.T) {
	court := testCourt(t)
	court.PeakPricePerHourCents = ptr.Ptr(int64(1500))
	org := testOrg()
	loc, err := org.Location()
	require.NoError(t, err)

	slots, err := buildDaySlots(court, org, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), loc)
	require.NoError(t, err)

	for _, s := range slots {
		assert.GreaterOrEqual(t, s.PriceCents, int64(2000))
	}
}

func TestMarkOccupied_AdjacentIntervalsDoNotOverlap(t *testing.T) {
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	slots := []domain.CandidateSlot{
		{StartTime: start, EndTime: start.Add(time.Hour), IsAvailable: true},
		{StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), IsAvailable: true},
		{StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour), IsAvailable: true},
	}

	// занят ровно средний слот; границы с соседями не считаются пересечением
	markOccupied(slots, []domain.Interval{
		{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
	})

	assert.True(t, slots[0].IsAvailable)
	assert.False(t, slots[1].IsAvailable)
	assert.True(t, slots[2].IsAvailable)
}

func TestMarkOccupied_PartialOverlapBlocksSlot(t *testing.T) {
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	slots := []domain.CandidateSlot{
		{StartTime: start, EndTime: start.Add(time.Hour), IsAvailable: true},
		{StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), IsAvailable: true},
	}

	// блокировка 10:30-11:30 задевает оба слота
	markOccupied(slots, []domain.Interval{
		{Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute)},
	})

	assert.False(t, slots[0].IsAvailable)
	assert.False(t, slots[1].IsAvailable)
}

func TestDayBoundsUTC(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	start, end := dayBoundsUTC(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), loc)

	// летом Мадрид UTC+2
	assert.Equal(t, time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 22, 0, 0, 0, time.UTC), end)
}
