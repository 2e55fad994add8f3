package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(start, end time.Time) BookingSlot {
	return BookingSlot{StartTime: start, EndTime: end}
}

func TestBooking_IsActive(t *testing.T) {
	cases := []struct {
		status BookingStatus
		active bool
	}{
		{StatusPendingPayment, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
		{StatusExpired, false},
	}

	for _, tc := range cases {
		b := &Booking{Status: tc.status}
		assert.Equal(t, tc.active, b.IsActive(), "status %s", tc.status)
	}
}

func TestBooking_IsTerminal(t *testing.T) {
	cases := []struct {
		status   BookingStatus
		terminal bool
	}{
		{StatusPendingPayment, false},
		{StatusConfirmed, false},
		{StatusCancelled, true},
		{StatusExpired, true},
		{StatusCompleted, true},
	}

	for _, tc := range cases {
		b := &Booking{Status: tc.status}
		assert.Equal(t, tc.terminal, b.IsTerminal(), "status %s", tc.status)
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	t.Run("confirmed booking with future slot", func(t *testing.T) {
		b := &Booking{
			Status: StatusConfirmed,
			Slots:  []BookingSlot{slotAt(future, future.Add(time.Hour))},
		}
		assert.True(t, b.CanBeCancelled(now))
	})

	t.Run("confirmed booking already started", func(t *testing.T) {
		b := &Booking{
			Status: StatusConfirmed,
			Slots:  []BookingSlot{slotAt(past, past.Add(time.Hour))},
		}
		assert.False(t, b.CanBeCancelled(now))
	})

	t.Run("pending booking is not cancellable", func(t *testing.T) {
		b := &Booking{
			Status: StatusPendingPayment,
			Slots:  []BookingSlot{slotAt(future, future.Add(time.Hour))},
		}
		assert.False(t, b.CanBeCancelled(now))
	})

	t.Run("no slots loaded", func(t *testing.T) {
		b := &Booking{Status: StatusConfirmed}
		assert.False(t, b.CanBeCancelled(now))
	})
}

func TestBooking_SlotBounds(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Слоты намеренно не по порядку
	b := &Booking{
		Slots: []BookingSlot{
			slotAt(base.Add(time.Hour), base.Add(2*time.Hour)),
			slotAt(base, base.Add(time.Hour)),
			slotAt(base.Add(2*time.Hour), base.Add(3*time.Hour)),
		},
	}

	first := b.FirstSlotStart()
	require.NotNil(t, first)
	assert.Equal(t, base, *first)

	last := b.LastSlotEnd()
	require.NotNil(t, last)
	assert.Equal(t, base.Add(3*time.Hour), *last)

	empty := &Booking{}
	assert.Nil(t, empty.FirstSlotStart())
	assert.Nil(t, empty.LastSlotEnd())
}

func TestBookingSlot_Overlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slot := slotAt(base, base.Add(time.Hour))

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, slot.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, slot.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)))
	})

	t.Run("adjacent intervals do not overlap", func(t *testing.T) {
		assert.False(t, slot.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
		assert.False(t, slot.Overlaps(base.Add(-time.Hour), base))
	})
}
