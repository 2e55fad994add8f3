package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pricingOrg(weekendIsPeak bool) *Organization {
	return &Organization{
		WeekendIsPeak: weekendIsPeak,
		PeakStartHour: 18,
		PeakEndHour:   22,
	}
}

func ptrInt64(v int64) *int64 { return &v }

func TestIsPeakTime(t *testing.T) {
	org := pricingOrg(true)

	// 1 сентября 2026 - вторник, 5 сентября - суббота
	tuesday := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	t.Run("weekday inside peak window", func(t *testing.T) {
		assert.True(t, IsPeakTime(org, tuesday.Add(18*time.Hour)))
		assert.True(t, IsPeakTime(org, tuesday.Add(21*time.Hour)))
	})

	t.Run("weekday peak end is exclusive", func(t *testing.T) {
		assert.False(t, IsPeakTime(org, tuesday.Add(22*time.Hour)))
	})

	t.Run("weekday morning is off-peak", func(t *testing.T) {
		assert.False(t, IsPeakTime(org, tuesday.Add(10*time.Hour)))
	})

	t.Run("weekend is all-day peak with flag", func(t *testing.T) {
		assert.True(t, IsPeakTime(org, saturday.Add(8*time.Hour)))
		assert.True(t, IsPeakTime(org, saturday.Add(23*time.Hour)))
	})

	t.Run("weekend evening without flag is not peak", func(t *testing.T) {
		noWeekend := pricingOrg(false)
		assert.False(t, IsPeakTime(noWeekend, saturday.Add(19*time.Hour)))
	})
}

func TestSlotPriceCents(t *testing.T) {
	court := &Court{
		SlotDurationMinutes:   60,
		PricePerHourCents:     2000,
		PeakPricePerHourCents: ptrInt64(3000),
	}
	org := pricingOrg(false)

	tuesday := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("standard rate off-peak", func(t *testing.T) {
		assert.Equal(t, int64(2000), SlotPriceCents(court, org, tuesday.Add(10*time.Hour)))
	})

	t.Run("peak rate inside window", func(t *testing.T) {
		assert.Equal(t, int64(3000), SlotPriceCents(court, org, tuesday.Add(19*time.Hour)))
	})

	t.Run("half-hour slots are prorated", func(t *testing.T) {
		half := &Court{
			SlotDurationMinutes:   30,
			PricePerHourCents:     2000,
			PeakPricePerHourCents: ptrInt64(3000),
		}
		assert.Equal(t, int64(1000), SlotPriceCents(half, org, tuesday.Add(10*time.Hour)))
		assert.Equal(t, int64(1500), SlotPriceCents(half, org, tuesday.Add(19*time.Hour)))
	})

	t.Run("missing peak rate falls back to standard", func(t *testing.T) {
		plain := &Court{SlotDurationMinutes: 60, PricePerHourCents: 2000}
		assert.Equal(t, int64(2000), SlotPriceCents(plain, org, tuesday.Add(19*time.Hour)))
	})

	t.Run("peak is never cheaper than standard", func(t *testing.T) {
		discounted := &Court{
			SlotDurationMinutes:   60,
			PricePerHourCents:     2000,
			PeakPricePerHourCents: ptrInt64(1500),
		}
		assert.Equal(t, int64(2000), SlotPriceCents(discounted, org, tuesday.Add(19*time.Hour)))
	})
}
