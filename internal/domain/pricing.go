package domain

import "time"

// IsPeakTime reports whether a slot starting at localStart is peak under the
// organization's policy. localStart must already be in the organization's
// timezone: weekends are all-day peak when WeekendIsPeak is set; on weekdays
// the local start hour must fall in [PeakStartHour, PeakEndHour).
func IsPeakTime(org *Organization, localStart time.Time) bool {
	wd := localStart.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return org.WeekendIsPeak
	}
	h := localStart.Hour()
	return h >= org.PeakStartHour && h < org.PeakEndHour
}

// SlotPriceCents returns the price of one slot of the court starting at
// localStart. Deterministic; bookings capture the result at creation time
// and never recompute it.
func SlotPriceCents(court *Court, org *Organization, localStart time.Time) int64 {
	if IsPeakTime(org, localStart) {
		return court.PeakSlotPriceCents()
	}
	return court.SlotPriceCents()
}
