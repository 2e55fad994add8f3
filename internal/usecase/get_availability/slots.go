package get_availability

import (
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// buildDaySlots генерирует все слоты корта на указанную дату.
// Слоты идут с фиксированным шагом длительности корта от времени открытия;
// неполный хвост перед закрытием отбрасывается. Времена слотов вычисляются
// в часовом поясе организации и сохраняются как UTC-моменты, так что
// календарь остается корректным при переходах на летнее время.
func buildDaySlots(court *domain.Court, org *domain.Organization, date time.Time, loc *time.Location) ([]domain.CandidateSlot, error) {
	openMinutes, err := court.OpenTime.TotalMinutes()
	if err != nil {
		return nil, err
	}
	closeMinutes, err := court.CloseTime.TotalMinutes()
	if err != nil {
		return nil, err
	}

	duration := court.SlotDurationMinutes
	year, month, day := date.Date()

	slots := make([]domain.CandidateSlot, 0, (closeMinutes-openMinutes)/duration)

	for cur := openMinutes; cur+duration <= closeMinutes; cur += duration {
		// time.Date нормализует часы >= 24, поэтому закрытие "24:00" дает
		// корректную полночь следующего дня
		localStart := time.Date(year, month, day, cur/60, cur%60, 0, 0, loc)
		localEnd := time.Date(year, month, day, (cur+duration)/60, (cur+duration)%60, 0, 0, loc)

		slots = append(slots, domain.CandidateSlot{
			StartTime:   localStart.UTC(),
			EndTime:     localEnd.UTC(),
			PriceCents:  domain.SlotPriceCents(court, org, localStart),
			IsPeak:      domain.IsPeakTime(org, localStart),
			IsAvailable: true,
		})
	}

	return slots, nil
}

// markOccupied помечает занятыми слоты, пересекающиеся хотя бы с одним
// интервалом занятости (слотом бронирования или блокировкой корта).
// Граничащие интервалы пересечением не считаются.
func markOccupied(slots []domain.CandidateSlot, occupied []domain.Interval) {
	for i := range slots {
		for _, interval := range occupied {
			if interval.Intersects(slots[i].StartTime, slots[i].EndTime) {
				slots[i].IsAvailable = false
				break
			}
		}
	}
}

// collectOccupied сводит слоты бронирований и блокировки корта к единому
// списку интервалов занятости
func collectOccupied(booked []domain.BookingSlot, blocks []domain.CourtBlock) []domain.Interval {
	occupied := make([]domain.Interval, 0, len(booked)+len(blocks))
	for _, s := range booked {
		occupied = append(occupied, domain.Interval{Start: s.StartTime, End: s.EndTime})
	}
	for _, b := range blocks {
		occupied = append(occupied, domain.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return occupied
}

// dayBoundsUTC возвращает границы календарного дня организации как
// полуоткрытый UTC-интервал [start, end)
func dayBoundsUTC(date time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// isDateBefore сравнивает только календарные даты, без времени
func isDateBefore(date, other time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := other.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
