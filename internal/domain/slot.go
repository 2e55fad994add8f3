package domain

import "time"

// CandidateSlot is one bookable interval of an availability calendar,
// priced and flagged but not yet checked against the ledger.
type CandidateSlot struct {
	StartTime   time.Time // UTC instant
	EndTime     time.Time // UTC instant
	PriceCents  int64
	IsPeak      bool
	IsAvailable bool
}

// Interval is a committed occupancy interval of the reservation ledger:
// either a booking slot or a court block, reduced to its time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Intersects reports whether two half-open intervals overlap.
// Adjacent intervals (end == start) do not overlap.
func (i Interval) Intersects(start, end time.Time) bool {
	return i.Start.Before(end) && i.End.After(start)
}
