package booking

import "time"

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether two half-open intervals intersect. A booking that
// ends exactly when another starts does not overlap it.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// DayWindow returns the [midnight, next midnight) window containing day,
// in day's location.
func DayWindow(day time.Time) Interval {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}
