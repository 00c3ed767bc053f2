package analytics

import "time"

// Period an inclusive range of calendar days. Times are normalized to UTC midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewPeriod builds an inclusive period from two dates.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: Day(start), End: Day(end)}
}

// MonthPeriod the whole of one calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// YearPeriod Jan 1 to Dec 31.
func YearPeriod(year int) Period {
	return Period{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// YearToDate Jan 1 of year up to asOf, clamped to the year. A year entirely in the
// future yields an empty period.
func YearToDate(year int, asOf time.Time) Period {
	p := YearPeriod(year)
	asOf = Day(asOf)
	if asOf.Before(p.End) {
		p.End = asOf
	}
	return p
}

// Empty reports whether the period contains no days.
func (p Period) Empty() bool { return p.End.Before(p.Start) }

// Contains inclusive on both ends, compared by calendar date.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days number of calendar days, weekends included.
func (p Period) Days() int {
	if p.Empty() {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Dates every day in the period in ascending order.
func (p Period) Dates() []time.Time {
	out := make([]time.Time, 0, p.Days())
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
