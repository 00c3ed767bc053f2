package analytics

import (
	"math"
	"sort"
)

// Status performance tier against a goal
type Status string

const (
	StatusAhead   Status = "ahead"
	StatusCaution Status = "caution"
	StatusBehind  Status = "behind"
)

// Tier boundaries, inclusive on the lower end.
const (
	AheadThreshold   = 1.0
	CautionThreshold = 0.8
)

// Ratio actual/goal, or 0 when there is no positive goal.
func Ratio(actual, goal float64) float64 {
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return 0
	}
	r := actual / goal
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// StatusFor maps a ratio onto its tier.
func StatusFor(ratio float64) Status {
	switch {
	case ratio >= AheadThreshold:
		return StatusAhead
	case ratio >= CautionThreshold:
		return StatusCaution
	}
	return StatusBehind
}

// Ranked an entity with its position and tier
type Ranked[T any] struct {
	Item    T       `json:"item"`
	Rank    int     `json:"rank"`
	Actual  float64 `json:"actual"`
	Goal    float64 `json:"goal"`
	Ratio   float64 `json:"ratio"`
	Percent float64 `json:"percent"`
	Status  Status  `json:"status"`
}

// Rank orders items by actual/goal descending. Equal ratios keep their input order.
func Rank[T any](items []T, actual, goal func(T) float64) []Ranked[T] {
	out := make([]Ranked[T], len(items))
	for i, it := range items {
		a, g := actual(it), goal(it)
		r := Ratio(a, g)
		out[i] = Ranked[T]{
			Item:    it,
			Actual:  a,
			Goal:    g,
			Ratio:   r,
			Percent: r * 100,
			Status:  StatusFor(r),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// TopN the first n ranked entries by actual value descending, stable on ties.
// Used where there is no goal to rank against.
func TopN[T any](items []T, n int, actual func(T) float64) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return actual(sorted[i]) > actual(sorted[j]) })
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
