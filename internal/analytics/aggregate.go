package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"recruit-tracker/internal/model"
)

// Totals summed daily counters
type Totals struct {
	PresentationsA  int             `json:"presentations_a"`
	PresentationsB  int             `json:"presentations_b"`
	Submissions     int             `json:"submissions"`
	JobOrders       int             `json:"job_orders"`
	Interviews      int             `json:"interviews"`
	PlacementCount  int             `json:"placement_count"`
	PlacementAmount decimal.Decimal `json:"placement_amount"`
	Records         int             `json:"records"`
}

// Add folds one record into the totals.
func (t Totals) Add(r model.DailyRecord) Totals {
	t.PresentationsA += r.PresentationsA
	t.PresentationsB += r.PresentationsB
	t.Submissions += r.Submissions
	t.JobOrders += r.JobOrders
	t.Interviews += r.Interviews
	t.PlacementCount += r.PlacementCount
	t.PlacementAmount = t.PlacementAmount.Add(r.PlacementAmount)
	t.Records++
	return t
}

// Merge sums two totals.
func (t Totals) Merge(o Totals) Totals {
	t.PresentationsA += o.PresentationsA
	t.PresentationsB += o.PresentationsB
	t.Submissions += o.Submissions
	t.JobOrders += o.JobOrders
	t.Interviews += o.Interviews
	t.PlacementCount += o.PlacementCount
	t.PlacementAmount = t.PlacementAmount.Add(o.PlacementAmount)
	t.Records += o.Records
	return t
}

// Value reads the counter a goal metric type refers to; unknown metrics read 0.
func (t Totals) Value(metric string) float64 {
	switch metric {
	case model.MetricSales:
		return t.PlacementAmount.InexactFloat64()
	case model.MetricFTI:
		return float64(t.Interviews)
	case model.MetricJobOrders:
		return float64(t.JobOrders)
	case model.MetricRP:
		return float64(t.PresentationsA)
	case model.MetricMP:
		return float64(t.PresentationsB)
	case model.MetricSubs:
		return float64(t.Submissions)
	case model.MetricPlacements:
		return float64(t.PlacementCount)
	}
	return 0
}

// KeyFunc picks the group a record is summed into
type KeyFunc func(model.DailyRecord) string

// ByUser groups by authoring user.
func ByUser(r model.DailyRecord) string { return r.UserID }

// ByTeam groups by the team the record was written under.
func ByTeam(r model.DailyRecord) string { return r.TeamID }

// ByMonth groups by "YYYY-MM".
func ByMonth(r model.DailyRecord) string { return r.RecordDate.Format("2006-01") }

// ByDate groups by "YYYY-MM-DD".
func ByDate(r model.DailyRecord) string { return r.RecordDate.Format(time.DateOnly) }

// Aggregate sums every record whose date falls in period into its group.
// Each record is added exactly once; groups without records are absent.
func Aggregate(records []model.DailyRecord, period Period, key KeyFunc) map[string]Totals {
	out := make(map[string]Totals)
	for _, r := range records {
		if !period.Contains(r.RecordDate) {
			continue
		}
		k := key(r)
		out[k] = out[k].Add(r)
	}
	return out
}

// SeedKeys inserts zero totals for keys that are expected but had no records.
func SeedKeys(totals map[string]Totals, keys ...string) map[string]Totals {
	if totals == nil {
		totals = make(map[string]Totals, len(keys))
	}
	for _, k := range keys {
		if _, ok := totals[k]; !ok {
			totals[k] = Totals{}
		}
	}
	return totals
}

// Sum totals every record in period without grouping.
func Sum(records []model.DailyRecord, period Period) Totals {
	var t Totals
	for _, r := range records {
		if period.Contains(r.RecordDate) {
			t = t.Add(r)
		}
	}
	return t
}

// DailyGoal splits a period target evenly over every calendar day.
func DailyGoal(target float64, period Period) float64 {
	days := period.Days()
	if days == 0 {
		return 0
	}
	return target / float64(days)
}

// DailyPoint one calendar day of a series
type DailyPoint struct {
	Date   time.Time          `json:"date"`
	Totals Totals             `json:"totals"`
	Goals  map[string]float64 `json:"goals"`
}

// DailySeries one point per day in period, zero-filled, each carrying the equal-split
// daily share of the given period targets keyed by metric type.
func DailySeries(records []model.DailyRecord, period Period, targets map[string]float64) []DailyPoint {
	byDay := Aggregate(records, period, ByDate)

	daily := make(map[string]float64, len(targets))
	for metric, target := range targets {
		daily[metric] = DailyGoal(target, period)
	}

	dates := period.Dates()
	out := make([]DailyPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyPoint{
			Date:   d,
			Totals: byDay[d.Format(time.DateOnly)],
			Goals:  daily,
		})
	}
	return out
}
