package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"recruit-tracker/internal/model"
)

// MonthNames column headers of the yearly grid
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// YearlyMetrics row labels, in output order
var YearlyMetrics = []string{"Placements", "Interviews", "Job Orders", "Revenue"}

// MonthBucket one month of one team
type MonthBucket struct {
	Month      string          `json:"month"`
	Placements int             `json:"placements"`
	Interviews int             `json:"interviews"`
	JobOrders  int             `json:"job_orders"`
	Revenue    decimal.Decimal `json:"revenue"`
}

func (b MonthBucket) add(o MonthBucket) MonthBucket {
	b.Placements += o.Placements
	b.Interviews += o.Interviews
	b.JobOrders += o.JobOrders
	b.Revenue = b.Revenue.Add(o.Revenue)
	return b
}

// TeamYear twelve monthly buckets plus the year-to-date sum
type TeamYear struct {
	TeamID   string          `json:"team_id"`
	TeamName string          `json:"team_name"`
	Months   [12]MonthBucket `json:"months"`
	YTD      MonthBucket     `json:"ytd"`
}

// YearlyInput the rows one grid is computed from. Rows outside the year or the listed
// teams are ignored.
type YearlyInput struct {
	Year       int
	Teams      []model.Team
	Placements []model.Placement
	Interviews []model.InterviewSchedule
	Records    []model.DailyRecord
}

// YearlyGrid buckets placements by placement date, interviews by interview date and job
// orders by record date, one TeamYear per input team in input order.
func YearlyGrid(in YearlyInput) []TeamYear {
	period := YearPeriod(in.Year)
	index := make(map[string]int, len(in.Teams))
	out := make([]TeamYear, len(in.Teams))
	for i, t := range in.Teams {
		index[t.TeamID] = i
		out[i] = TeamYear{TeamID: t.TeamID, TeamName: t.Name}
		for m := range out[i].Months {
			out[i].Months[m].Month = MonthNames[m]
		}
		out[i].YTD.Month = "YTD"
	}

	bucket := func(teamID string, at time.Time) *MonthBucket {
		i, ok := index[teamID]
		if !ok || !period.Contains(at) {
			return nil
		}
		return &out[i].Months[at.Month()-1]
	}

	for _, p := range in.Placements {
		if b := bucket(p.TeamID, p.PlacementDate); b != nil {
			b.Placements++
			b.Revenue = b.Revenue.Add(p.FeeAmount)
		}
	}
	for _, iv := range in.Interviews {
		if iv.InterviewAt == nil {
			continue
		}
		if b := bucket(iv.TeamID, iv.InterviewAt.UTC()); b != nil {
			b.Interviews++
		}
	}
	for _, r := range in.Records {
		if b := bucket(r.TeamID, r.RecordDate); b != nil {
			b.JobOrders += r.JobOrders
		}
	}

	for i := range out {
		for _, m := range out[i].Months {
			out[i].YTD = out[i].YTD.add(m)
		}
	}
	return out
}

// YearlyTotals sums the YTD column across teams.
func YearlyTotals(grid []TeamYear) MonthBucket {
	total := MonthBucket{Month: "YTD"}
	for _, t := range grid {
		total = total.add(t.YTD)
	}
	return total
}

// YearlyRows flattens the grid into the table written by the exports:
// header then four metric rows per team.
func YearlyRows(grid []TeamYear) [][]string {
	header := make([]string, 0, 15)
	header = append(header, "Team", "Metric")
	header = append(header, MonthNames[:]...)
	header = append(header, "YTD Total")

	rows := [][]string{header}
	for _, t := range grid {
		for _, metric := range YearlyMetrics {
			row := make([]string, 0, 15)
			row = append(row, t.TeamName, metric)
			for _, m := range t.Months {
				row = append(row, cell(m, metric))
			}
			row = append(row, cell(t.YTD, metric))
			rows = append(rows, row)
		}
	}
	return rows
}

func cell(b MonthBucket, metric string) string {
	switch metric {
	case "Placements":
		return strconv.Itoa(b.Placements)
	case "Interviews":
		return strconv.Itoa(b.Interviews)
	case "Job Orders":
		return strconv.Itoa(b.JobOrders)
	}
	return b.Revenue.String()
}

// WriteYearlyCSV writes the grid as CSV. Identical input gives byte-identical output.
func WriteYearlyCSV(w io.Writer, grid []TeamYear) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(YearlyRows(grid)); err != nil {
		return err
	}
	return cw.Error()
}
