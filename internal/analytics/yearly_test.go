package analytics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"recruit-tracker/internal/model"
)

func yearlyFixture() YearlyInput {
	jan := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, time.March, 3, 14, 30, 0, 0, time.UTC)
	lastYear := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)

	return YearlyInput{
		Year: 2024,
		Teams: []model.Team{
			{TeamID: "t1", Name: "North"},
			{TeamID: "t2", Name: "South, East"},
		},
		Placements: []model.Placement{
			{TeamID: "t1", PlacementDate: jan, FeeAmount: decimal.RequireFromString("12500.50")},
			{TeamID: "t1", PlacementDate: jan, FeeAmount: decimal.NewFromInt(20000)},
			{TeamID: "t2", PlacementDate: mar, FeeAmount: decimal.NewFromInt(9000)},
			{TeamID: "t1", PlacementDate: lastYear, FeeAmount: decimal.NewFromInt(1)},
			{TeamID: "other", PlacementDate: jan, FeeAmount: decimal.NewFromInt(1)},
		},
		Interviews: []model.InterviewSchedule{
			{TeamID: "t1", InterviewAt: &mar},
			{TeamID: "t1", InterviewAt: nil},
			{TeamID: "t2", InterviewAt: &jan},
		},
		Records: []model.DailyRecord{
			{TeamID: "t1", RecordDate: jan, JobOrders: 2},
			{TeamID: "t1", RecordDate: mar, JobOrders: 3},
			{TeamID: "t2", RecordDate: lastYear, JobOrders: 50},
		},
	}
}

func TestYearlyGrid(t *testing.T) {
	Convey("Given a year of placements, interviews and daily records", t, func() {
		grid := YearlyGrid(yearlyFixture())

		Convey("Teams follow input order", func() {
			So(grid, ShouldHaveLength, 2)
			So(grid[0].TeamName, ShouldEqual, "North")
			So(grid[1].TeamName, ShouldEqual, "South, East")
		})

		Convey("Rows are bucketed by calendar month", func() {
			north := grid[0]
			So(north.Months[0].Placements, ShouldEqual, 2)
			So(north.Months[0].Revenue.String(), ShouldEqual, "32500.5")
			So(north.Months[2].Interviews, ShouldEqual, 1)

			south := grid[1]
			So(south.Months[0].Interviews, ShouldEqual, 1)
			So(south.Months[2].Placements, ShouldEqual, 1)
		})

		Convey("YTD excludes the prior year", func() {
			So(grid[0].YTD.JobOrders, ShouldEqual, 5)
			So(grid[0].YTD.Placements, ShouldEqual, 2)
			So(grid[1].YTD.JobOrders, ShouldEqual, 0)
		})

		Convey("Totals add up every team", func() {
			total := YearlyTotals(grid)
			So(total.Placements, ShouldEqual, 3)
			So(total.Revenue.String(), ShouldEqual, "41500.5")
		})
	})
}

func TestWriteYearlyCSV(t *testing.T) {
	Convey("Given the yearly grid", t, func() {
		grid := YearlyGrid(yearlyFixture())

		var buf bytes.Buffer
		So(WriteYearlyCSV(&buf, grid), ShouldBeNil)
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

		Convey("One header and four metric rows per team", func() {
			So(lines, ShouldHaveLength, 1+2*4)
			So(lines[0], ShouldEqual, "Team,Metric,Jan,Feb,Mar,Apr,May,Jun,Jul,Aug,Sep,Oct,Nov,Dec,YTD Total")
			So(lines[1], ShouldEqual, "North,Placements,2,0,0,0,0,0,0,0,0,0,0,0,2")
			So(lines[4], ShouldEqual, "North,Revenue,32500.5,0,0,0,0,0,0,0,0,0,0,0,32500.5")
		})

		Convey("Team names with commas are quoted", func() {
			So(lines[5], ShouldStartWith, `"South, East",Placements,`)
		})

		Convey("Identical input exports identical bytes", func() {
			var again bytes.Buffer
			So(WriteYearlyCSV(&again, YearlyGrid(yearlyFixture())), ShouldBeNil)
			So(again.String(), ShouldEqual, buf.String())
		})
	})

	Convey("Given no teams", t, func() {
		var buf bytes.Buffer
		So(WriteYearlyCSV(&buf, nil), ShouldBeNil)
		So(strings.Count(buf.String(), "\n"), ShouldEqual, 1)
	})
}
