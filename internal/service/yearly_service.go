package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// ── yearly tracking errors ──

var ErrExportGenerateFail = errors.New("failed to generate export file")

// YearlyService the per-team monthly tracking grid and its exports
type YearlyService interface {
	Grid(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*dto.YearlyResponse, error)
	ExportCSV(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*bytes.Buffer, string, error)
}

type yearlyService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewYearlyService creates a YearlyService
func NewYearlyService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) YearlyService {
	return &yearlyService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── Grid ──────────────────────

func (s *yearlyService) Grid(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*dto.YearlyResponse, error) {
	year, grid := s.grid(ctx, actor, q)
	return &dto.YearlyResponse{
		Year:   year,
		Months: analytics.MonthNames[:],
		Teams:  grid,
		Totals: analytics.YearlyTotals(grid),
	}, nil
}

// ────────────────────── ExportCSV ──────────────────────

func (s *yearlyService) ExportCSV(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*bytes.Buffer, string, error) {
	year, grid := s.grid(ctx, actor, q)

	buf := new(bytes.Buffer)
	if err := analytics.WriteYearlyCSV(buf, grid); err != nil {
		s.logger.Error("write yearly csv failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	s.metrics.ExportGenerated("csv")
	return buf, fmt.Sprintf("yearly-tracking-%d.csv", year), nil
}

// ────────────────────── ExportXLSX ──────────────────────

// ExportXLSX the same table as the CSV on one sheet, with numeric cells.
func (s *yearlyService) ExportXLSX(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*bytes.Buffer, string, error) {
	year, grid := s.grid(ctx, actor, q)

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Tracking %d", year)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "O", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	header := analytics.YearlyRows(nil)[0]
	for i, h := range header {
		f.SetCellValue(sheet, cellName(i, 1), h)
	}
	f.SetCellStyle(sheet, cellName(0, 1), cellName(len(header)-1, 1), headerStyle)

	row := 2
	for _, t := range grid {
		for _, metric := range analytics.YearlyMetrics {
			f.SetCellValue(sheet, cellName(0, row), t.TeamName)
			f.SetCellValue(sheet, cellName(1, row), metric)
			for m, b := range t.Months {
				f.SetCellValue(sheet, cellName(2+m, row), bucketValue(b, metric))
			}
			f.SetCellValue(sheet, cellName(14, row), bucketValue(t.YTD, metric))
			if metric == "Revenue" {
				f.SetCellStyle(sheet, cellName(2, row), cellName(14, row), moneyStyle)
			}
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	s.metrics.ExportGenerated("xlsx")
	return buf, fmt.Sprintf("yearly-tracking-%d.xlsx", year), nil
}

// ── helpers ──

// grid reads the four sources concurrently; a failed read counts as no rows.
func (s *yearlyService) grid(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (int, []analytics.TeamYear) {
	year := q.Year
	if year == 0 {
		year = s.now().Year()
	}
	period := analytics.YearPeriod(year)
	scope := analytics.VisibleScope(actor)
	in := analytics.YearlyInput{Year: year}

	var g errgroup.Group
	g.Go(func() error {
		var rows []model.Team
		var err error
		switch {
		case actor.IsAdmin() && q.TeamID != "":
			rows, err = s.repo.Team.ListByIDs(ctx, []string{q.TeamID})
		case actor.IsAdmin():
			rows, err = s.repo.Team.List(ctx)
		case actor.Active && actor.TeamID != "":
			rows, err = s.repo.Team.ListByIDs(ctx, []string{actor.TeamID})
		}
		if err != nil {
			readFailed(s.logger, s.metrics, "teams", err)
			return nil
		}
		in.Teams = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.Placement.List(ctx, repository.PlacementFilter{
			Scope: scope, TeamID: q.TeamID, From: period.Start, To: period.End,
		})
		if err != nil {
			readFailed(s.logger, s.metrics, "placements", err)
			return nil
		}
		in.Placements = rows
		return nil
	})
	g.Go(func() error {
		// interview_at is a timestamp; the upper bound covers all of Dec 31
		rows, err := s.repo.Interview.List(ctx, repository.InterviewFilter{
			Scope: scope, TeamID: q.TeamID, From: period.Start, To: period.End.AddDate(0, 0, 1).Add(-time.Nanosecond),
		})
		if err != nil {
			readFailed(s.logger, s.metrics, "interviews", err)
			return nil
		}
		in.Interviews = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.DailyRecord.List(ctx, repository.RecordFilter{
			Scope: scope, TeamID: q.TeamID, From: period.Start, To: period.End,
		})
		if err != nil {
			readFailed(s.logger, s.metrics, "daily_records", err)
			return nil
		}
		in.Records = rows
		return nil
	})
	_ = g.Wait()

	return year, analytics.YearlyGrid(in)
}

func bucketValue(b analytics.MonthBucket, metric string) interface{} {
	switch metric {
	case "Placements":
		return b.Placements
	case "Interviews":
		return b.Interviews
	case "Job Orders":
		return b.JobOrders
	}
	return b.Revenue.InexactFloat64()
}

// cellName zero-based column, one-based row
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
