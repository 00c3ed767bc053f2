package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/config"
	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// ── interview module errors ──

var (
	ErrInterviewNotFound      = errors.New("interview not found")
	ErrInvalidInterviewStatus = errors.New("unknown interview status")
)

// interviewLength calendar slot booked for every interview
const interviewLength = time.Hour

// InterviewService the FTI board
type InterviewService interface {
	List(ctx context.Context, actor analytics.Actor, req *dto.InterviewListRequest) (*dto.InterviewListResponse, error)
	Create(ctx context.Context, actor analytics.Actor, req *dto.CreateInterviewRequest) (*dto.InterviewResponse, error)
	UpdateStatus(ctx context.Context, actor analytics.Actor, id, status string) (*dto.InterviewResponse, error)
	Calendar(ctx context.Context, actor analytics.Actor) ([]byte, string, error)
}

type interviewService struct {
	cfg     *config.Config
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewInterviewService creates an InterviewService
func NewInterviewService(cfg *config.Config, repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) InterviewService {
	return &interviewService{cfg: cfg, repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *interviewService) List(ctx context.Context, actor analytics.Actor, req *dto.InterviewListRequest) (*dto.InterviewListResponse, error) {
	// counts cover the whole board, the status filter only narrows the items
	rows, err := s.repo.Interview.List(ctx, repository.InterviewFilter{
		Scope:  analytics.VisibleScope(actor),
		TeamID: req.TeamID,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "interviews", err)
		rows = nil
	}

	resp := &dto.InterviewListResponse{
		Items:  make([]dto.InterviewResponse, 0, len(rows)),
		Counts: make(map[string]int, len(model.InterviewStatuses)),
		Total:  len(rows),
	}
	for _, st := range model.InterviewStatuses {
		resp.Counts[st] = 0
	}
	for i := range rows {
		resp.Counts[rows[i].Status]++
		if req.Status != "" && rows[i].Status != req.Status {
			continue
		}
		resp.Items = append(resp.Items, toInterviewResponse(&rows[i]))
	}
	return resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *interviewService) Create(ctx context.Context, actor analytics.Actor, req *dto.CreateInterviewRequest) (*dto.InterviewResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.InterviewSubmitted
	}
	if !model.IsInterviewStatus(status) {
		return nil, ErrInvalidInterviewStatus
	}

	iv := &model.InterviewSchedule{
		CandidateName: req.CandidateName,
		Position:      req.Position,
		Company:       req.Company,
		InterviewAt:   req.InterviewAt,
		Status:        status,
		RecruiterID:   actor.ID,
		TeamID:        actor.TeamID,
		Notes:         req.Notes,
	}
	iv.CreatedBy = &actor.ID
	iv.UpdatedBy = &actor.ID

	if err := s.repo.Interview.Create(ctx, iv); err != nil {
		s.logger.Error("create interview failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Interview.GetByID(ctx, iv.InterviewID)
	if err != nil {
		s.logger.Warn("reload interview failed", zap.Error(err))
		created = iv
	}
	resp := toInterviewResponse(created)
	return &resp, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *interviewService) UpdateStatus(ctx context.Context, actor analytics.Actor, id, status string) (*dto.InterviewResponse, error) {
	if !model.IsInterviewStatus(status) {
		return nil, ErrInvalidInterviewStatus
	}
	iv, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Interview.UpdateStatus(ctx, id, status, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		s.logger.Error("update interview status failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	iv.Status = status
	iv.UpdatedAt = s.now()

	resp := toInterviewResponse(iv)
	return &resp, nil
}

// ────────────────────── Calendar ──────────────────────

// Calendar renders every visible interview that has a time as an iCalendar feed.
func (s *interviewService) Calendar(ctx context.Context, actor analytics.Actor) ([]byte, string, error) {
	rows, err := s.repo.Interview.List(ctx, repository.InterviewFilter{
		Scope: analytics.VisibleScope(actor),
	})
	if err != nil {
		s.logger.Error("list interviews for calendar failed", zap.Error(err))
		return nil, "", err
	}

	now := s.now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//recruit-tracker//interviews//EN")
	cal.SetXWRCalName(s.cfg.Server.CalendarName)

	for i := range rows {
		iv := &rows[i]
		if iv.InterviewAt == nil {
			continue
		}
		start := iv.InterviewAt.UTC()

		event := cal.AddEvent(iv.InterviewID + "@recruit-tracker")
		event.SetDtStampTime(now)
		event.SetCreatedTime(iv.CreatedAt.UTC())
		event.SetModifiedAt(iv.UpdatedAt.UTC())
		event.SetStartAt(start)
		event.SetEndAt(start.Add(interviewLength))
		event.SetSummary(fmt.Sprintf("%s - %s (%s)", iv.CandidateName, iv.Position, iv.Company))
		event.SetDescription(interviewDescription(iv))
		if iv.Status == model.InterviewSubmitted {
			event.SetStatus(ics.ObjectStatusTentative)
		} else {
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	filename := fmt.Sprintf("interviews_%s.ics", now.Format("20060102"))
	return []byte(cal.Serialize()), filename, nil
}

// ── helpers ──

func (s *interviewService) load(ctx context.Context, actor analytics.Actor, id string) (*model.InterviewSchedule, error) {
	iv, err := s.repo.Interview.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		s.logger.Error("load interview failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !analytics.VisibleScope(actor).Allows(iv) {
		return nil, ErrInterviewNotFound
	}
	return iv, nil
}

func interviewDescription(iv *model.InterviewSchedule) string {
	var b strings.Builder
	b.WriteString("Status: " + iv.Status)
	if iv.Recruiter != nil {
		b.WriteString("\nRecruiter: " + iv.Recruiter.FullName())
	}
	if iv.Team != nil {
		b.WriteString("\nTeam: " + iv.Team.Name)
	}
	if iv.Notes != "" {
		b.WriteString("\n" + iv.Notes)
	}
	return b.String()
}

func toInterviewResponse(iv *model.InterviewSchedule) dto.InterviewResponse {
	return dto.InterviewResponse{
		ID:            iv.InterviewID,
		CandidateName: iv.CandidateName,
		Position:      iv.Position,
		Company:       iv.Company,
		InterviewAt:   formatTimePtr(iv.InterviewAt),
		Status:        iv.Status,
		RecruiterID:   iv.RecruiterID,
		Recruiter:     toUserBrief(iv.Recruiter),
		TeamID:        iv.TeamID,
		Team:          toTeamBrief(iv.Team),
		Notes:         iv.Notes,
		CreatedAt:     formatTime(iv.CreatedAt),
		UpdatedAt:     formatTime(iv.UpdatedAt),
	}
}
