package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// ── pipeline errors ──

var (
	ErrDealNotFound              = errors.New("deal not found")
	ErrDealStatusDerived         = errors.New("overdue is derived from the payment due date and cannot be set")
	ErrInvalidDealStatus         = errors.New("unknown deal status")
	ErrInvalidDealClassification = errors.New("unknown deal classification")
	ErrInvalidCandidateSource    = errors.New("unknown candidate source")
	ErrNegativeAmount            = errors.New("amount must not be negative")
)

// DealService the payment pipeline
type DealService interface {
	List(ctx context.Context, actor analytics.Actor, req *dto.DealListRequest) (*dto.DealListResponse, error)
	Create(ctx context.Context, actor analytics.Actor, req *dto.CreateDealRequest) (*dto.DealResponse, error)
	UpdateStatus(ctx context.Context, actor analytics.Actor, id, status string) (*dto.DealResponse, error)
	Options() dto.DealOptions
}

type dealService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewDealService creates a DealService
func NewDealService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) DealService {
	return &dealService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *dealService) List(ctx context.Context, actor analytics.Actor, req *dto.DealListRequest) (*dto.DealListResponse, error) {
	deals, err := s.repo.Deal.List(ctx, repository.DealFilter{
		Scope:  analytics.VisibleScope(actor),
		TeamID: req.TeamID,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "deals", err)
		deals = nil
	}

	today := s.now()
	resp := &dto.DealListResponse{
		Items: make([]dto.DealResponse, 0, len(deals)),
		Totals: dto.DealTotals{
			Amount:   decimal.Zero,
			Pending:  decimal.Zero,
			Invoiced: decimal.Zero,
			Paid:     decimal.Zero,
			Overdue:  decimal.Zero,
		},
	}
	for i := range deals {
		d := toDealResponse(&deals[i], today)
		if req.Status != "" && d.Status != req.Status {
			continue
		}
		resp.Items = append(resp.Items, d)
		addDealTotal(&resp.Totals, d)
	}
	return resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *dealService) Create(ctx context.Context, actor analytics.Actor, req *dto.CreateDealRequest) (*dto.DealResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.DealPending
	}
	if err := checkWritableStatus(status); err != nil {
		return nil, err
	}
	if !model.IsDealClassification(req.Classification) {
		return nil, ErrInvalidDealClassification
	}
	if !model.IsCandidateSource(req.CandidateSource) {
		return nil, ErrInvalidCandidateSource
	}
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	invoiceDate, err := parseDatePtr(req.InvoiceDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDatePtr(req.PaymentDueDate)
	if err != nil {
		return nil, err
	}

	deal := &model.Deal{
		Company:         req.Company,
		JobTitle:        req.JobTitle,
		CandidateName:   req.CandidateName,
		Amount:          req.Amount,
		InvoiceNumber:   nonEmpty(req.InvoiceNumber),
		InvoiceDate:     invoiceDate,
		PaymentDueDate:  dueDate,
		Classification:  req.Classification,
		IsRetainer:      req.IsRetainer,
		CandidateSource: req.CandidateSource,
		Status:          status,
		RecruiterID:     actor.ID,
		TeamID:          actor.TeamID,
		Notes:           req.Notes,
	}
	deal.CreatedBy = &actor.ID
	deal.UpdatedBy = &actor.ID

	if err := s.repo.Deal.Create(ctx, deal); err != nil {
		s.logger.Error("create deal failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Deal.GetByID(ctx, deal.DealID)
	if err != nil {
		s.logger.Warn("reload deal failed", zap.Error(err))
		created = deal
	}
	resp := toDealResponse(created, s.now())
	return &resp, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *dealService) UpdateStatus(ctx context.Context, actor analytics.Actor, id, status string) (*dto.DealResponse, error) {
	if err := checkWritableStatus(status); err != nil {
		return nil, err
	}

	deal, err := s.repo.Deal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		s.logger.Error("load deal failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !analytics.VisibleScope(actor).Allows(deal) {
		return nil, ErrDealNotFound
	}

	if err := s.repo.Deal.UpdateStatus(ctx, id, status, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		s.logger.Error("update deal status failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	deal.Status = status

	resp := toDealResponse(deal, s.now())
	return &resp, nil
}

// ────────────────────── Options ──────────────────────

func (s *dealService) Options() dto.DealOptions {
	return dto.DealOptions{
		Classifications:  model.DealClassifications,
		CandidateSources: model.CandidateSources,
		Statuses:         []string{model.DealPending, model.DealInvoiced, model.DealPaid, model.DealOverdue},
	}
}

// ── helpers ──

func checkWritableStatus(status string) error {
	if status == model.DealOverdue {
		return ErrDealStatusDerived
	}
	if !model.IsWritableDealStatus(status) {
		return ErrInvalidDealStatus
	}
	return nil
}

func addDealTotal(t *dto.DealTotals, d dto.DealResponse) {
	t.Count++
	t.Amount = t.Amount.Add(d.Amount)
	switch d.Status {
	case model.DealPending:
		t.Pending = t.Pending.Add(d.Amount)
	case model.DealInvoiced:
		t.Invoiced = t.Invoiced.Add(d.Amount)
	case model.DealPaid:
		t.Paid = t.Paid.Add(d.Amount)
	case model.DealOverdue:
		t.Overdue = t.Overdue.Add(d.Amount)
	}
}

func toDealResponse(d *model.Deal, today time.Time) dto.DealResponse {
	status := d.EffectiveStatus(today)
	return dto.DealResponse{
		ID:              d.DealID,
		Company:         d.Company,
		JobTitle:        d.JobTitle,
		CandidateName:   d.CandidateName,
		Amount:          d.Amount,
		InvoiceNumber:   d.InvoiceNumber,
		InvoiceDate:     formatDatePtr(d.InvoiceDate),
		PaymentDueDate:  formatDatePtr(d.PaymentDueDate),
		Classification:  d.Classification,
		IsRetainer:      d.IsRetainer,
		CandidateSource: d.CandidateSource,
		Status:          status,
		IsOverdue:       status == model.DealOverdue,
		RecruiterID:     d.RecruiterID,
		Recruiter:       toUserBrief(d.Recruiter),
		TeamID:          d.TeamID,
		Team:            toTeamBrief(d.Team),
		Notes:           d.Notes,
		CreatedAt:       formatTime(d.CreatedAt),
	}
}
