package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	pkgerrors "recruit-tracker/pkg/errors"
)

// ── team module errors ──

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrTeamNameExists  = errors.New("team name already exists")
	ErrTeamHasMembers  = errors.New("team still has members")
	ErrManagerNotFound = errors.New("manager user not found")
)

// TeamService team management
type TeamService interface {
	List(ctx context.Context, actor analytics.Actor) ([]dto.TeamResponse, error)
	GetByID(ctx context.Context, actor analytics.Actor, id string) (*dto.TeamResponse, error)
	Create(ctx context.Context, actor analytics.Actor, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	Update(ctx context.Context, actor analytics.Actor, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	Delete(ctx context.Context, actor analytics.Actor, id string) error
	Members(ctx context.Context, actor analytics.Actor, id string) ([]dto.UserResponse, error)
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService creates a TeamService
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *teamService) List(ctx context.Context, actor analytics.Actor) ([]dto.TeamResponse, error) {
	var teams []model.Team
	var err error

	if actor.IsAdmin() {
		teams, err = s.repo.Team.List(ctx)
	} else if actor.Active && actor.TeamID != "" {
		teams, err = s.repo.Team.ListByIDs(ctx, []string{actor.TeamID})
	}
	if err != nil {
		s.logger.Error("list teams failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, s.toTeamResponse(ctx, &teams[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *teamService) GetByID(ctx context.Context, actor analytics.Actor, id string) (*dto.TeamResponse, error) {
	if !s.canSee(actor, id) {
		return nil, ErrTeamNotFound
	}
	team, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toTeamResponse(ctx, team)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *teamService) Create(ctx context.Context, actor analytics.Actor, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if !actor.CanManageTeams() {
		return nil, ErrForbidden
	}
	if err := s.checkName(ctx, req.Name, ""); err != nil {
		return nil, err
	}
	managers, err := s.checkManagers(ctx, req.ManagerIDs)
	if err != nil {
		return nil, err
	}

	team := &model.Team{
		Name:       req.Name,
		ManagerIDs: managers,
	}
	team.CreatedBy = &actor.ID
	team.UpdatedBy = &actor.ID

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("create team failed", zap.Error(err))
		return nil, err
	}

	resp := s.toTeamResponse(ctx, team)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *teamService) Update(ctx context.Context, actor analytics.Actor, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	if !actor.CanManageTeams() {
		return nil, ErrForbidden
	}
	team, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != 0 && req.Version != team.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	if req.Name != nil && *req.Name != team.Name {
		if err := s.checkName(ctx, *req.Name, team.TeamID); err != nil {
			return nil, err
		}
		team.Name = *req.Name
	}
	if req.ManagerIDs != nil {
		managers, err := s.checkManagers(ctx, req.ManagerIDs)
		if err != nil {
			return nil, err
		}
		team.ManagerIDs = managers
	}
	team.UpdatedBy = &actor.ID

	if err := s.repo.Team.Update(ctx, team); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("update team failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := s.toTeamResponse(ctx, team)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *teamService) Delete(ctx context.Context, actor analytics.Actor, id string) error {
	if !actor.CanManageTeams() {
		return ErrForbidden
	}
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.User.CountByTeam(ctx, id)
	if err != nil {
		s.logger.Error("count team members failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrTeamHasMembers
	}

	if err := s.repo.Team.Delete(ctx, id, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		s.logger.Error("delete team failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Members ──────────────────────

func (s *teamService) Members(ctx context.Context, actor analytics.Actor, id string) ([]dto.UserResponse, error) {
	if !s.canSee(actor, id) {
		return nil, ErrTeamNotFound
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	users, err := s.repo.User.ListByTeam(ctx, id)
	if err != nil {
		s.logger.Error("list team members failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ── helpers ──

// canSee admins see every team, everyone else only their own
func (s *teamService) canSee(actor analytics.Actor, teamID string) bool {
	return actor.IsAdmin() || (actor.Active && actor.TeamID != "" && actor.TeamID == teamID)
}

func (s *teamService) load(ctx context.Context, id string) (*model.Team, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("load team failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return team, nil
}

func (s *teamService) checkName(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.Team.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("check team name failed", zap.Error(err))
		return err
	}
	if existing.TeamID != selfID {
		return ErrTeamNameExists
	}
	return nil
}

// checkManagers dedups the ids and verifies every one is a known user.
func (s *teamService) checkManagers(ctx context.Context, ids []string) (model.UUIDArray, error) {
	managers := model.UUIDArray(ids).Dedup()
	if len(managers) == 0 {
		return managers, nil
	}
	users, err := s.repo.User.ListByIDs(ctx, managers)
	if err != nil {
		s.logger.Error("load managers failed", zap.Error(err))
		return nil, err
	}
	if len(users) != len(managers) {
		return nil, ErrManagerNotFound
	}
	return managers, nil
}

func (s *teamService) toTeamResponse(ctx context.Context, team *model.Team) dto.TeamResponse {
	resp := dto.TeamResponse{
		ID:         team.TeamID,
		Name:       team.Name,
		ManagerIDs: []string(team.ManagerIDs),
		Managers:   []dto.UserBrief{},
		Version:    team.Version,
		CreatedAt:  formatTime(team.CreatedAt),
	}
	if resp.ManagerIDs == nil {
		resp.ManagerIDs = []string{}
	}

	if len(team.ManagerIDs) > 0 {
		users, err := s.repo.User.ListByIDs(ctx, team.ManagerIDs)
		if err != nil {
			s.logger.Warn("load managers failed, omitting", zap.String("team_id", team.TeamID), zap.Error(err))
		}
		byID := make(map[string]*model.User, len(users))
		for i := range users {
			byID[users[i].UserID] = &users[i]
		}
		for _, id := range team.ManagerIDs {
			if u, ok := byID[id]; ok {
				resp.Managers = append(resp.Managers, *toUserBrief(u))
			}
		}
	}

	count, err := s.repo.User.CountByTeam(ctx, team.TeamID)
	if err != nil {
		s.logger.Warn("count members failed, reporting 0", zap.String("team_id", team.TeamID), zap.Error(err))
	}
	resp.MemberCount = count
	return resp
}
