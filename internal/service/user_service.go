package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
)

// ── user module errors ──

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidRole        = errors.New("unknown role")
	ErrUserSelfRoleChange = errors.New("cannot change your own role")
	ErrUserSelfDeactivate = errors.New("cannot deactivate yourself")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// UserService account management
type UserService interface {
	List(ctx context.Context, actor analytics.Actor, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, actor analytics.Actor, id string) (*dto.UserResponse, error)
	Create(ctx context.Context, actor analytics.Actor, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, actor analytics.Actor, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	SetActive(ctx context.Context, actor analytics.Actor, id string, active bool) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, actor analytics.Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, actor analytics.Actor, req *dto.ChangePasswordRequest) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, actor analytics.Actor, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filter := repository.UserFilter{
		TeamID:          req.TeamID,
		Role:            req.Role,
		Keyword:         req.Keyword,
		IncludeInactive: req.IncludeInactive,
	}

	// managers are pinned to their own team
	scope := analytics.VisibleScope(actor)
	switch scope.Kind {
	case analytics.ScopeAll:
	case analytics.ScopeTeam:
		if req.TeamID != "" && req.TeamID != scope.TeamID {
			return []dto.UserResponse{}, 0, nil
		}
		filter.TeamID = scope.TeamID
	default:
		return nil, 0, ErrForbidden
	}

	users, total, err := s.repo.User.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, actor analytics.Actor, id string) (*dto.UserResponse, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.UserID != actor.ID && !analytics.VisibleScope(actor).AllowsTeam(user.TeamRef()) {
		return nil, ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, actor analytics.Actor, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}
	if _, ok := analytics.ParseRole(req.Role); !ok {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check email failed", zap.Error(err))
		return nil, err
	}

	teamID, err := s.resolveTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         req.Role,
		TeamID:       teamID,
		IsActive:     true,
	}
	user.CreatedBy = &actor.ID
	user.UpdatedBy = &actor.ID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	created, err := s.load(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(created)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, actor analytics.Actor, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil && *req.Role != user.Role {
		if _, ok := analytics.ParseRole(*req.Role); !ok {
			return nil, ErrInvalidRole
		}
		if user.UserID == actor.ID {
			return nil, ErrUserSelfRoleChange
		}
		user.Role = *req.Role
	}
	if req.TeamID != nil {
		teamID, err := s.resolveTeam(ctx, req.TeamID)
		if err != nil {
			return nil, err
		}
		user.TeamID = teamID
	}
	if req.IsActive != nil {
		if !*req.IsActive && user.UserID == actor.ID {
			return nil, ErrUserSelfDeactivate
		}
		user.IsActive = *req.IsActive
	}

	return s.save(ctx, actor, user)
}

// ────────────────────── SetActive ──────────────────────

func (s *userService) SetActive(ctx context.Context, actor analytics.Actor, id string, active bool) (*dto.UserResponse, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}
	if !active && id == actor.ID {
		return nil, ErrUserSelfDeactivate
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	return s.save(ctx, actor, user)
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, actor analytics.Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.load(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	return s.save(ctx, actor, user)
}

// ────────────────────── ChangePassword ──────────────────────

func (s *userService) ChangePassword(ctx context.Context, actor analytics.Actor, req *dto.ChangePasswordRequest) error {
	user, err := s.load(ctx, actor.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)
	_, err = s.save(ctx, actor, user)
	return err
}

// ── helpers ──

func (s *userService) load(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) save(ctx context.Context, actor analytics.Actor, user *model.User) (*dto.UserResponse, error) {
	user.UpdatedBy = &actor.ID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update user failed", zap.String("id", user.UserID), zap.Error(err))
		return nil, err
	}
	updated, err := s.load(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(updated)
	return &resp, nil
}

// resolveTeam nil or "" means no team; anything else must exist.
func (s *userService) resolveTeam(ctx context.Context, teamID *string) (*string, error) {
	if teamID == nil || *teamID == "" {
		return nil, nil
	}
	if _, err := s.repo.Team.GetByID(ctx, *teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("load team failed", zap.Error(err))
		return nil, err
	}
	id := *teamID
	return &id, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.UserID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Role:        u.Role,
		TeamID:      u.TeamID,
		Team:        toTeamBrief(u.Team),
		IsActive:    u.IsActive,
		LastLoginAt: formatTimePtr(u.LastLoginAt),
		CreatedAt:   formatTime(u.CreatedAt),
	}
}
