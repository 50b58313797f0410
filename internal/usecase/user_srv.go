package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/dto/response"
	"github.com/kweeen04/EandP/pkg/utils"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	ListUsers(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, ErrInternal("failed to load profile", err)
	}
	if user == nil {
		return nil, ErrNotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if page.Page < 1 {
		page.Page = 1
	}

	total, err := s.repo.User.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, ErrInternal("failed to list users", err)
	}

	users, err := s.repo.User.FindAll(ctx, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, ErrInternal("failed to list users", err)
	}

	out := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, response.UserToResponse(u))
	}
	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, ErrNotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, ErrNotFound("user not found")
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", *req.Email))
			return nil, ErrInternal("failed to check email", err)
		}
		if existing != nil {
			return nil, ErrConflict("email already registered")
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, ErrInternal("failed to update user", err)
	}

	s.log.Info("User updated", zap.String("user_id", id.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, ErrNotFound("user not found")
	}

	user.IsBlocked = blocked
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update block status", zap.Error(err), zap.String("user_id", id.String()))
		return nil, ErrInternal("failed to update user", err)
	}

	// Blocking takes effect immediately, not at next login.
	if blocked {
		if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
			s.log.Warn("Failed to revoke sessions of blocked user",
				zap.Error(err), zap.String("user_id", id.String()))
		}
	}

	s.log.Info("User block status changed",
		zap.String("user_id", id.String()),
		zap.Bool("blocked", blocked))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return ErrInternal("failed to find user", err)
	}
	if user == nil {
		return ErrNotFound("user not found")
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return ErrInternal("failed to delete user", err)
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Warn("Failed to revoke sessions of deleted user",
			zap.Error(err), zap.String("user_id", id.String()))
	}

	s.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
