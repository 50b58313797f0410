package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/dto/response"
	"github.com/kweeen04/EandP/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, req *request.ResetPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ConfirmResetPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mailer *utils.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mailer *utils.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mailer: mailer,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, ErrInternal("failed to check email", err)
	}
	if existing != nil {
		return nil, ErrConflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, ErrInternal("failed to process password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, ErrInternal("failed to create account", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, ErrValidation("invalid credentials")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrValidation("invalid credentials")
	}

	if user.IsBlocked {
		s.log.Warn("Blocked user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrForbidden("account is blocked")
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, ErrInternal("failed to create session", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.LoginResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return ErrValidation("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return ErrInternal("failed to logout", err)
	}

	return nil
}

// RequestPasswordReset always reports success to the caller so the endpoint
// cannot be used to probe which emails are registered.
func (s *authService) RequestPasswordReset(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return ErrValidation(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", req.Email))
		return ErrInternal("failed to process reset request", err)
	}
	if user == nil {
		s.log.Warn("Password reset requested for unknown email", zap.String("email", req.Email))
		return nil
	}

	token := uuid.New().String()
	expires := time.Now().Add(time.Duration(s.config.Session.ResetTokenMinute) * time.Minute)

	user.ResetToken = &token
	user.ResetTokenExpires = &expires
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store reset token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return ErrInternal("failed to process reset request", err)
	}

	go s.sendResetMail(user.Email, token)

	s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ConfirmResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return ErrValidation(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByResetToken(ctx, req.Token)
	if err != nil {
		s.log.Error("Failed to find user by reset token", zap.Error(err))
		return ErrInternal("failed to reset password", err)
	}
	if user == nil || user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
		return ErrValidation("invalid or expired reset token")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return ErrInternal("failed to process password", err)
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpires = nil
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return ErrInternal("failed to reset password", err)
	}

	// A reset invalidates every open session for the account.
	if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke sessions after reset",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) sendResetMail(email, token string) {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token: %s\n\nIf you did not request this, ignore this mail.",
		token,
	)
	if err := s.mailer.Send(email, "Password reset", body); err != nil {
		s.log.Error("Failed to send reset mail", zap.Error(err), zap.String("email", email))
	}
}
