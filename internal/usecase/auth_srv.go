package usecase

import (
	"context"
	"fmt"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/internal/data/repository"
	"sith-voyages/internal/dto/request"
	"sith-voyages/internal/dto/response"
	"sith-voyages/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientMeta is recorded on the session row for auditing.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

// SessionReset drops per-session state for a traveler. It runs on login and logout.
type SessionReset func(userID uuid.UUID)

type authService struct {
	repo         *repository.Repository
	config       *utils.Config
	log          *zap.Logger
	now          func() time.Time
	resetSession SessionReset
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	resetSession SessionReset,
) AuthService {
	if resetSession == nil {
		resetSession = func(uuid.UUID) {}
	}
	return &authService{
		repo:         repo,
		config:       config,
		log:          log.With(zap.String("service", "auth")),
		now:          time.Now,
		resetSession: resetSession,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// the identifier may be an e-mail or a username
	user, err := s.repo.User.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("identifier", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("login: %w", err)
	}

	// a new session never inherits the previous session's bookings
	s.resetSession(user.ID)

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return s.convertAuthResponse(user, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return ErrInvalidToken
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID.String())
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	if session != nil {
		s.resetSession(session.UserID)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta ClientMeta) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) convertAuthResponse(user *entity.User, session *entity.Session) *response.AuthResponse {
	profile := convertUserResponse(user)

	return &response.AuthResponse{
		UserID:      profile.ID,
		Token:       session.Token.String(),
		ExpiresAt:   session.ExpiresAt,
		Email:       profile.Email,
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		Role:        profile.Role,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
