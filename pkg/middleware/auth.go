package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errMissingToken   = errors.New("missing session token")
	errTokenFormat    = errors.New("invalid token format, use: Bearer <token>")
	errSessionExpired = errors.New("invalid or expired session")
)

// AuthSession rejects API requests without a live session with 401.
func AuthSession(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	cookieName string,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, sessionRepo, userRepo, cookieName)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(ctx))
			case isAuthFailure(err):
				logger.Warn("Unauthenticated request", zap.String("path", r.URL.Path), zap.Error(err))
				utils.ResponseUnauthorized(w, err.Error())
			default:
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
			}
		})
	}
}

// RequireSessionOrRedirect sends visitors without a live session to redirectTo.
func RequireSessionOrRedirect(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	cookieName string,
	redirectTo string,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, sessionRepo, userRepo, cookieName)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(ctx))
			case isAuthFailure(err):
				http.Redirect(w, r, redirectTo, http.StatusFound)
			default:
				logger.Error("Failed to validate session", zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		})
	}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, errMissingToken) || errors.Is(err, errTokenFormat) || errors.Is(err, errSessionExpired)
}

func authenticate(
	r *http.Request,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	cookieName string,
) (context.Context, error) {
	token, err := extractToken(r, cookieName)
	if err != nil {
		return nil, err
	}

	session, err := sessionRepo.FindValidSession(r.Context(), token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil || !session.Active(time.Now()) {
		return nil, errSessionExpired
	}

	user, err := userRepo.FindByID(r.Context(), session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, errSessionExpired
	}

	sessionUser := utils.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
	if user.FullName != nil {
		sessionUser.FullName = *user.FullName
	}

	ctx := utils.SetSessionUserContext(r.Context(), sessionUser)
	return utils.SetTokenContext(ctx, token), nil
}

// extractToken prefers the Authorization header and falls back to the cookie.
func extractToken(r *http.Request, cookieName string) (string, error) {
	var token string

	if header := r.Header.Get("Authorization"); header != "" {
		scheme, value, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return "", errTokenFormat
		}
		token = strings.TrimSpace(value)
	} else if cookie, err := r.Cookie(cookieName); err == nil {
		token = cookie.Value
	}

	if token == "" {
		return "", errMissingToken
	}
	if _, err := uuid.Parse(token); err != nil {
		return "", errTokenFormat
	}
	return token, nil
}
