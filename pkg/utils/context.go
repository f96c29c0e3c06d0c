package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	SessionUserKey contextKey = "session_user"
	TokenKey       contextKey = "token"
)

// SessionUser is what the session provider exposes about the signed-in traveler.
type SessionUser struct {
	ID       uuid.UUID
	Username string
	FullName string
	Email    string
	Role     string
}

func (u SessionUser) DisplayName() string {
	return DisplayName(u.FullName, u.Email)
}

func SetSessionUserContext(ctx context.Context, user SessionUser) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID.String())
	ctx = context.WithValue(ctx, SessionUserKey, user)
	return ctx
}

func GetSessionUserFromContext(ctx context.Context) (SessionUser, bool) {
	user, ok := ctx.Value(SessionUserKey).(SessionUser)
	if !ok || user.ID == uuid.Nil {
		return SessionUser{}, false
	}
	return user, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDStr, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
