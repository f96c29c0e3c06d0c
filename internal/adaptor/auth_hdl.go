package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"sith-voyages/internal/dto/request"
	"sith-voyages/internal/usecase"
	"sith-voyages/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service    usecase.AuthService
	cookieName string
	log        *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookieName string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookieName: cookieName,
		log:        log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	meta := usecase.ClientMeta{UserAgent: r.UserAgent(), IPAddress: r.RemoteAddr}
	response, err := h.service.Login(r.Context(), &req, meta)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	// browsers reach the HTML pages through the cookie
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    response.Token,
		Path:     "/",
		Expires:  response.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "logout")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	utils.ResponseSuccess(w, "Logout successful", nil)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidToken):
		h.log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrAccountInactive):
		h.log.Warn(operation+" failed - account deactivated", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
