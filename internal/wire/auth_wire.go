package wire

import (
	"sith-voyages/internal/adaptor"
	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/middleware"
	"sith-voyages/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Post("/api/login", authHandler.Login)

	r.With(middleware.AuthSession(repo.Session, repo.User, config.Session.CookieName, log)).
		Post("/api/logout", authHandler.Logout)
}
