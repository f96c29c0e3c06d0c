package wire

import (
	"sith-voyages/internal/adaptor"
	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/middleware"
	"sith-voyages/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(middleware.AuthSession(repo.Session, repo.User, config.Session.CookieName, log)).
		Get("/api/user/profile", userHandler.GetProfile)
}
