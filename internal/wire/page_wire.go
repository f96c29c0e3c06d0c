package wire

import (
	"sith-voyages/internal/adaptor"
	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/middleware"
	"sith-voyages/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wirePage mounts the HTML bookings page; visitors without a session go home.
func wirePage(
	r chi.Router,
	pageHandler *adaptor.PageHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSessionOrRedirect(repo.Session, repo.User, config.Session.CookieName, "/", log))

		r.Get("/bookings", pageHandler.Bookings)
		r.Post("/bookings/reload", pageHandler.Reload)
	})
}
