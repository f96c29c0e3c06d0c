package wire

import (
	"sith-voyages/internal/adaptor"
	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/middleware"
	"sith-voyages/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/user/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config.Session.CookieName, log))

		r.Get("/", bookingHandler.ListBookings)
		r.Post("/reload", bookingHandler.ReloadBookings)

		r.Get("/selection", bookingHandler.GetSelection)
		r.Put("/selection", bookingHandler.SelectBooking)
		r.Delete("/selection", bookingHandler.ClearSelection)

		r.Get("/{id}", bookingHandler.GetBooking)
	})
}
