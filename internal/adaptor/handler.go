package adaptor

import (
	"sith-voyages/internal/usecase"
	"sith-voyages/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Booking *BookingHandler
	Page    *PageHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, config.Session.CookieName, log),
		User:    NewUserHandler(service.User, log),
		Booking: NewBookingHandler(service.Booking, log),
		Page:    NewPageHandler(service.Booking, config.Bookings.LoadDelay, log),
	}
}
