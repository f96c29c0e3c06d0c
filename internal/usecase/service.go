package usecase

import (
	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	booking := NewBookingService(repo.SavedBooking, config.Bookings, log)

	return &Service{
		Auth:    NewAuthService(repo, config, log, booking.Forget),
		User:    NewUserService(repo.User, log),
		Booking: booking,
	}
}
