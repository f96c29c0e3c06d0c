package repository

import (
	"sith-voyages/pkg/database"
	"sith-voyages/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	SavedBooking SavedBookingRepository
}

func NewRepository(db database.PgxIface, kv KeyValueStore, config *utils.Config, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		SavedBooking: NewSavedBookingRepository(kv, config.Bookings.KeyPrefix, log),
	}
}
