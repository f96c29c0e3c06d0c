package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const SavedBookingsSchemaVersion = 1

// ErrSavedBookingsRejected marks a persisted entry that is unreadable or fails validation.
// Callers fall back to the seed set instead of surfacing it.
var ErrSavedBookingsRejected = errors.New("saved bookings rejected")

type savedBookingsEnvelope struct {
	Version  int              `json:"version"`
	Bookings []entity.Booking `json:"bookings"`
}

// KeyValueStore is the subset of the redis client the repository needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type SavedBookingRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error)
	Put(ctx context.Context, userID uuid.UUID, bookings []entity.Booking) error
}

type savedBookingRepository struct {
	kv        KeyValueStore
	keyPrefix string
	log       *zap.Logger
}

func NewSavedBookingRepository(kv KeyValueStore, keyPrefix string, log *zap.Logger) SavedBookingRepository {
	return &savedBookingRepository{
		kv:        kv,
		keyPrefix: keyPrefix,
		log:       log.With(zap.String("repository", "saved_booking")),
	}
}

func (r *savedBookingRepository) key(userID uuid.UUID) string {
	return r.keyPrefix + ":" + userID.String()
}

// FindByUserID returns nil, nil when nothing was saved for the user.
func (r *savedBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error) {
	raw, err := r.kv.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read saved bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("read saved bookings for %s: %w", userID.String(), err)
	}

	bookings, err := DecodeSavedBookings(raw)
	if err != nil {
		r.log.Warn("Saved bookings rejected",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("bytes", len(raw)),
		)
		return nil, err
	}

	return bookings, nil
}

func (r *savedBookingRepository) Put(ctx context.Context, userID uuid.UUID, bookings []entity.Booking) error {
	payload, err := EncodeSavedBookings(bookings)
	if err != nil {
		return err
	}

	if err := r.kv.Set(ctx, r.key(userID), payload, 0).Err(); err != nil {
		r.log.Error("Failed to write saved bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("write saved bookings for %s: %w", userID.String(), err)
	}

	r.log.Info("Saved bookings stored",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(bookings)),
	)
	return nil
}

// DecodeSavedBookings reads a v1 envelope or a legacy bare array. Any bad
// record rejects the whole payload.
func DecodeSavedBookings(raw []byte) ([]entity.Booking, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrSavedBookingsRejected)
	}

	var bookings []entity.Booking
	switch trimmed[0] {
	case '[':
		if err := decodeStrict(trimmed, &bookings); err != nil {
			return nil, fmt.Errorf("%w: legacy list: %v", ErrSavedBookingsRejected, err)
		}
	case '{':
		var envelope savedBookingsEnvelope
		if err := decodeStrict(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: envelope: %v", ErrSavedBookingsRejected, err)
		}
		if envelope.Version != SavedBookingsSchemaVersion {
			return nil, fmt.Errorf("%w: unsupported schema version %d", ErrSavedBookingsRejected, envelope.Version)
		}
		bookings = envelope.Bookings
	default:
		return nil, fmt.Errorf("%w: unrecognised layout", ErrSavedBookingsRejected)
	}

	seen := make(map[string]struct{}, len(bookings))
	for i, booking := range bookings {
		if errs := utils.ValidateStruct(booking); len(errs) > 0 {
			return nil, fmt.Errorf("%w: record %d: %s", ErrSavedBookingsRejected, i, utils.FormatValidationErrors(errs))
		}
		if err := booking.CheckInvariants(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrSavedBookingsRejected, i, err)
		}
		if _, dup := seen[booking.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate booking id %s", ErrSavedBookingsRejected, booking.ID)
		}
		seen[booking.ID] = struct{}{}
	}

	return bookings, nil
}

func EncodeSavedBookings(bookings []entity.Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []entity.Booking{}
	}
	payload, err := json.Marshal(savedBookingsEnvelope{
		Version:  SavedBookingsSchemaVersion,
		Bookings: bookings,
	})
	if err != nil {
		return nil, fmt.Errorf("encode saved bookings: %w", err)
	}
	return payload, nil
}

func decodeStrict(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after payload")
	}
	return nil
}
