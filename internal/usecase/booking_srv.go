package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/internal/data/repository"
	"sith-voyages/internal/dto/response"
	"sith-voyages/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	ListBookings(ctx context.Context, user utils.SessionUser, status string) (*response.BookingListResponse, error)
	GetBooking(ctx context.Context, user utils.SessionUser, id string) (*response.BookingView, error)
	ReloadBookings(ctx context.Context, user utils.SessionUser) (bool, error)

	SelectForDetail(ctx context.Context, user utils.SessionUser, id string) (*response.BookingView, error)
	GetDetail(ctx context.Context, user utils.SessionUser) (*response.BookingView, error)
	ClearDetail(ctx context.Context, user utils.SessionUser) error

	// Forget drops the traveler's board so the next session loads afresh.
	Forget(userID uuid.UUID)
}

type bookingService struct {
	savedRepo repository.SavedBookingRepository
	config    utils.BookingsConfig
	log       *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	boards map[uuid.UUID]*BookingBoard
}

func NewBookingService(savedRepo repository.SavedBookingRepository, config utils.BookingsConfig, log *zap.Logger) BookingService {
	return newBookingService(savedRepo, config, log, time.Now)
}

func newBookingService(savedRepo repository.SavedBookingRepository, config utils.BookingsConfig, log *zap.Logger, now func() time.Time) *bookingService {
	return &bookingService{
		savedRepo: savedRepo,
		config:    config,
		log:       log.With(zap.String("service", "booking")),
		now:       now,
		boards:    make(map[uuid.UUID]*BookingBoard),
	}
}

func (s *bookingService) ListBookings(ctx context.Context, user utils.SessionUser, status string) (*response.BookingListResponse, error) {
	key, err := ParseFilterKey(status)
	if err != nil {
		return nil, err
	}

	snapshot := s.board(user).Snapshot()

	resp := &response.BookingListResponse{
		State:    string(snapshot.State),
		Traveler: user.DisplayName(),
		Filter:   string(key),
		Reason:   snapshot.Reason,
	}
	if snapshot.State != LoadStateReady {
		return resp, nil
	}

	now := s.now()
	resp.Bookings = response.NewBookingViews(FilterBookings(snapshot.Bookings, key, now), now)
	resp.Count = len(resp.Bookings)
	return resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, user utils.SessionUser, id string) (*response.BookingView, error) {
	booking, err := s.board(user).Find(id)
	if err != nil {
		return nil, err
	}
	return s.view(booking), nil
}

// ReloadBookings reports whether a new load was started.
func (s *bookingService) ReloadBookings(ctx context.Context, user utils.SessionUser) (bool, error) {
	board, created := s.boardOrCreate(user)
	if created {
		return true, nil
	}

	started := board.Retry()
	if started {
		s.log.Info("Bookings reload started", zap.String("user_id", user.ID.String()))
	}
	return started, nil
}

func (s *bookingService) SelectForDetail(ctx context.Context, user utils.SessionUser, id string) (*response.BookingView, error) {
	booking, err := s.board(user).Select(id)
	if err != nil {
		return nil, err
	}
	return s.view(booking), nil
}

func (s *bookingService) GetDetail(ctx context.Context, user utils.SessionUser) (*response.BookingView, error) {
	booking, err := s.board(user).Selected()
	if err != nil {
		return nil, err
	}
	return s.view(booking), nil
}

func (s *bookingService) ClearDetail(ctx context.Context, user utils.SessionUser) error {
	s.board(user).ClearSelection()
	return nil
}

func (s *bookingService) Forget(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[userID]; ok {
		delete(s.boards, userID)
		s.log.Info("Bookings board dropped", zap.String("user_id", userID.String()))
	}
}

func (s *bookingService) view(booking entity.Booking) *response.BookingView {
	view := response.NewBookingView(booking, s.now())
	return &view
}

func (s *bookingService) board(user utils.SessionUser) *BookingBoard {
	board, _ := s.boardOrCreate(user)
	return board
}

// boardOrCreate returns the traveler's board, starting its first load when
// it does not exist yet.
func (s *bookingService) boardOrCreate(user utils.SessionUser) (*BookingBoard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if board, ok := s.boards[user.ID]; ok {
		return board, false
	}

	log := s.log.With(zap.String("user_id", user.ID.String()))
	board := NewBookingBoard(s.loader(user, log), s.config.LoadDelay, s.config.LoadTimeout, log)
	s.boards[user.ID] = board
	return board, true
}

// loader merges the seed journeys with whatever the traveler has saved. A
// rejected saved entry is dropped whole and only the seed set is shown.
func (s *bookingService) loader(user utils.SessionUser, log *zap.Logger) BookingLoader {
	return func(ctx context.Context) ([]entity.Booking, error) {
		bookings := SeedBookings(user)

		saved, err := s.savedRepo.FindByUserID(ctx, user.ID)
		if errors.Is(err, repository.ErrSavedBookingsRejected) {
			log.Warn("Ignoring saved bookings", zap.Error(err))
			return bookings, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load saved bookings: %w", err)
		}

		return append(bookings, saved...), nil
	}
}
