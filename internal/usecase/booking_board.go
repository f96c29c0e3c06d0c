package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"sith-voyages/internal/data/entity"

	"go.uber.org/zap"
)

type LoadState string

const (
	LoadStateLoading LoadState = "loading"
	LoadStateReady   LoadState = "ready"
	LoadStateFailed  LoadState = "load_failed"
)

// BookingLoader fetches the full list for one traveler.
type BookingLoader func(ctx context.Context) ([]entity.Booking, error)

// BoardSnapshot is a copy of a board's state; callers may keep it freely.
type BoardSnapshot struct {
	State      LoadState
	Bookings   []entity.Booking
	Reason     string
	SelectedID string
}

// BookingBoard holds one traveler's bookings for the lifetime of their
// session, together with the load state and the detail selection.
type BookingBoard struct {
	mu         sync.RWMutex
	state      LoadState
	bookings   []entity.Booking
	reason     string
	selectedID string
	done       chan struct{}

	load    BookingLoader
	delay   time.Duration
	timeout time.Duration
	log     *zap.Logger
}

// NewBookingBoard starts loading immediately.
func NewBookingBoard(load BookingLoader, delay, timeout time.Duration, log *zap.Logger) *BookingBoard {
	b := &BookingBoard{
		load:    load,
		delay:   delay,
		timeout: timeout,
		log:     log,
	}

	b.mu.Lock()
	b.startLocked()
	b.mu.Unlock()

	return b
}

func (b *BookingBoard) startLocked() {
	b.state = LoadStateLoading
	b.reason = ""
	b.done = make(chan struct{})
	go b.run(b.done)
}

// run is the one-shot load. It has no cancellation: once started it always
// ends in ready or load_failed.
func (b *BookingBoard) run(done chan struct{}) {
	defer close(done)

	if b.delay > 0 {
		time.Sleep(b.delay)
	}

	ctx := context.Background()
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	bookings, err := b.load(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.state = LoadStateFailed
		b.reason = err.Error()
		b.bookings = nil
		b.log.Error("Bookings load failed", zap.Error(err))
		return
	}

	b.state = LoadStateReady
	b.bookings = bookings
	b.log.Info("Bookings loaded", zap.Int("count", len(bookings)))
}

// Retry starts a new load unless one is already running.
func (b *BookingBoard) Retry() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == LoadStateLoading {
		return false
	}

	b.startLocked()
	return true
}

// Wait blocks until the current load finishes or ctx is done.
func (b *BookingBoard) Wait(ctx context.Context) error {
	b.mu.RLock()
	done := b.done
	b.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *BookingBoard) Snapshot() BoardSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BoardSnapshot{
		State:      b.state,
		Bookings:   slices.Clone(b.bookings),
		Reason:     b.reason,
		SelectedID: b.selectedID,
	}
}

// Find returns a copy of the booking with the given id.
func (b *BookingBoard) Find(id string) (entity.Booking, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.findLocked(id)
}

// Select remembers which booking the detail view shows. Only the id is kept.
func (b *BookingBoard) Select(id string) (entity.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	booking, err := b.findLocked(id)
	if err != nil {
		return entity.Booking{}, err
	}

	b.selectedID = booking.ID
	return booking, nil
}

func (b *BookingBoard) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selectedID = ""
}

// Selected resolves the current selection against the loaded list.
func (b *BookingBoard) Selected() (entity.Booking, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.selectedID == "" {
		return entity.Booking{}, ErrNoDetailSelected
	}

	booking, err := b.findLocked(b.selectedID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return entity.Booking{}, ErrNoDetailSelected
		}
		return entity.Booking{}, err
	}
	return booking, nil
}

func (b *BookingBoard) findLocked(id string) (entity.Booking, error) {
	switch b.state {
	case LoadStateLoading:
		return entity.Booking{}, ErrBookingsLoading
	case LoadStateFailed:
		return entity.Booking{}, fmt.Errorf("%w: %s", ErrBookingsLoadFailed, b.reason)
	}

	// first match wins when a saved record reuses a seed id
	for _, booking := range b.bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return entity.Booking{}, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
}
