package usecase

import (
	"fmt"
	"slices"
	"time"

	"sith-voyages/internal/data/entity"
)

// FilterKey is the criterion a traveler picks to narrow the bookings list.
type FilterKey string

const (
	FilterAll       FilterKey = "all"
	FilterUpcoming  FilterKey = "upcoming"
	FilterPast      FilterKey = "past"
	FilterCompleted FilterKey = "completed"
	FilterCancelled FilterKey = "cancelled"
)

// ParseFilterKey maps a query value onto a FilterKey; empty means all.
func ParseFilterKey(raw string) (FilterKey, error) {
	switch key := FilterKey(raw); key {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUpcoming, FilterPast, FilterCompleted, FilterCancelled:
		return key, nil
	default:
		return "", fmt.Errorf("%w %q: must be one of all, upcoming, past, completed, cancelled", ErrInvalidFilter, raw)
	}
}

// FilterBookings keeps input order. The upcoming and past keys OR a date test
// with the stored status, so a stale "upcoming" record that has already
// checked out still shows under upcoming.
func FilterBookings(bookings []entity.Booking, key FilterKey, now time.Time) []entity.Booking {
	if key == FilterAll {
		return slices.Clone(bookings)
	}

	var keep func(entity.Booking) bool
	switch key {
	case FilterUpcoming:
		keep = func(b entity.Booking) bool {
			return b.CheckInDate.After(now) || b.Status == entity.StoredStatusUpcoming
		}
	case FilterPast:
		keep = func(b entity.Booking) bool {
			return b.CheckOutDate.Before(now) || b.Status == entity.StoredStatusCompleted
		}
	default:
		keep = func(b entity.Booking) bool {
			return b.Status == entity.StoredStatus(key)
		}
	}

	filtered := make([]entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if keep(b) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
