package usecase

import (
	"errors"
	"testing"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/pkg/utils"
)

var afterSeeds = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func ids(bookings []entity.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func sameIDs(t *testing.T, got []entity.Booking, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestParseFilterKey(t *testing.T) {
	key, err := ParseFilterKey("")
	if err != nil || key != FilterAll {
		t.Fatalf("empty key: got %q, %v", key, err)
	}

	for _, raw := range []string{"all", "upcoming", "past", "completed", "cancelled"} {
		key, err := ParseFilterKey(raw)
		if err != nil || string(key) != raw {
			t.Fatalf("%s: got %q, %v", raw, key, err)
		}
	}

	if _, err := ParseFilterKey("active"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestFilterBookings_AllKeepsInput(t *testing.T) {
	seeds := SeedBookings(utils.SessionUser{})

	got := FilterBookings(seeds, FilterAll, afterSeeds)
	sameIDs(t, got, "SITH-2024-001", "SITH-2024-002", "SITH-2023-045")

	got[0].ID = "changed"
	if seeds[0].ID != "SITH-2024-001" {
		t.Fatal("filter result must not alias the input")
	}
}

func TestFilterBookings_UpcomingIncludesStaleStoredStatus(t *testing.T) {
	seeds := SeedBookings(utils.SessionUser{})

	// SITH-2024-001 checked out in March 2024 but is still stored as upcoming
	got := FilterBookings(seeds, FilterUpcoming, afterSeeds)
	sameIDs(t, got, "SITH-2024-001")

	if status := got[0].DisplayStatusAt(afterSeeds); status != entity.DisplayStatusCompleted {
		t.Fatalf("expected COMPLETED display status, got %s", status)
	}
}

func TestFilterBookings_PastUnion(t *testing.T) {
	seeds := SeedBookings(utils.SessionUser{})

	sameIDs(t, FilterBookings(seeds, FilterPast, afterSeeds), "SITH-2024-001", "SITH-2024-002", "SITH-2023-045")

	// before any stay started only the stored status can match
	early := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	sameIDs(t, FilterBookings(seeds, FilterPast, early), "SITH-2024-002", "SITH-2023-045")
	sameIDs(t, FilterBookings(seeds, FilterUpcoming, early), "SITH-2024-001", "SITH-2024-002", "SITH-2023-045")
}

func TestFilterBookings_ExactStatus(t *testing.T) {
	seeds := SeedBookings(utils.SessionUser{})
	seeds = append(seeds, entity.Booking{
		ID:           "SITH-2025-009",
		CheckInDate:  entity.NewDate(2026, 1, 1),
		CheckOutDate: entity.NewDate(2026, 1, 4),
		Status:       entity.StoredStatusCancelled,
	})

	sameIDs(t, FilterBookings(seeds, FilterCompleted, afterSeeds), "SITH-2024-002", "SITH-2023-045")
	sameIDs(t, FilterBookings(seeds, FilterCancelled, afterSeeds), "SITH-2025-009")

	got := FilterBookings(seeds, FilterKey("active"), afterSeeds)
	if got == nil || len(got) != 0 {
		t.Fatalf("unknown key should give an empty non-nil list, got %v", got)
	}
}
