package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/internal/dto/response"
	"sith-voyages/internal/usecase"
	"sith-voyages/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeSavedRepo struct {
	mu   sync.Mutex
	err  error
	gate chan struct{}
}

func (f *fakeSavedRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error) {
	f.mu.Lock()
	gate, err := f.gate, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return nil, err
}

func (f *fakeSavedRepo) Put(ctx context.Context, userID uuid.UUID, bookings []entity.Booking) error {
	return nil
}

type envelope struct {
	Status  bool                         `json:"status"`
	Message string                       `json:"message"`
	Data    response.BookingListResponse `json:"data"`
}

var traveler = utils.SessionUser{ID: uuid.New(), Username: "maul", Email: "maul@sith.empire"}

func withUser(user *utils.SessionUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(utils.SetSessionUserContext(r.Context(), *user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(repo *fakeSavedRepo, user *utils.SessionUser) http.Handler {
	service := usecase.NewBookingService(repo, utils.BookingsConfig{LoadTimeout: time.Second}, zap.NewNop())
	bookings := NewBookingHandler(service, zap.NewNop())
	page := NewPageHandler(service, time.Second, zap.NewNop())

	r := chi.NewRouter()
	r.Use(withUser(user))
	r.Get("/api/user/bookings", bookings.ListBookings)
	r.Post("/api/user/bookings/reload", bookings.ReloadBookings)
	r.Put("/api/user/bookings/selection", bookings.SelectBooking)
	r.Get("/api/user/bookings/selection", bookings.GetSelection)
	r.Delete("/api/user/bookings/selection", bookings.ClearSelection)
	r.Get("/api/user/bookings/{id}", bookings.GetBooking)
	r.Get("/bookings", page.Bookings)
	r.Post("/bookings/reload", page.Reload)
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// untilSettled repeats the request while the bookings are still loading.
func untilSettled(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		rec := serve(h, method, target, "")
		if rec.Code != http.StatusAccepted && !strings.Contains(rec.Body.String(), "LOADING YOUR DARK JOURNEYS") {
			return rec
		}
		if time.Now().After(deadline) {
			t.Fatalf("%s %s still loading", method, target)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return env
}

func TestListBookings_LoadingThenReady(t *testing.T) {
	repo := &fakeSavedRepo{gate: make(chan struct{})}
	user := traveler
	router := newTestRouter(repo, &user)

	rec := serve(router, http.MethodGet, "/api/user/bookings", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 while loading, got %d", rec.Code)
	}
	if env := decode(t, rec); env.Data.State != "loading" || env.Data.Bookings != nil {
		t.Fatalf("unexpected loading body: %+v", env.Data)
	}

	close(repo.gate)

	rec = untilSettled(t, router, http.MethodGet, "/api/user/bookings?status=completed")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if env.Message != "2 bookings found" || env.Data.Count != 2 || env.Data.Traveler != "maul" {
		t.Fatalf("unexpected ready body: %s", rec.Body.String())
	}
	if row := env.Data.Bookings[0]; row.ID != "SITH-2024-002" || row.AmountLabel != "25,000 Imperial Credits" || row.DisplayStatus != entity.DisplayStatusCompleted {
		t.Fatalf("unexpected first row: %+v", row)
	}
	if !strings.Contains(rec.Body.String(), `"amountPaid":25000,`) {
		t.Fatalf("expected amountPaid as a JSON number: %s", rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/api/user/bookings?status=cancelled", "")
	if env := decode(t, rec); rec.Code != http.StatusOK || env.Data.Bookings == nil || len(env.Data.Bookings) != 0 {
		t.Fatalf("expected an empty ready list, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestListBookings_InvalidFilter(t *testing.T) {
	user := traveler
	router := newTestRouter(&fakeSavedRepo{}, &user)

	rec := serve(router, http.MethodGet, "/api/user/bookings?status=active", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListBookings_Unauthenticated(t *testing.T) {
	router := newTestRouter(&fakeSavedRepo{}, nil)

	rec := serve(router, http.MethodGet, "/api/user/bookings", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = serve(router, http.MethodGet, "/bookings", "")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d", rec.Code)
	}
}

func TestListBookings_LoadFailedThenReload(t *testing.T) {
	repo := &fakeSavedRepo{err: errors.New("redis: connection refused")}
	user := traveler
	router := newTestRouter(repo, &user)

	rec := untilSettled(t, router, http.MethodGet, "/api/user/bookings")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if env := decode(t, rec); env.Data.State != "load_failed" || !strings.Contains(env.Data.Reason, "connection refused") {
		t.Fatalf("unexpected failure body: %s", rec.Body.String())
	}

	page := serve(router, http.MethodGet, "/bookings", "")
	if !strings.Contains(page.Body.String(), `action="/bookings/reload"`) {
		t.Fatalf("failed page should offer a retry form: %s", page.Body.String())
	}

	repo.mu.Lock()
	repo.err = nil
	repo.mu.Unlock()

	rec = serve(router, http.MethodPost, "/api/user/bookings/reload", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 from reload, got %d", rec.Code)
	}

	rec = untilSettled(t, router, http.MethodGet, "/api/user/bookings")
	if env := decode(t, rec); rec.Code != http.StatusOK || env.Data.Count != 3 {
		t.Fatalf("expected 3 bookings after reload, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestBookingDetailSelection(t *testing.T) {
	user := traveler
	router := newTestRouter(&fakeSavedRepo{}, &user)
	untilSettled(t, router, http.MethodGet, "/api/user/bookings")

	if rec := serve(router, http.MethodGet, "/api/user/bookings/SITH-2023-045", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a known booking, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/user/bookings/SITH-0000-000", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown booking, got %d", rec.Code)
	}

	if rec := serve(router, http.MethodGet, "/api/user/bookings/selection", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with nothing selected, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodPut, "/api/user/bookings/selection", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodPut, "/api/user/bookings/selection", `{"id":"SITH-2024-001"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from select, got %d", rec.Code)
	}

	rec := serve(router, http.MethodGet, "/api/user/bookings/selection", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"travelersLabel":"2 People"`) {
		t.Fatalf("unexpected selection: %d %s", rec.Code, rec.Body.String())
	}

	if rec := serve(router, http.MethodDelete, "/api/user/bookings/selection", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from clear, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/user/bookings/selection", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after clear, got %d", rec.Code)
	}
}

func TestBookingsPage(t *testing.T) {
	repo := &fakeSavedRepo{gate: make(chan struct{})}
	user := traveler
	user.FullName = "Darth Maul"
	router := newTestRouter(repo, &user)

	rec := serve(router, http.MethodGet, "/bookings", "")
	if !strings.Contains(rec.Body.String(), `http-equiv="refresh"`) || !strings.Contains(rec.Body.String(), "LOADING YOUR DARK JOURNEYS") {
		t.Fatalf("expected the loading page, got %s", rec.Body.String())
	}
	close(repo.gate)

	rec = untilSettled(t, router, http.MethodGet, "/bookings")
	body := rec.Body.String()
	for _, want := range []string{"MY DARK JOURNEYS", "Darth Maul", "3 bookings found", "Mustafar Volcano Spires", "March 15, 2024 at 11:00 AM", "Back to Empire"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(body, "BOOKING DETAILS") {
		t.Fatal("detail overlay should be closed")
	}

	rec = serve(router, http.MethodGet, "/bookings?detail=SITH-2024-001", "")
	body = rec.Body.String()
	if !strings.Contains(body, "BOOKING DETAILS") || !strings.Contains(body, "Heat-resistant gear required for lava chambers") {
		t.Fatalf("expected the detail overlay, got %s", body)
	}
	if rec := serve(router, http.MethodGet, "/api/user/bookings/selection", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("viewing the page must not change the selection, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/bookings?status=cancelled", "")
	body = rec.Body.String()
	if !strings.Contains(body, "NO DARK JOURNEYS FOUND") || !strings.Contains(body, "No cancelled bookings found.") || !strings.Contains(body, `href="/all-destinations"`) {
		t.Fatalf("expected the empty state, got %s", body)
	}

	if rec := serve(router, http.MethodGet, "/bookings?status=active", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown filter, got %d", rec.Code)
	}

	rec = serve(router, http.MethodPost, "/bookings/reload", "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/bookings" {
		t.Fatalf("expected redirect back to /bookings, got %d", rec.Code)
	}
}
