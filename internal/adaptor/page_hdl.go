package adaptor

import (
	"embed"
	"errors"
	"html/template"
	"math"
	"net/http"
	"strings"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/internal/dto/response"
	"sith-voyages/internal/usecase"
	"sith-voyages/pkg/utils"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"lower": func(status entity.DisplayStatus) string {
		return strings.ToLower(string(status))
	},
}).ParseFS(templateFS, "templates/*.html"))

type filterOption struct {
	Value    string
	Label    string
	Selected bool
}

type bookingsPage struct {
	State          string
	Reason         string
	Traveler       string
	Filter         string
	Filters        []filterOption
	CountLabel     string
	EmptyMessage   string
	Bookings       []response.BookingView
	Detail         *response.BookingView
	RefreshSeconds int
}

var filterLabels = []struct {
	key   usecase.FilterKey
	label string
}{
	{usecase.FilterAll, "All Bookings"},
	{usecase.FilterUpcoming, "Upcoming"},
	{usecase.FilterPast, "Past"},
	{usecase.FilterCompleted, "Completed"},
	{usecase.FilterCancelled, "Cancelled"},
}

// PageHandler renders the server-side bookings page.
type PageHandler struct {
	service        usecase.BookingService
	refreshSeconds int
	log            *zap.Logger
}

func NewPageHandler(service usecase.BookingService, loadDelay time.Duration, log *zap.Logger) *PageHandler {
	return &PageHandler{
		service:        service,
		refreshSeconds: max(1, int(math.Ceil(loadDelay.Seconds()))),
		log:            log.With(zap.String("handler", "page")),
	}
}

// Bookings handles GET /bookings?status=&detail=
func (h *PageHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	query := r.URL.Query()
	list, err := h.service.ListBookings(r.Context(), user, query.Get("status"))
	if errors.Is(err, usecase.ErrInvalidFilter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error("Failed to list bookings", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := bookingsPage{
		State:      list.State,
		Reason:     list.Reason,
		Traveler:   list.Traveler,
		Filter:     list.Filter,
		Filters:    filterOptions(list.Filter),
		CountLabel: countLabel(list.Count),
		Bookings:   list.Bookings,
	}

	switch usecase.LoadState(list.State) {
	case usecase.LoadStateLoading:
		page.RefreshSeconds = h.refreshSeconds
	case usecase.LoadStateReady:
		page.EmptyMessage = emptyMessage(list.Filter)
		if id := query.Get("detail"); id != "" {
			page.Detail = h.detail(r, user, id)
		}
	}

	h.render(w, page)
}

// Reload handles POST /bookings/reload
func (h *PageHandler) Reload(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if _, err := h.service.ReloadBookings(r.Context(), user); err != nil {
		h.log.Error("Failed to reload bookings", zap.Error(err))
	}
	http.Redirect(w, r, "/bookings", http.StatusSeeOther)
}

// detail selects the booking for the overlay; unknown ids just close it.
func (h *PageHandler) detail(r *http.Request, user utils.SessionUser, id string) *response.BookingView {
	view, err := h.service.GetBooking(r.Context(), user, id)
	if err != nil {
		h.log.Warn("Detail not shown", zap.String("booking_id", id), zap.Error(err))
		return nil
	}
	return view
}

func (h *PageHandler) render(w http.ResponseWriter, page bookingsPage) {
	var buf strings.Builder
	if err := pageTemplates.ExecuteTemplate(&buf, "layout", page); err != nil {
		h.log.Error("Failed to render bookings page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(buf.String()))
}

func filterOptions(selected string) []filterOption {
	options := make([]filterOption, 0, len(filterLabels))
	for _, f := range filterLabels {
		options = append(options, filterOption{
			Value:    string(f.key),
			Label:    f.label,
			Selected: string(f.key) == selected,
		})
	}
	return options
}

func emptyMessage(filter string) string {
	if filter == string(usecase.FilterAll) {
		return "You have not booked your passage through the stars yet."
	}
	return "No " + filter + " bookings found."
}
