package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sith-voyages/internal/dto/request"
	"sith-voyages/internal/dto/response"
	"sith-voyages/internal/usecase"
	"sith-voyages/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/user/bookings?status=
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := request.BookingFilterRequest{Status: r.URL.Query().Get("status")}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	list, err := h.service.ListBookings(r.Context(), user, req.Status)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	switch usecase.LoadState(list.State) {
	case usecase.LoadStateLoading:
		utils.ResponseAccepted(w, "Bookings are loading", list)
	case usecase.LoadStateFailed:
		utils.ResponseServiceUnavailable(w, "Bookings failed to load", list)
	default:
		utils.ResponseSuccess(w, countLabel(list.Count), list)
	}
}

// ReloadBookings handles POST /api/user/bookings/reload
func (h *BookingHandler) ReloadBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	started, err := h.service.ReloadBookings(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err, "reload bookings")
		return
	}

	message := "Bookings reload started"
	if !started {
		message = "Bookings are already loading"
	}
	utils.ResponseAccepted(w, message, map[string]string{"state": string(usecase.LoadStateLoading)})
}

// GetBooking handles GET /api/user/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", booking)
}

// SelectBooking handles PUT /api/user/bookings/selection
func (h *BookingHandler) SelectBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SelectBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SelectForDetail(r.Context(), user, req.ID)
	if err != nil {
		h.handleServiceError(w, err, "select booking")
		return
	}

	utils.ResponseSuccess(w, "Booking selected", booking)
}

// GetSelection handles GET /api/user/bookings/selection
func (h *BookingHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.GetDetail(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err, "get selection")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", booking)
}

// ClearSelection handles DELETE /api/user/bookings/selection
func (h *BookingHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.ClearDetail(r.Context(), user); err != nil {
		h.handleServiceError(w, err, "clear selection")
		return
	}

	utils.ResponseSuccess(w, "Selection cleared", nil)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookingsLoading):
		utils.ResponseAccepted(w, err.Error(), response.BookingListResponse{State: string(usecase.LoadStateLoading)})

	case errors.Is(err, usecase.ErrBookingsLoadFailed):
		h.log.Warn(operation+" failed - bookings unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, usecase.ErrBookingsLoadFailed.Error(),
			response.BookingListResponse{State: string(usecase.LoadStateFailed), Reason: err.Error()})

	case errors.Is(err, usecase.ErrBookingNotFound), errors.Is(err, usecase.ErrNoDetailSelected):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidFilter):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func countLabel(count int) string {
	return fmt.Sprintf("%d %s found", count, utils.Plural(count, "booking", "bookings"))
}
