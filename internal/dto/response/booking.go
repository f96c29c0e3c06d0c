package response

import (
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/pkg/utils"
)

// BookingView is a booking plus everything the list card and detail overlay print.
type BookingView struct {
	entity.Booking
	DisplayStatus    entity.DisplayStatus `json:"displayStatus"`
	Nights           int                  `json:"nights"`
	NightsLabel      string               `json:"nightsLabel"`
	CheckInLabel     string               `json:"checkInLabel"`
	CheckOutLabel    string               `json:"checkOutLabel"`
	BookingDateLabel string               `json:"bookingDateLabel"`
	AmountLabel      string               `json:"amountLabel"`
	TravelersLabel   string               `json:"travelersLabel"`
}

type BookingListResponse struct {
	State    string        `json:"state"`
	Traveler string        `json:"traveler"`
	Filter   string        `json:"filter"`
	Count    int           `json:"count"`
	Bookings []BookingView `json:"bookings"`
	Reason   string        `json:"reason,omitempty"`
}

func NewBookingView(booking entity.Booking, now time.Time) BookingView {
	nights := utils.NightCount(booking.CheckInDate.Time, booking.CheckOutDate.Time)

	view := BookingView{
		Booking:        booking,
		DisplayStatus:  booking.DisplayStatusAt(now),
		Nights:         nights,
		NightsLabel:    utils.NightsLabel(nights),
		CheckInLabel:   utils.FormatCheckTime(booking.CheckInDate.Time),
		CheckOutLabel:  utils.FormatCheckTime(booking.CheckOutDate.Time),
		AmountLabel:    utils.FormatAmount(booking.AmountPaid, booking.Currency),
		TravelersLabel: utils.TravelerLabel(booking.NumberOfPeople),
	}
	if !booking.BookingDate.IsZero() {
		view.BookingDateLabel = utils.FormatDate(booking.BookingDate.Time)
	}
	return view
}

// NewBookingViews never returns nil so an empty ready list encodes as [].
func NewBookingViews(bookings []entity.Booking, now time.Time) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, NewBookingView(b, now))
	}
	return views
}
