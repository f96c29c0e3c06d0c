package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as JSON numbers; string input is still accepted on decode.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// StoredStatus is the status persisted with a booking record.
type StoredStatus string

const (
	StoredStatusUpcoming  StoredStatus = "upcoming"
	StoredStatusCompleted StoredStatus = "completed"
	StoredStatusCancelled StoredStatus = "cancelled"
)

// DisplayStatus is derived from the stored status and the booking dates.
type DisplayStatus string

const (
	DisplayStatusCancelled DisplayStatus = "CANCELLED"
	DisplayStatusCompleted DisplayStatus = "COMPLETED"
	DisplayStatusUpcoming  DisplayStatus = "UPCOMING"
	DisplayStatusActive    DisplayStatus = "ACTIVE"
)

type Booking struct {
	ID               string          `json:"id" validate:"required,max=64"`
	DestinationName  string          `json:"destinationName" validate:"required"`
	DestinationImage string          `json:"destinationImage" validate:"omitempty,url"`
	BookedBy         string          `json:"bookedBy"`
	Email            string          `json:"email" validate:"omitempty,email"`
	NumberOfPeople   int             `json:"numberOfPeople" validate:"min=1"`
	CheckInDate      Date            `json:"checkInDate"`
	CheckOutDate     Date            `json:"checkOutDate"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Currency         string          `json:"currency"`
	BookingDate      Date            `json:"bookingDate"`
	Status           StoredStatus    `json:"status" validate:"required,oneof=upcoming completed cancelled"`
	SpecialRequests  *string         `json:"specialRequests,omitempty"`
}

// DisplayStatusAt classifies the booking against now. Rules are evaluated in
// order: a cancelled record stays cancelled whatever its dates say.
func (b Booking) DisplayStatusAt(now time.Time) DisplayStatus {
	switch {
	case b.Status == StoredStatusCancelled:
		return DisplayStatusCancelled
	case b.CheckOutDate.Before(now):
		return DisplayStatusCompleted
	case b.CheckInDate.After(now):
		return DisplayStatusUpcoming
	default:
		return DisplayStatusActive
	}
}

// CheckInvariants covers the rules struct tags cannot express.
func (b Booking) CheckInvariants() error {
	if b.CheckInDate.IsZero() || b.CheckOutDate.IsZero() {
		return fmt.Errorf("booking %s: check-in and check-out dates are required", b.ID)
	}
	if b.CheckOutDate.Before(b.CheckInDate.Time) {
		return fmt.Errorf("booking %s: check-out %s is before check-in %s", b.ID, b.CheckOutDate, b.CheckInDate)
	}
	if b.AmountPaid.IsNegative() {
		return fmt.Errorf("booking %s: amount paid must not be negative", b.ID)
	}
	return nil
}
