package request

type BookingFilterRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=all upcoming past completed cancelled"`
}

type SelectBookingRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}
