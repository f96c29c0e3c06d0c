package usecase

import (
	"sith-voyages/internal/data/entity"
	"sith-voyages/pkg/utils"

	"github.com/shopspring/decimal"
)

const seedCurrency = "Imperial Credits"

// SeedBookings returns the built-in journeys every traveler sees, stamped with
// the traveler's name and e-mail. A fresh slice is built on every call.
func SeedBookings(user utils.SessionUser) []entity.Booking {
	bookedBy := utils.BookedByName(user.FullName)
	heatGear := "Heat-resistant gear required for lava chambers"
	silence := "Silent meditation chambers preferred"

	return []entity.Booking{
		{
			ID:               "SITH-2024-001",
			DestinationName:  "Mustafar Volcano Spires",
			DestinationImage: "https://images.unsplash.com/photo-1494891848038-7bd202a2afeb?auto=format&fit=crop&w=800&q=80",
			BookedBy:         bookedBy,
			Email:            user.Email,
			NumberOfPeople:   2,
			CheckInDate:      entity.NewDate(2024, 3, 15),
			CheckOutDate:     entity.NewDate(2024, 3, 18),
			AmountPaid:       decimal.NewFromInt(7500),
			Currency:         seedCurrency,
			BookingDate:      entity.NewDate(2024, 2, 10),
			Status:           entity.StoredStatusUpcoming,
			SpecialRequests:  &heatGear,
		},
		{
			ID:               "SITH-2024-002",
			DestinationName:  "Exegol Meditation Crypts",
			DestinationImage: "https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05?auto=format&fit=crop&w=800&q=80",
			BookedBy:         bookedBy,
			Email:            user.Email,
			NumberOfPeople:   1,
			CheckInDate:      entity.NewDate(2024, 1, 20),
			CheckOutDate:     entity.NewDate(2024, 1, 25),
			AmountPaid:       decimal.NewFromInt(25000),
			Currency:         seedCurrency,
			BookingDate:      entity.NewDate(2024, 1, 5),
			Status:           entity.StoredStatusCompleted,
			SpecialRequests:  &silence,
		},
		{
			ID:               "SITH-2023-045",
			DestinationName:  "Korriban Tomb Suites",
			DestinationImage: "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?auto=format&fit=crop&w=800&q=80",
			BookedBy:         bookedBy,
			Email:            user.Email,
			NumberOfPeople:   3,
			CheckInDate:      entity.NewDate(2023, 12, 10),
			CheckOutDate:     entity.NewDate(2023, 12, 15),
			AmountPaid:       decimal.NewFromInt(19000),
			Currency:         seedCurrency,
			BookingDate:      entity.NewDate(2023, 11, 25),
			Status:           entity.StoredStatusCompleted,
		},
	}
}
