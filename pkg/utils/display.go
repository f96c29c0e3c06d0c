package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	longDateLayout  = "January 2, 2006"
	checkTimeSuffix = " at 11:00 AM"
	defaultTraveler = "Sith Traveler"
	secondsPerDay   = 24 * 60 * 60
)

var amountPrinter = message.NewPrinter(language.English)

// FormatDate renders a calendar date in the fixed en-US long form, e.g. "March 15, 2024".
func FormatDate(date time.Time) string {
	return date.UTC().Format(longDateLayout)
}

// FormatCheckTime renders check-in/check-out moments; both happen at 11:00 AM.
func FormatCheckTime(date time.Time) string {
	return FormatDate(date) + checkTimeSuffix
}

// NightCount is the number of started days between the two dates, regardless of order.
// Whole seconds are used because time.Duration saturates after about 292 years.
func NightCount(checkIn, checkOut time.Time) int {
	diff := checkOut.Unix() - checkIn.Unix()
	if diff < 0 {
		diff = -diff
	}
	return int((diff + secondsPerDay - 1) / secondsPerDay)
}

func NightsLabel(nights int) string {
	return fmt.Sprintf("%d Nights", nights)
}

// FormatAmount groups thousands en-US style, e.g. "7,500 Imperial Credits".
func FormatAmount(amount decimal.Decimal, currency string) string {
	value := amountPrinter.Sprintf("%v", number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(3)))
	if currency == "" {
		return value
	}
	return value + " " + currency
}

func TravelerLabel(people int) string {
	if people == 1 {
		return "1 Person"
	}
	return fmt.Sprintf("%d People", people)
}

// BookedByName is the name stamped on seed bookings.
func BookedByName(fullName string) string {
	if name := strings.TrimSpace(fullName); name != "" {
		return name
	}
	return defaultTraveler
}

// DisplayName falls back from full name to the e-mail local part.
func DisplayName(fullName, email string) string {
	if name := strings.TrimSpace(fullName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return defaultTraveler
}

func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
