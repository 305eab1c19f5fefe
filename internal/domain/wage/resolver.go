package wage

import (
	"math"
	"time"

	shiftdomain "shiftboard-go/internal/domain/shift"
)

// pickRate returns the rate with the latest EffectiveFrom on or before date.
// Equal EffectiveFrom values are rejected on write; legacy duplicates resolve
// to the newest row.
func pickRate(rates []WageRate, date time.Time) *WageRate {
	day := shiftdomain.DateOnly(date)

	var best *WageRate
	for i := range rates {
		candidate := &rates[i]
		from := shiftdomain.DateOnly(candidate.EffectiveFrom)
		if from.After(day) {
			continue
		}
		if best == nil || newer(candidate, best) {
			best = candidate
		}
	}
	return best
}

func newer(a, b *WageRate) bool {
	aFrom, bFrom := shiftdomain.DateOnly(a.EffectiveFrom), shiftdomain.DateOnly(b.EffectiveFrom)
	if !aFrom.Equal(bFrom) {
		return aFrom.After(bFrom)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// MonthRange returns the first and last calendar day of month.
func MonthRange(month time.Time) (time.Time, time.Time) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

func roundSalary(amount float64) float64 {
	return math.Round(amount)
}
