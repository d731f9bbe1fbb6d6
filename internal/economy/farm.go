package economy

import (
	"math"
	"time"
)

// MaxAccrualHours bounds how much unclaimed farm reward can pile up.
// Farming for 48 hours pays the same as farming for exactly 24.
const MaxAccrualHours = 24.0

// AccruedHours returns the accrual window in hours since the last
// claim, capped at MaxAccrualHours and never negative.
func AccruedHours(lastClaim, now time.Time) float64 {
	hours := now.Sub(lastClaim).Hours()
	if hours < 0 {
		return 0
	}
	if hours > MaxAccrualHours {
		return MaxAccrualHours
	}
	return hours
}

// PendingReward returns floor(farmPower * hours) GOLD.
func PendingReward(farmPower int64, hours float64) int64 {
	if farmPower <= 0 || hours <= 0 {
		return 0
	}
	return int64(math.Floor(float64(farmPower) * hours))
}
