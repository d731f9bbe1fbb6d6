package economy

import (
	"math"
	"time"
)

// Energy is not ticked by a background job. It is derived lazily from
// the stored value and the timestamp of the last update, at the moment
// a request needs it.

// CurrentEnergy returns the regenerated energy value:
// min(maxEnergy, stored + floor(minutesElapsed / regenMinutes)).
func CurrentEnergy(stored, maxEnergy int, lastUpdate, now time.Time, regenMinutes int) int {
	if stored > maxEnergy {
		stored = maxEnergy
	}
	if regenMinutes <= 0 {
		return stored
	}

	elapsed := now.Sub(lastUpdate)
	if elapsed <= 0 {
		return stored
	}

	gained := int(elapsed / (time.Duration(regenMinutes) * time.Minute))
	current := stored + gained
	if current > maxEnergy {
		current = maxEnergy
	}
	return current
}

// PurchaseCost returns the gold price of buying amount energy points,
// or ok=false when the amount is out of range or the product would
// overflow int64. A wrapped product must never reach the ledger: a
// negative cost would turn the debit into a credit.
func PurchaseCost(amount int, costPerPoint int64) (int64, bool) {
	if amount <= 0 || costPerPoint <= 0 {
		return 0, false
	}
	if int64(amount) > math.MaxInt64/costPerPoint {
		return 0, false
	}
	return int64(amount) * costPerPoint, true
}

// NextRegenIn returns how long until the next energy point appears, or
// zero when energy is already at the cap.
func NextRegenIn(stored, maxEnergy int, lastUpdate, now time.Time, regenMinutes int) time.Duration {
	if regenMinutes <= 0 {
		return 0
	}
	if CurrentEnergy(stored, maxEnergy, lastUpdate, now, regenMinutes) >= maxEnergy {
		return 0
	}

	interval := time.Duration(regenMinutes) * time.Minute
	elapsed := now.Sub(lastUpdate)
	if elapsed < 0 {
		elapsed = 0
	}
	return interval - elapsed%interval
}
