package domain

import "time"

// FarmReward records one successful farm claim. The most recent
// ClaimedAt bounds the accrual window of the next claim.
type FarmReward struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Amount    int64     `db:"amount" json:"amount"`
	ClaimedAt time.Time `db:"claimed_at" json:"claimed_at"`
}
