package domain

import "time"

// AdProvider - supported ad networks
type AdProvider string

const (
	ProviderUnityAds   AdProvider = "UNITY_ADS"
	ProviderAdMob      AdProvider = "ADMOB"
	ProviderAppLovin   AdProvider = "APPLOVIN"
	ProviderIronSource AdProvider = "IRONSOURCE"
)

// ValidProvider reports whether p is one of the supported networks
func ValidProvider(p AdProvider) bool {
	switch p {
	case ProviderUnityAds, ProviderAdMob, ProviderAppLovin, ProviderIronSource:
		return true
	}
	return false
}

// AdView records one ad completion. Only completed rows count toward
// the daily quota. AdToken is unique so a token can be consumed once.
type AdView struct {
	ID         int64      `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	Provider   AdProvider `db:"provider" json:"provider"`
	AdToken    string     `db:"ad_token" json:"-"`
	GoldReward int64      `db:"gold_reward" json:"gold_reward"`
	Completed  bool       `db:"completed" json:"completed"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
