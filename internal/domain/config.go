package domain

// Config is one tunable economic parameter. Values are plain strings
// interpreted by the consuming component.
type Config struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Recognized config keys
const (
	KeyGoldBuyRate        = "GOLD_BUY_RATE"
	KeyGoldSellRate       = "GOLD_SELL_RATE"
	KeyDailyAdLimit       = "DAILY_AD_LIMIT"
	KeyAdRewardGold       = "AD_REWARD_GOLD"
	KeyEnergyRegenMinutes = "ENERGY_REGEN_MINUTES"
	KeyEnergyCostGold     = "ENERGY_COST_GOLD"
)
