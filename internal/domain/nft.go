package domain

import "time"

// Rarity classifies an NFT and drives its power and price tier
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// NFT is a collectible asset. OwnerID is nil while the asset sits
// unowned in the catalog. Owned assets contribute additively to the
// owner's total farm and battle power.
type NFT struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     *int64    `db:"owner_id" json:"owner_id,omitempty"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	Rarity      Rarity    `db:"rarity" json:"rarity"`
	FarmPower   int64     `db:"farm_power" json:"farm_power"`
	BattlePower int64     `db:"battle_power" json:"battle_power"`
	PriceGold   int64     `db:"price_gold" json:"price_gold"`
	PriceUSD    float64   `db:"price_usd" json:"price_usd"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
