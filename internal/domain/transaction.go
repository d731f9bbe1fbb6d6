package domain

import "time"

// Transaction types written by the ledger
const (
	TxFarmReward     = "FARM_REWARD"
	TxBattleEntry    = "BATTLE_ENTRY"
	TxBattleWin      = "BATTLE_WIN"
	TxAdReward       = "AD_REWARD"
	TxEnergyPurchase = "ENERGY_PURCHASE"
)

// Transaction is one append-only ledger row. GoldAmount is signed;
// USDAmount always equals GoldAmount / 20.
type Transaction struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Type        string    `db:"type" json:"type"`
	GoldAmount  int64     `db:"gold_amount" json:"gold_amount"`
	USDAmount   float64   `db:"usd_amount" json:"usd_amount"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
