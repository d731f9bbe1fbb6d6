package domain

import "time"

// BattleResult - outcome of a resolved wager
type BattleResult string

const (
	BattleWin  BattleResult = "WIN"
	BattleLoss BattleResult = "LOSS"
)

// Battle is an immutable record of one resolved wager
type Battle struct {
	ID           int64        `db:"id" json:"id"`
	UserID       int64        `db:"user_id" json:"user_id"`
	EntryFee     int64        `db:"entry_fee" json:"entry_fee"`
	Reward       int64        `db:"reward" json:"reward"`
	Result       BattleResult `db:"result" json:"result"`
	OpponentName string       `db:"opponent_name" json:"opponent_name"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
