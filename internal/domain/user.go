package domain

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	Username         string    `db:"username" json:"username"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	GoldBalance      int64     `db:"gold_balance" json:"gold_balance"`
	USDBalance       float64   `db:"usd_balance" json:"usd_balance"`
	Energy           int       `db:"energy" json:"energy"`
	MaxEnergy        int       `db:"max_energy" json:"max_energy"`
	LastEnergyUpdate time.Time `db:"last_energy_update" json:"-"`
	IsAdmin          bool      `db:"is_admin" json:"is_admin"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
