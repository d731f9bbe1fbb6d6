package economy

const (
	// BattleEnergyCost is the fixed energy price of entering a battle
	BattleEnergyCost = 10

	// OpponentName is the placeholder identity recorded on every
	// battle; there is no live opponent matching.
	OpponentName = "Bot Player"

	battleBaseChance  = 0.5
	battleMaxChance   = 0.9
	battlePowerScale  = 1000.0
	battleRewardRatio = 2
)

// Simulation resolves one wagered battle
type Simulation struct {
	BattlePower int64   `json:"battle_power"`
	WinChance   float64 `json:"win_chance"`
	Won         bool    `json:"won"`
}

// NewSimulation computes the win chance for the given total battle
// power: min(0.5 + power/1000, 0.9). The chance is non-decreasing in
// power and bounded in [0.5, 0.9].
func NewSimulation(battlePower int64) *Simulation {
	if battlePower < 0 {
		battlePower = 0
	}

	chance := battleBaseChance + float64(battlePower)/battlePowerScale
	if chance > battleMaxChance {
		chance = battleMaxChance
	}

	return &Simulation{
		BattlePower: battlePower,
		WinChance:   chance,
	}
}

// Resolve applies a uniform draw in [0, 1). The draw is injected so
// tests can force either outcome.
func (s *Simulation) Resolve(draw float64) bool {
	s.Won = draw < s.WinChance
	return s.Won
}

// RewardFor returns the payout for the entry fee: 2x on a win, 0 on a
// loss.
func (s *Simulation) RewardFor(entryFee int64) int64 {
	if !s.Won {
		return 0
	}
	return entryFee * battleRewardRatio
}
