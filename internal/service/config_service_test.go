package service

import (
	"testing"

	"nftgame/internal/domain"
)

func TestDefaultConfigValue(t *testing.T) {
	cases := map[string]string{
		domain.KeyGoldBuyRate:        "10",
		domain.KeyGoldSellRate:       "20",
		domain.KeyDailyAdLimit:       "20",
		domain.KeyAdRewardGold:       "5",
		domain.KeyEnergyRegenMinutes: "5",
		domain.KeyEnergyCostGold:     "10",
	}

	for key, want := range cases {
		got, ok := DefaultConfigValue(key)
		if !ok {
			t.Fatalf("no default for %s", key)
		}
		if got != want {
			t.Fatalf("default for %s = %s, want %s", key, got, want)
		}
	}

	if _, ok := DefaultConfigValue("UNKNOWN_KEY"); ok {
		t.Fatal("unknown key must have no default")
	}
}
