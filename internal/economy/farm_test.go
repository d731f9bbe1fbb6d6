package economy

import (
	"testing"
	"time"
)

func TestAccruedHours_Cap(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 48 real hours accrues the same as exactly 24
	if h := AccruedHours(base, base.Add(48*time.Hour)); h != MaxAccrualHours {
		t.Fatalf("expected cap %v, got %v", MaxAccrualHours, h)
	}
	if h := AccruedHours(base, base.Add(24*time.Hour)); h != MaxAccrualHours {
		t.Fatalf("expected %v at exactly 24h, got %v", MaxAccrualHours, h)
	}

	if h := AccruedHours(base, base.Add(2*time.Hour)); h != 2 {
		t.Fatalf("expected 2h, got %v", h)
	}

	// claims never accrue backwards
	if h := AccruedHours(base, base.Add(-time.Hour)); h != 0 {
		t.Fatalf("expected 0 for negative window, got %v", h)
	}
}

func TestPendingReward(t *testing.T) {
	// combined farmPower 17, claimed exactly 2 hours later
	if got := PendingReward(17, 2); got != 34 {
		t.Fatalf("PendingReward(17, 2) = %d, want 34", got)
	}

	// fractional hours floor
	if got := PendingReward(10, 1.55); got != 15 {
		t.Fatalf("PendingReward(10, 1.55) = %d, want 15", got)
	}

	if got := PendingReward(0, 10); got != 0 {
		t.Fatalf("expected 0 with no farm power, got %d", got)
	}
	if got := PendingReward(10, 0); got != 0 {
		t.Fatalf("expected 0 with no elapsed time, got %d", got)
	}
}

func TestPendingReward_CapScenario(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	at24 := PendingReward(17, AccruedHours(base, base.Add(24*time.Hour)))
	at48 := PendingReward(17, AccruedHours(base, base.Add(48*time.Hour)))
	if at24 != at48 {
		t.Fatalf("cap violated: 24h=%d 48h=%d", at24, at48)
	}
	if at24 != 17*24 {
		t.Fatalf("expected %d, got %d", 17*24, at24)
	}
}
