package economy

import "testing"

func TestWinChance_Bounds(t *testing.T) {
	cases := []struct {
		power int64
		want  float64
	}{
		{0, 0.5},
		{100, 0.6},
		{400, 0.9},
		{1000, 0.9}, // never above 0.9
		{-5, 0.5},   // never below 0.5
	}

	for _, tc := range cases {
		s := NewSimulation(tc.power)
		if s.WinChance != tc.want {
			t.Fatalf("WinChance(%d) = %v, want %v", tc.power, s.WinChance, tc.want)
		}
	}
}

func TestWinChance_Monotonic(t *testing.T) {
	prev := 0.0
	for power := int64(0); power <= 2000; power += 50 {
		s := NewSimulation(power)
		if s.WinChance < prev {
			t.Fatalf("win chance decreased at power %d: %v < %v", power, s.WinChance, prev)
		}
		if s.WinChance < 0.5 || s.WinChance > 0.9 {
			t.Fatalf("win chance out of [0.5, 0.9] at power %d: %v", power, s.WinChance)
		}
		prev = s.WinChance
	}
}

func TestResolve_DeterministicDraw(t *testing.T) {
	s := NewSimulation(100) // chance 0.6

	if !s.Resolve(0.59) {
		t.Fatal("draw below chance should win")
	}
	if s.RewardFor(50) != 100 {
		t.Fatalf("win pays 2x entry fee, got %d", s.RewardFor(50))
	}

	if s.Resolve(0.6) {
		t.Fatal("draw at chance should lose")
	}
	if s.RewardFor(50) != 0 {
		t.Fatalf("loss pays nothing, got %d", s.RewardFor(50))
	}
}
