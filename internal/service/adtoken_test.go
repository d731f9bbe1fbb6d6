package service

import (
	"testing"
	"time"

	"nftgame/internal/domain"
)

func TestAdToken_RoundTrip(t *testing.T) {
	issuer := NewAdTokenIssuer("test-key")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := issuer.Issue(42, domain.ProviderAdMob, now)
	if len(token) < 32 {
		t.Fatalf("token too short: %q", token)
	}

	if err := issuer.Verify(42, domain.ProviderAdMob, token, now.Add(time.Minute)); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
}

func TestAdToken_BoundToUserAndProvider(t *testing.T) {
	issuer := NewAdTokenIssuer("test-key")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := issuer.Issue(42, domain.ProviderAdMob, now)

	if err := issuer.Verify(43, domain.ProviderAdMob, token, now); err == nil {
		t.Fatal("token must not verify for another user")
	}
	if err := issuer.Verify(42, domain.ProviderUnityAds, token, now); err == nil {
		t.Fatal("token must not verify for another provider")
	}
}

func TestAdToken_Expiry(t *testing.T) {
	issuer := NewAdTokenIssuer("test-key")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := issuer.Issue(42, domain.ProviderAdMob, now)

	if err := issuer.Verify(42, domain.ProviderAdMob, token, now.Add(11*time.Minute)); err == nil {
		t.Fatal("expired token must not verify")
	}

	// issued "in the future" beyond clock skew
	future := issuer.Issue(42, domain.ProviderAdMob, now.Add(5*time.Minute))
	if err := issuer.Verify(42, domain.ProviderAdMob, future, now); err == nil {
		t.Fatal("future-dated token must not verify")
	}
}

func TestAdToken_Malformed(t *testing.T) {
	issuer := NewAdTokenIssuer("test-key")
	now := time.Now().UTC()

	for _, token := range []string{
		"",
		"no-separator",
		"notanumber.deadbeef",
		"1748779200.zzzz", // bad hex
	} {
		if err := issuer.Verify(42, domain.ProviderAdMob, token, now); err == nil {
			t.Fatalf("malformed token %q must not verify", token)
		}
	}
}

func TestAdToken_DifferentKeys(t *testing.T) {
	now := time.Now().UTC()
	token := NewAdTokenIssuer("key-a").Issue(42, domain.ProviderAdMob, now)

	if err := NewAdTokenIssuer("key-b").Verify(42, domain.ProviderAdMob, token, now); err == nil {
		t.Fatal("token signed with a different key must not verify")
	}
}
