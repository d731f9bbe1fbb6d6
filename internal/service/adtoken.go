package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nftgame/internal/domain"
)

// Ad tokens are issued before an ad plays and consumed when the view
// is reported. A token is bound to the user, the provider and the
// issue time, signed with HMAC-SHA256, and expires after a short TTL.
// Single consumption is enforced by the unique index on
// ad_views.ad_token when the watch call records the view.

const (
	adTokenTTL  = 10 * time.Minute
	adTokenSkew = time.Minute
)

type AdTokenIssuer struct {
	key []byte
}

func NewAdTokenIssuer(key string) *AdTokenIssuer {
	return &AdTokenIssuer{key: []byte(key)}
}

// Issue returns a token of the form "<unix_ts>.<hex hmac>"
func (i *AdTokenIssuer) Issue(userID int64, provider domain.AdProvider, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	return ts + "." + hex.EncodeToString(i.sign(userID, provider, ts))
}

// Verify recomputes the signature for the claimed issue time and
// checks exact equality plus the TTL window. Any mismatch, malformed
// input or expired timestamp yields ErrInvalidToken.
func (i *AdTokenIssuer) Verify(userID int64, provider domain.AdProvider, token string, now time.Time) error {
	ts, macHex, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidToken
	}

	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}
	issued := time.Unix(unix, 0)
	if now.Sub(issued) > adTokenTTL || issued.After(now.Add(adTokenSkew)) {
		return ErrInvalidToken
	}

	mac, err := hex.DecodeString(macHex)
	if err != nil {
		return ErrInvalidToken
	}
	if !hmac.Equal(mac, i.sign(userID, provider, ts)) {
		return ErrInvalidToken
	}
	return nil
}

func (i *AdTokenIssuer) sign(userID int64, provider domain.AdProvider, ts string) []byte {
	h := hmac.New(sha256.New, i.key)
	fmt.Fprintf(h, "%d:%s:%s", userID, provider, ts)
	return h.Sum(nil)
}
