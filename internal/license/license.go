// Package license gates live upstream calls behind the installation's
// entitlement. The rest of the system only ever sees the boolean answer.
package license

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Entitlement reports whether the caller may attempt live upstream calls.
type Entitlement interface {
	Entitled() bool
}

// Key validates a signed license key of the form "payload.signature" where
// signature = hex(HMAC-SHA256(secret, payload)).
type Key struct {
	key    string
	secret string
}

// NewKey builds a Key check. An empty secret disables the gate entirely.
func NewKey(key, secret string) *Key {
	return &Key{
		key:    strings.TrimSpace(key),
		secret: secret,
	}
}

// Entitled reports whether the configured key carries a valid signature.
func (k *Key) Entitled() bool {
	if k == nil || k.secret == "" {
		return true
	}
	payload, sig, ok := strings.Cut(k.key, ".")
	if !ok || payload == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(Sign(payload, k.secret)))
}

// Sign computes the signature for a key payload. Exposed for key issuance
// tooling and tests.
func Sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Always is a fixed entitlement answer, useful for tests and local runs.
type Always bool

func (a Always) Entitled() bool { return bool(a) }
