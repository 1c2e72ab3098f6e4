package httpapi

import "crypto/rand"

// signingKey returns the configured secret, or a random per-process key
// when none is configured.
func signingKey(secret string) (key []byte, generated bool) {
	if secret != "" {
		return []byte(secret), false
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate JWT key: " + err.Error())
	}
	return b, true
}
