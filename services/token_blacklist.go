package services

import (
	"sync"
	"time"
)

// TokenBlacklist holds revoked refresh-token ids until their natural
// expiry. Entries are kept in memory; a logged-out token only needs to
// stay blocked for its remaining lifetime.
type TokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenBlacklist() *TokenBlacklist {
	bl := &TokenBlacklist{revoked: make(map[string]time.Time)}
	go bl.janitor()
	return bl
}

// Revoke blocks the token id until expiry.
func (b *TokenBlacklist) Revoke(jti string, expiry time.Time) {
	b.mu.Lock()
	b.revoked[jti] = expiry
	b.mu.Unlock()
}

// IsRevoked reports whether the token id is on the blacklist and the
// token has not yet expired on its own.
func (b *TokenBlacklist) IsRevoked(jti string) bool {
	b.mu.Lock()
	expiry, ok := b.revoked[jti]
	b.mu.Unlock()
	if !ok {
		return false
	}
	return time.Now().Before(expiry)
}

func (b *TokenBlacklist) janitor() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		b.mu.Lock()
		for jti, expiry := range b.revoked {
			if now.After(expiry) {
				delete(b.revoked, jti)
			}
		}
		b.mu.Unlock()
	}
}
