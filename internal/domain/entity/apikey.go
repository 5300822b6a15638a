package entity

import "time"

// APIKey is a long-lived bearer credential for service-to-service calls.
// The raw secret is shown once at creation; only a SHA-256 hash is stored.
// Revocation flips IsActive instead of deleting the row, preserving audit
// history.
type APIKey struct {
	ID         int64      `json:"api_key_id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	KeyHash    string     `json:"-"`
	KeyPrefix  string     `json:"key_prefix"`
	Scopes     []string   `json:"scopes"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   bool       `json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Expired reports whether the key has an expiry in the past.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}

// Usable reports whether the key may authenticate requests.
func (k *APIKey) Usable(now time.Time) bool {
	return k.IsActive && !k.Expired(now)
}

// HasScope reports whether the key grants any of the given scopes.
func (k *APIKey) HasScope(required ...string) bool {
	for _, want := range required {
		for _, got := range k.Scopes {
			if got == want {
				return true
			}
		}
	}

	return false
}
