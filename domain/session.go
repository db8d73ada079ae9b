package domain

import "time"

// Session maps an opaque token to a user for a bounded time window.
// ExpiresAt is persisted as epoch milliseconds.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session is past its expiry at the given
// reference time. The instant of expiry itself still counts as valid.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return s.ExpiresAt.Before(reference)
}
