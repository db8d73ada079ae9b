package domain

import "time"

// User represents a registered identity. PasswordHash is only populated on
// the internal lookup path used for login and registration checks; it is
// stripped before a user leaves the auth boundary.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy safe to hand to callers outside the auth boundary.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
