package models

import "time"

// Session binds an opaque token to a user until ExpiresAt
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry at the given moment
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
