package domain

import "time"

// Session is the capability an admin receives after a successful login.
// Every record-management operation requires one.
type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
