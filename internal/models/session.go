package models

import "time"

type Session struct {
	UUID    string    `json:"uuid"`
	UserID  string    `json:"user_id"`
	Expires time.Time `json:"expires"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.Expires)
}
