package models

import "time"

// Token is an opaque bearer credential. Validity is always evaluated
// against the current clock at use time; expired tokens simply sit in the
// store until revoked.
type Token struct {
	ID      string    `json:"id"`
	Phone   string    `json:"phone"`
	Expires time.Time `json:"expires"`
}

// ExpiredAt reports whether the token is expired as of now.
func (t *Token) ExpiredAt(now time.Time) bool {
	return !t.Expires.After(now)
}
