//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "time"

// AccessToken is a catalog row granting scoped, session-less entry to one
// content area. Rows are created and toggled by administrators; the token
// exchange only ever reads them. The gate never deletes rows.
type AccessToken struct {
	Token     string     `json:"token"                db:"token"`
	Area      string     `json:"area"                 db:"area"`
	Active    bool       `json:"active"               db:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	Note      string     `json:"note"                 db:"note"`
	CreatedAt time.Time  `json:"created_at"           db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"           db:"updated_at"`
}

// Expired reports whether the token has an expiry instant in the past
// relative to now. A nil ExpiresAt means the token never expires.
func (t AccessToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
