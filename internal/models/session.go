package models

import "time"

// SessionToken is an opaque token pair issued at login. The values carry no
// decodable structure; the only operation the core performs on a token is
// the expiry check.
type SessionToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // epoch millis
}

// Expired reports whether the token has expired. The boundary is inclusive:
// a token whose expiry equals the current instant is already expired.
func (t SessionToken) Expired(now time.Time) bool {
	return now.UnixMilli() >= t.ExpiresAt
}

// Session is the authenticated state of one browser context. At most one
// exists at a time; a new login overwrites it.
type Session struct {
	Identity User         `json:"identity"`
	Token    SessionToken `json:"token"`
	IssuedAt time.Time    `json:"issued_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return s.Token.Expired(now)
}
