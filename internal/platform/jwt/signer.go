package jwt

import (
	"time"
)

// Claims represents the JWT claims that are processed for authentication.
type Claims struct {
	UserID string
	Staff  bool
}

// Signer defines methods for signing and verifying JWT tokens.
type Signer interface {
	Sign(claims Claims, duration time.Duration) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}
