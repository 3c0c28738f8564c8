package jwt

import (
	"fmt"
	"time"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/pkg/security"
	"github.com/golang-jwt/jwt/v5"
)

const jtiLength = 16

// CustomClaims carries the staff flag next to the registered claims.
type CustomClaims struct {
	Staff bool `json:"staff,omitempty"`
	jwt.RegisteredClaims
}

// golangJWTSigner implements the Signer interface using the golang-jwt library.
type golangJWTSigner struct {
	method     jwt.SigningMethod
	key        string
	issuer     string
	randomizer security.Randomizer
}

var _ Signer = (*golangJWTSigner)(nil)

// NewGolangJWTSigner creates an HS256 signer with the provided JWT config and signing key.
func NewGolangJWTSigner(opts *config.JWTOptions, key string, randomizer security.Randomizer) Signer {
	return &golangJWTSigner{
		method:     jwt.SigningMethodHS256,
		key:        key,
		issuer:     opts.Issuer,
		randomizer: randomizer,
	}
}

// Sign generates a signed JWT token for the user that expires after duration.
func (s *golangJWTSigner) Sign(claims Claims, duration time.Duration) (string, error) {
	jti, err := s.randomizer.Token(jtiLength)
	if err != nil {
		return "", fmt.Errorf("generate jti with length %d: %w", jtiLength, err)
	}

	now := time.Now()
	custom := &CustomClaims{
		Staff: claims.Staff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    s.issuer,
			Subject:   claims.UserID,
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(s.method, custom)
	signedToken, err := token.SignedString([]byte(s.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signedToken, nil
}

// Verify parses and validates a JWT token string and returns the associated Claims if valid.
func (s *golangJWTSigner) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{s.method.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(s.key), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse with claims: %w", err)
	}

	customClaims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, fmt.Errorf("unknown claims type: %T", token.Claims)
	}

	if customClaims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &Claims{
		UserID: customClaims.Subject,
		Staff:  customClaims.Staff,
	}, nil
}
