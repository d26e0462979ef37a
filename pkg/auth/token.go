package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskvault/taskvault/pkg/errkind"
)

// Claims is the signed payload embedded in an issued token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Principal reconstructs the authenticated principal from verified claims.
func (c *Claims) Principal() (Principal, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Principal{}, errkind.Wrap(errkind.InvalidToken, "invalid or expired token", fmt.Errorf("malformed subject claim %q: %w", c.Subject, err))
	}
	return Principal{SubjectID: id, Name: c.Name, Email: c.Email}, nil
}

// TokenService issues and verifies HS256-signed, time-bounded tokens. The
// signing secret is explicit constructor input with process lifetime; the
// service holds no other state and performs no I/O.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret and issuing
// tokens valid for ttl.
func NewTokenService(secret []byte, ttl time.Duration, issuer string) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue produces a compact signed token embedding the principal's identity
// and the validity window.
func (s *TokenService) Issue(p Principal) (string, error) {
	now := s.now()
	claims := Claims{
		Name:  p.Name,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.SubjectID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token, returning its claims. Fails
// with an InvalidToken error if the token is malformed, the signature does
// not match, or the token has expired.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errkind.Wrap(errkind.InvalidToken, "invalid or expired token", err)
	}
	if !parsed.Valid {
		return nil, errkind.New(errkind.InvalidToken, "invalid or expired token")
	}
	return claims, nil
}
