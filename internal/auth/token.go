package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

// Claims is the set of facts embedded in a signed bearer token.
// It is derived from the user record at login time and never persisted.
type Claims struct {
	// UserID is the unique identity id of the user.
	UserID uint64 `json:"id"`
	// Role is the access level of the user at issuance time.
	Role models.Role `json:"role"`

	jwt.RegisteredClaims
}

// TokenService issues and validates signed, expiring bearer tokens.
// The secret and TTL are fixed at construction time; the service is
// immutable afterwards and safe for unbounded concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue builds and signs a token for the given identity.
// The claims carry {sub: username, id, role, exp: now+ttl} and are
// signed with HMAC-SHA256.
func (s *TokenService) Issue(userID uint64, username string, role models.Role) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Validate recomputes the signature over the received header and payload
// and checks the claims. On any failure the caller must treat the request
// as unauthenticated; no field of a failed token is to be trusted.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := new(Claims)

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(_ *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	default:
		return nil, ErrTokenMalformed
	}

	if claims.Subject == "" || claims.UserID == 0 {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
