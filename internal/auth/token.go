package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity fields embedded in a session token.
type Claims struct {
	Pseudo string `json:"pseudo"`
	UserID uint   `json:"id"`
	Admin  int    `json:"admin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the stateless session tokens carried in
// the user_token cookie. Validity is purely cryptographic: nothing is
// stored server-side and there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a token service signing with secret; tokens
// expire ttl after issuance.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs an HS256 token embedding pseudo, user id and the admin flag.
func (s *TokenService) Issue(pseudo string, id uint, admin int) (string, error) {
	now := time.Now()
	claims := &Claims{
		Pseudo: pseudo,
		UserID: id,
		Admin:  admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of a raw token and returns its
// claims. A malformed, tampered or expired token yields an error, never a
// panic.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// TTL reports the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }
