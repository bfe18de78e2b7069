package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"dayflow_backend/internals/helpers/apperr"
)

var (
	ErrTokenExpired = apperr.Authentication("TOKEN_EXPIRED", "Token expired, please sign in again")
	ErrTokenInvalid = apperr.Authentication("TOKEN_INVALID", "Invalid token")
)

// Claims carries the account id only. Role and status are read from the
// database on each request.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy that stamps iat/exp using now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *s
	clone.now = now
	return &clone
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(accountID uuid.UUID) (string, error) {
	now := s.now()
	claims := Claims{
		ID: accountID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the account id of a valid token. Expired tokens yield
// ErrTokenExpired; everything else that fails yields ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (uuid.UUID, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired.WithCause(err)
		}
		return uuid.Nil, ErrTokenInvalid.WithCause(err)
	}
	if !tok.Valid || claims.ExpiresAt == nil {
		return uuid.Nil, ErrTokenInvalid
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid.WithCause(err)
	}
	return id, nil
}
