package service

import (
	"fmt"
	"time"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = 24 * time.Hour

// tokenClaims is the signed payload: {id, email, role, iat, exp}.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for c and returns it with its expiry.
func (m *TokenManager) Issue(c models.Claims) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies signature, algorithm and expiry. Every failure is the same
// Unauthorized error.
func (m *TokenManager) Parse(accessToken string) (models.Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return models.Claims{}, &errs.Error{Kind: errs.KindUnauthorized, Message: "invalid or expired token", Cause: err}
	}
	if claims.UserID <= 0 || !claims.Role.Valid() {
		return models.Claims{}, errs.Unauthorized("invalid or expired token")
	}
	return models.Claims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
