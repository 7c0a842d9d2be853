// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/trickortreat/internal/config"
)

// tokenIssuer is the "iss" claim of every token this service signs.
const tokenIssuer = "trickortreat"

// Claims represents JWT claims.
//
// ProviderID is a snapshot of the user's provider link when the token was
// issued. Handlers that act on the provider read the live link instead.
type Claims struct {
	ProviderID *int64 `json:"treatProviderId,omitempty"`
	UserID     int64  `json:"userId"`
	jwt.RegisteredClaims
}

// HasProvider reports whether the token was issued to a linked provider.
func (c *Claims) HasProvider() bool {
	return c.ProviderID != nil
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	now     func() time.Time
	secret  []byte
	timeout time.Duration
}

// NewJWTManager creates a token manager signing with HMAC-SHA256.
//
// Returns an error if JWT_SECRET is empty. Config validation enforces the
// 32 character minimum.
//
//	jwtManager, err := auth.NewJWTManager(&cfg.Security)
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
//	}
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}

	timeout := cfg.TokenTTL
	if timeout <= 0 {
		timeout = time.Hour
	}

	return &JWTManager{
		now:     time.Now,
		secret:  []byte(secret),
		timeout: timeout,
	}, nil
}

// GenerateToken signs a token for userID. providerID may be nil.
//
// Token Claims:
//   - userId, treatProviderId
//   - sub: user id as a string
//   - exp: now + TOKEN_TTL (default 1h)
//   - iat, nbf: now
func (m *JWTManager) GenerateToken(userID int64, providerID *int64) (string, error) {
	now := m.now()
	claims := &Claims{
		ProviderID: providerID,
		UserID:     userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and extracts the user claims.
//
// Tokens signed with anything other than HMAC are rejected, as are expired
// tokens and tokens without a positive user id.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.UserID <= 0 {
		return nil, errors.New("token has no user id")
	}

	return claims, nil
}
