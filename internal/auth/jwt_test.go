// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/trickortreat/internal/config"
)

// testJWTConfig returns a standard test security config for JWT
func testJWTConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret: "test-secret-key-that-is-at-least-32-characters-long",
		TokenTTL:  1 * time.Hour,
	}
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func int64Ptr(v int64) *int64 { return &v }

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
		wantTTL time.Duration
	}{
		{
			name:    "valid secret",
			cfg:     testJWTConfig(),
			wantTTL: time.Hour,
		},
		{
			name:    "default ttl",
			cfg:     &config.SecurityConfig{JWTSecret: "this_is_a_very_long_secret_key_with_32_plus_characters"},
			wantTTL: time.Hour,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{TokenTTL: time.Hour},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.timeout != tt.wantTTL {
				t.Errorf("timeout = %v, want %v", manager.timeout, tt.wantTTL)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestJWTManager(t)

	tests := []struct {
		name       string
		userID     int64
		providerID *int64
	}{
		{name: "member", userID: 7},
		{name: "provider", userID: 8, providerID: int64Ptr(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := manager.GenerateToken(tt.userID, tt.providerID)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("UserID = %d, want %d", claims.UserID, tt.userID)
			}
			if claims.Subject == "" {
				t.Error("expected subject claim")
			}
			switch {
			case tt.providerID == nil && claims.ProviderID != nil:
				t.Errorf("ProviderID = %d, want nil", *claims.ProviderID)
			case tt.providerID != nil && (claims.ProviderID == nil || *claims.ProviderID != *tt.providerID):
				t.Errorf("ProviderID = %v, want %d", claims.ProviderID, *tt.providerID)
			}
			if claims.HasProvider() != (tt.providerID != nil) {
				t.Errorf("HasProvider() = %v", claims.HasProvider())
			}
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	manager := newTestJWTManager(t)
	issued := time.Now().Add(-2 * time.Hour)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateToken(1, nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	manager.now = time.Now
	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	manager := newTestJWTManager(t)

	other, err := NewJWTManager(&config.SecurityConfig{JWTSecret: "a-completely-different-secret-of-32-chars!"})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	foreign, _ := other.GenerateToken(1, nil)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	zeroUser, _ := noUser.SignedString([]byte(testJWTConfig().JWTSecret))

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	foreignIssuer, _ := wrongIssuer.SignedString([]byte(testJWTConfig().JWTSecret))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"alg none", unsigned},
		{"no user id", zeroUser},
		{"wrong issuer", foreignIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Errorf("ValidateToken(%s) expected error", tt.name)
			}
		})
	}
}

func TestGenerateToken_ClaimNames(t *testing.T) {
	manager := newTestJWTManager(t)
	token, err := manager.GenerateToken(5, int64Ptr(9))
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		t.Fatalf("DecodeSegment() error = %v", err)
	}
	for _, want := range []string{`"userId":5`, `"treatProviderId":9`} {
		if !strings.Contains(string(payload), want) {
			t.Errorf("payload %s missing %s", payload, want)
		}
	}
}
