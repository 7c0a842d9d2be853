// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package config

import (
	"fmt"
	"strings"
)

// maxPasswordBytes is the bcrypt input limit; longer passwords are rejected
// by bcrypt.GenerateFromPassword.
const maxPasswordBytes = 72

// PasswordPolicy defines requirements for account passwords.
type PasswordPolicy struct {
	// MinLength is the minimum password length in characters
	MinLength int

	// ForbidCommonPasswords blocks a short list of trivially guessable passwords
	ForbidCommonPasswords bool

	// ForbidEmailSimilarity rejects passwords that contain the email local part
	ForbidEmailSimilarity bool
}

// PasswordPolicy returns the account password policy derived from security settings.
func (s *SecurityConfig) PasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             s.PasswordMinLength,
		ForbidCommonPasswords: true,
		ForbidEmailSimilarity: true,
	}
}

// Validate checks a password against the policy. The returned error message
// is safe to show to the caller.
func (p PasswordPolicy) Validate(password, email string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password is required")
	}
	if len([]rune(password)) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", maxPasswordBytes)
	}
	if p.ForbidCommonPasswords && isCommonPassword(password) {
		return fmt.Errorf("password is too common and easily guessable")
	}
	if p.ForbidEmailSimilarity && email != "" && isSimilarToEmail(password, email) {
		return fmt.Errorf("password is too similar to email")
	}
	return nil
}

// commonPasswords lists trivially guessable picks.
var commonPasswords = map[string]bool{
	"password":     true,
	"password1":    true,
	"12345678":     true,
	"123456789":    true,
	"1234567890":   true,
	"qwerty123":    true,
	"iloveyou":     true,
	"halloween":    true,
	"trickortreat": true,
	"letmein1":     true,
	"welcome1":     true,
}

func isCommonPassword(password string) bool {
	return commonPasswords[strings.ToLower(password)]
}

// isSimilarToEmail reports whether the password contains the email local part
// (when that part is long enough to be meaningful).
func isSimilarToEmail(password, email string) bool {
	local := strings.ToLower(email)
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	if len(local) < 4 {
		return false
	}
	return strings.Contains(strings.ToLower(password), local)
}
