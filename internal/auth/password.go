package auth

import (
	"strings"
	"unicode"
)

// passwordSymbols is the fixed punctuation set a password must draw at least
// one character from.
const passwordSymbols = "!@#$%^&*()_+-=[]{}|;:'\",.<>/?`~\\"

const minPasswordLength = 8

// PasswordPolicy validates password strength and detects the shared bootstrap
// password. It is pure: construction fixes the default password for the life
// of the process.
type PasswordPolicy struct {
	defaultPassword string
}

func NewPasswordPolicy(defaultPassword string) *PasswordPolicy {
	return &PasswordPolicy{defaultPassword: defaultPassword}
}

// Validate returns the violated rules in fixed check order: length, uppercase,
// lowercase, digit, symbol. An empty slice means the password is acceptable.
func (p *PasswordPolicy) Validate(candidate string) []string {
	var violations []string

	if len(candidate) < minPasswordLength {
		violations = append(violations, "Password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "Password must contain at least one number")
	}
	if !hasSymbol {
		violations = append(violations, "Password must contain at least one special character")
	}

	return violations
}

func (p *PasswordPolicy) IsValid(candidate string) bool {
	return len(p.Validate(candidate)) == 0
}

// IsDefaultPassword is an exact plaintext match against the configured
// bootstrap password, used to refuse its re-adoption and to force a change
// when a user still logs in with it.
func (p *PasswordPolicy) IsDefaultPassword(candidate string) bool {
	return p.defaultPassword != "" && candidate == p.defaultPassword
}
