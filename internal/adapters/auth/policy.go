package auth

import (
	"fmt"
	"unicode"

	"chancebackend/internal/domain"
)

type strengthPolicy struct {
	minLength int
}

// NewStrengthPolicy returns a PasswordPolicy requiring minLength characters
// with at least one lowercase letter, one uppercase letter, one digit, and
// one symbol.
func NewStrengthPolicy(minLength int) domain.PasswordPolicy {
	if minLength <= 0 {
		minLength = 8
	}
	return &strengthPolicy{minLength: minLength}
}

func (p *strengthPolicy) Validate(password string) error {
	if len(password) < p.minLength {
		return fmt.Errorf("password must be at least %d characters", p.minLength)
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return fmt.Errorf("password must contain lowercase, uppercase, digit, and symbol characters")
	}
	return nil
}
