package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncated longer input in old versions and errors in
// new ones; reject it up front either way.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned when the plain password exceeds
// bcrypt's input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword returns a bcrypt hash of the password. A cost outside
// bcrypt's valid range falls back to the default cost instead of
// failing at request time over a bad config value.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash against a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
