// Package validate holds pure input validation for each entity. The
// functions here know nothing about HTTP or the database so they can
// be unit-tested without either.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrBlankTitle      = errors.New("title must not be blank")
	ErrBlankName       = errors.New("name must not be blank")
	ErrBadInterval     = errors.New("interval_days must be at least 1")
	ErrBlankUsername   = errors.New("username must not be blank")
	ErrBadUsername     = errors.New("username contains invalid characters")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)

// usernamePattern mirrors the account rules of the original service:
// hiragana, ASCII letters and digits, underscore and hyphen.
var usernamePattern = regexp.MustCompile(`^[\x{3040}-\x{309F}a-zA-Z0-9_-]+$`)

// trimLabel strips surrounding whitespace, including the ideographic
// space U+3000 that Japanese IMEs insert for "blank" input.
func trimLabel(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '　'
	})
}

// ListTitle returns the trimmed title or an error when it is blank.
func ListTitle(raw string) (string, error) {
	t := trimLabel(raw)
	if t == "" {
		return "", ErrBlankTitle
	}
	return t, nil
}

// PlaceName returns the trimmed place name or an error when blank.
func PlaceName(raw string) (string, error) {
	n := trimLabel(raw)
	if n == "" {
		return "", ErrBlankName
	}
	return n, nil
}

// IntervalDays checks the recurrence period is a positive number of days.
func IntervalDays(n int) error {
	if n < 1 {
		return ErrBadInterval
	}
	return nil
}

// Username returns the trimmed username or an error when it is blank
// or contains characters outside the allowed set.
func Username(raw string) (string, error) {
	u := trimLabel(raw)
	if u == "" {
		return "", ErrBlankUsername
	}
	if !usernamePattern.MatchString(u) {
		return "", ErrBadUsername
	}
	return u, nil
}

// Password enforces the minimum credential length, counted in
// characters rather than bytes so multi-byte input is measured the
// same as ASCII.
func Password(raw string) error {
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < 8 {
		return ErrPasswordTooWeak
	}
	return nil
}
