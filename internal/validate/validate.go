package validate

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrMissingField     = errors.New("please fill in all required fields")
	ErrInvalidEmail     = errors.New("enter a valid email address")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters")
	ErrAvatarTooLarge   = errors.New("please choose an image smaller than 2MB")
	ErrAvatarType       = errors.New("avatar must be an image")
	ErrInvalidProduct   = errors.New("product name and a positive price are required")
	ErrInvalidPayment   = errors.New("unknown payment method")
)

const (
	MinPasswordLen = 6
	// bcrypt ignores bytes past 72
	MaxPasswordLen = 72
	MaxAvatarBytes = 2 * 1024 * 1024
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{M}\p{N} _'.&+-]{1,50}$`)
	reID    = regexp.MustCompile(`^[0-9]{1,19}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password checks the length window only.
func Password(s string) error {
	switch {
	case len(s) < MinPasswordLen:
		return ErrPasswordTooShort
	case len(s) > MaxPasswordLen:
		return ErrPasswordTooLong
	}
	return nil
}

// Required reports ErrMissingField when any value is blank.
func Required(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return ErrMissingField
		}
	}
	return nil
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		s = string(r[:50])
	}
	return s, reQ.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// ID parses a numeric product identifier.
func ID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}

// Price parses a finite, non-negative amount.
func Price(s string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1e7 {
		return 0, false
	}
	return p, true
}

// Avatar checks an uploaded profile picture.
func Avatar(size int64, contentType string) error {
	if size > MaxAvatarBytes {
		return ErrAvatarTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrAvatarType
	}
	return nil
}
