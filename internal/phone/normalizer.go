// Package phone canonicalizes user-typed phone numbers to international form.
package phone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPhone is returned when the input cannot be turned into a plausible international number.
var ErrInvalidPhone = errors.New("invalid phone number")

const maxDigits = 15

// Config holds the national numbering rules used for bare local numbers.
type Config struct {
	CountryCode   string `mapstructure:"country_code"`
	MinDigits     int    `mapstructure:"min_digits"`
	MobilePattern string `mapstructure:"mobile_pattern"`
}

// DefaultConfig returns the Moroccan numbering rules.
func DefaultConfig() Config {
	return Config{
		CountryCode:   "212",
		MinDigits:     10,
		MobilePattern: `^[5-7][0-9]{8}$`,
	}
}

// Normalizer maps raw input to "+<digits>". It is deterministic and idempotent.
type Normalizer struct {
	countryCode string
	minDigits   int
	mobile      *regexp.Regexp
}

var separators = strings.NewReplacer(
	" ", "", "\t", "", "\n", "", "\r", "",
	"-", "", ".", "", "(", "", ")", "", "/", "",
)

// New builds a Normalizer from cfg.
func New(cfg Config) (*Normalizer, error) {
	if cfg.CountryCode == "" || strings.Trim(cfg.CountryCode, "0123456789") != "" {
		return nil, fmt.Errorf("country code %q must be digits", cfg.CountryCode)
	}
	if cfg.MinDigits <= len(cfg.CountryCode) || cfg.MinDigits > maxDigits {
		return nil, fmt.Errorf("min digits %d out of range", cfg.MinDigits)
	}
	mobile, err := regexp.Compile(cfg.MobilePattern)
	if err != nil {
		return nil, fmt.Errorf("compile mobile pattern: %w", err)
	}
	return &Normalizer{
		countryCode: cfg.CountryCode,
		minDigits:   cfg.MinDigits,
		mobile:      mobile,
	}, nil
}

// MustNew is like New but panics on a bad config.
func MustNew(cfg Config) *Normalizer {
	n, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return n
}

// Normalize returns the canonical form of raw or ErrInvalidPhone.
func (n *Normalizer) Normalize(raw string) (string, error) {
	s := separators.Replace(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPhone)
	}

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}

	cc := n.countryCode
	switch {
	case strings.HasPrefix(s, "+"):
	case strings.HasPrefix(s, cc):
		s = "+" + s
	case strings.HasPrefix(s, "0"):
		s = "+" + cc + s[1:]
	case n.mobile.MatchString(s):
		s = "+" + cc + s
	default:
		s = "+" + s
	}

	// +212 0661... carries a redundant trunk prefix
	if rest, ok := strings.CutPrefix(s, "+"+cc); ok && strings.HasPrefix(rest, "0") {
		s = "+" + cc + strings.TrimLeft(rest, "0")
	}

	digits := s[1:]
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return "", fmt.Errorf("%w: %q contains non-digit characters", ErrInvalidPhone, raw)
	}
	if len(digits) < n.minDigits || len(digits) > maxDigits {
		return "", fmt.Errorf("%w: %q has %d digits", ErrInvalidPhone, raw, len(digits))
	}
	return s, nil
}

// Valid reports whether raw normalizes without error.
func (n *Normalizer) Valid(raw string) bool {
	_, err := n.Normalize(raw)
	return err == nil
}
