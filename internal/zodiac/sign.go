package zodiac

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSign   = errors.New("unknown zodiac sign")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidPolicy = errors.New("invalid sign policy")
)

// Sign is a normalized zodiac identifier as used in upstream URLs.
type Sign string

const (
	Aries       Sign = "aries"
	Tauro       Sign = "tauro"
	Geminis     Sign = "geminis"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Escorpio    Sign = "escorpio"
	Sagitario   Sign = "sagitario"
	Capricornio Sign = "capricornio"
	Acuario     Sign = "acuario"
	Piscis      Sign = "piscis"
)

// Signs lists the twelve canonical signs in zodiac order.
var Signs = []Sign{
	Aries, Tauro, Geminis, Cancer, Leo, Virgo,
	Libra, Escorpio, Sagitario, Capricornio, Acuario, Piscis,
}

// English spellings accepted for convenience. Keys are already normalized.
var signAliases = map[string]Sign{
	"taurus":      Tauro,
	"gemini":      Geminis,
	"scorpio":     Escorpio,
	"sagittarius": Sagitario,
	"capricorn":   Capricornio,
	"aquarius":    Acuario,
	"pisces":      Piscis,
}

// Known reports whether s is one of the twelve canonical signs.
func (s Sign) Known() bool {
	for _, k := range Signs {
		if s == k {
			return true
		}
	}
	return false
}

func (s Sign) String() string { return string(s) }

// Policy decides what happens to sign tokens that are not canonical.
type Policy string

const (
	// PolicyPassthrough forwards unknown signs to the upstream site and lets
	// its missing page surface as content-not-found.
	PolicyPassthrough Policy = "passthrough"
	// PolicyStrict rejects unknown signs before any outbound call.
	PolicyStrict Policy = "strict"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPassthrough:
		return PolicyPassthrough, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// ParseSign normalizes raw and maps English aliases onto the canonical slug.
// Under PolicyStrict a token outside the canonical set yields ErrUnknownSign.
func (p Policy) ParseSign(raw string) (Sign, error) {
	n := Normalize(strings.TrimSpace(raw))
	if alias, ok := signAliases[n]; ok {
		return alias, nil
	}
	s := Sign(n)
	if p == PolicyStrict && !s.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSign, n)
	}
	return s, nil
}

// Period selects which daily view of a horoscope is requested.
type Period string

const (
	Today    Period = "today"
	Tomorrow Period = "tomorrow"
	Weekly   Period = "weekly"
)

var periodAliases = map[string]Period{
	"today":    Today,
	"hoy":      Today,
	"tomorrow": Tomorrow,
	"manana":   Tomorrow,
	"weekly":   Weekly,
	"semanal":  Weekly,
}

// ParsePeriod accepts English and Spanish period tokens in any case or accent.
func ParsePeriod(raw string) (Period, error) {
	n := Normalize(strings.TrimSpace(raw))
	if p, ok := periodAliases[n]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, n)
}

func (p Period) Valid() bool {
	switch p {
	case Today, Tomorrow, Weekly:
		return true
	}
	return false
}
