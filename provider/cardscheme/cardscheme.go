// Package cardscheme classifies card numbers into card scheme
// candidates by issuer identification number prefix.
package cardscheme

import (
	"errors"
	"strings"
)

// ErrUnknownScheme is returned when no known scheme matches the card
// number. Callers must treat this as a hard error; there is no default
// brand.
var ErrUnknownScheme = errors.New("cardscheme: card number does not match any known scheme")

// Candidate is one possible scheme classification for a card number.
// Name is the scheme's display name, e.g. "Visa" or "American Express".
type Candidate struct {
	Name string
}

// prefixRange matches card numbers whose leading digits fall inside an
// inclusive numeric range. lo and hi must have the same digit count.
type prefixRange struct {
	lo string
	hi string
}

type scheme struct {
	name     string
	prefixes []prefixRange
	lengths  []int
}

// Scheme tables follow the issuer identification ranges published by the
// card networks. Order matters: more specific networks are listed before
// the broad maestro ranges so the first candidate is the strongest match.
var schemes = []scheme{
	{
		name:     "Visa",
		prefixes: []prefixRange{{"4", "4"}},
		lengths:  []int{13, 16, 18, 19},
	},
	{
		name:     "Mastercard",
		prefixes: []prefixRange{{"51", "55"}, {"2221", "2720"}},
		lengths:  []int{16},
	},
	{
		name:     "American Express",
		prefixes: []prefixRange{{"34", "34"}, {"37", "37"}},
		lengths:  []int{15},
	},
	{
		name:     "Diners Club",
		prefixes: []prefixRange{{"300", "305"}, {"36", "36"}, {"38", "39"}},
		lengths:  []int{14, 16, 19},
	},
	{
		name:     "Discover",
		prefixes: []prefixRange{{"6011", "6011"}, {"644", "649"}, {"65", "65"}},
		lengths:  []int{16, 19},
	},
	{
		name:     "JCB",
		prefixes: []prefixRange{{"3528", "3589"}, {"2131", "2131"}, {"1800", "1800"}},
		lengths:  []int{16, 17, 18, 19},
	},
	{
		name:     "UnionPay",
		prefixes: []prefixRange{{"62", "62"}},
		lengths:  []int{14, 15, 16, 17, 18, 19},
	},
	{
		name:     "Maestro",
		prefixes: []prefixRange{{"50", "50"}, {"56", "59"}, {"63", "63"}, {"67", "67"}},
		lengths:  []int{12, 13, 14, 15, 16, 17, 18, 19},
	},
}

// Detect classifies a card number into scheme candidates, strongest
// first. Separator characters (spaces and dashes) are tolerated. A
// number no scheme recognizes yields ErrUnknownScheme.
func Detect(number string) ([]Candidate, error) {
	digits := normalize(number)
	if digits == "" {
		return nil, ErrUnknownScheme
	}

	var candidates []Candidate
	for _, s := range schemes {
		if s.matches(digits) {
			candidates = append(candidates, Candidate{Name: s.name})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrUnknownScheme
	}
	return candidates, nil
}

func (s scheme) matches(digits string) bool {
	lengthOK := false
	for _, l := range s.lengths {
		if len(digits) == l {
			lengthOK = true
			break
		}
	}
	if !lengthOK {
		return false
	}

	for _, r := range s.prefixes {
		if r.matches(digits) {
			return true
		}
	}
	return false
}

func (r prefixRange) matches(digits string) bool {
	n := len(r.lo)
	if len(digits) < n {
		return false
	}
	prefix := digits[:n]
	return prefix >= r.lo && prefix <= r.hi
}

// normalize strips separators and rejects anything that is not a run of
// digits.
func normalize(number string) string {
	var b strings.Builder
	for _, c := range number {
		switch {
		case c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-':
			// separator, skip
		default:
			return ""
		}
	}
	return b.String()
}
