package adversary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxChallengeRating is the highest CR in the 2024 rules.
const MaxChallengeRating = 30

// ChallengeRating is a CR stored as a decimal (0.125 for 1/8).
type ChallengeRating float64

var fractionLabels = map[ChallengeRating]string{
	0.125: "1/8",
	0.25:  "1/4",
	0.5:   "1/2",
	0.75:  "3/4",
}

// String renders fractional ratings as fractions and the rest as plain numbers.
func (cr ChallengeRating) String() string {
	if label, ok := fractionLabels[cr]; ok {
		return label
	}
	return strconv.FormatFloat(float64(cr), 'f', -1, 64)
}

// Valid reports whether cr is 0, one of the known fractions, or a whole number up to 30.
func (cr ChallengeRating) Valid() bool {
	if _, ok := fractionLabels[cr]; ok {
		return true
	}
	f := float64(cr)
	return f >= 0 && f <= MaxChallengeRating && f == math.Trunc(f)
}

// ParseChallengeRating accepts "1/8" style fractions or decimal numbers.
func ParseChallengeRating(s string) (ChallengeRating, error) {
	s = strings.TrimSpace(s)
	for value, label := range fractionLabels {
		if s == label {
			return value, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChallengeRating, s)
	}
	cr := ChallengeRating(f)
	if !cr.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChallengeRating, s)
	}
	return cr, nil
}
