package adversary

import (
	"fmt"
	"regexp"
)

var (
	titleCase       = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)*$`)
	lowerUnderscore = regexp.MustCompile(`^[a-z]+(_[a-z]+)*$`)
)

// ValidationIssue describes one problem found in catalog data.
type ValidationIssue struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%d] %s: %s %s", i.Index, i.Name, i.Field, i.Message)
}

// ValidateCatalog checks catalog data formatting and returns every issue found.
func ValidateCatalog(adversaries []Adversary) []ValidationIssue {
	var issues []ValidationIssue
	add := func(i int, a Adversary, field, msg string) {
		issues = append(issues, ValidationIssue{Index: i, Name: a.Name, Field: field, Message: msg})
	}

	for i, a := range adversaries {
		if !titleCase.MatchString(a.Name) {
			add(i, a, "name", "should be title case")
		}
		if !lowerUnderscore.MatchString(a.Type) {
			add(i, a, "type", "should be lowercase_with_underscores")
		}
		if !allLowerUnderscore(a.Habitat) {
			add(i, a, "habitat", "should be lowercase_with_underscores values")
		}
		if !allLowerUnderscore(a.Group) {
			add(i, a, "group", "should be lowercase_with_underscores values")
		}
		if !allLowerUnderscore(a.Associations) {
			add(i, a, "associations", "should be lowercase_with_underscores values")
		}
		if !a.ChallengeRating.Valid() {
			add(i, a, "cr", "is not a known challenge rating")
		}
		if a.ExperiencePoints < 0 {
			add(i, a, "xp", "must not be negative")
		}
	}
	return issues
}

func allLowerUnderscore(values []string) bool {
	for _, v := range values {
		if !lowerUnderscore.MatchString(v) {
			return false
		}
	}
	return true
}
