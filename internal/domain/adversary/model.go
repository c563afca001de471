package adversary

import (
	"regexp"
	"strings"
)

// Adversary is a catalog creature. Habitat, Type, Group and Associations are
// classification metadata used only for catalog queries.
type Adversary struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Habitat          []string        `json:"habitat"`
	Group            []string        `json:"group"`
	ChallengeRating  ChallengeRating `json:"cr"`
	ExperiencePoints int             `json:"xp"`
	Associations     []string        `json:"associations"`
	Source           string          `json:"source,omitempty"`
}

// Entry is an adversary added to an encounter with a quantity.
type Entry struct {
	Name             string          `json:"name"`
	ChallengeRating  ChallengeRating `json:"challenge_rating"`
	ExperiencePoints int             `json:"experience_points"`
	Quantity         int             `json:"quantity"`
}

// EntryFor builds a single-quantity entry from a catalog adversary.
func EntryFor(a Adversary) Entry {
	return Entry{
		Name:             a.Name,
		ChallengeRating:  a.ChallengeRating,
		ExperiencePoints: a.ExperiencePoints,
		Quantity:         1,
	}
}

var wordStart = regexp.MustCompile(`\b\w`)

// FormatText turns catalog keys like "fey_wild" into "Fey Wild".
func FormatText(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return wordStart.ReplaceAllStringFunc(s, strings.ToUpper)
}
