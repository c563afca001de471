package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
)

// Collection names one of the three record stores
type Collection string

const (
	CollectionParties     Collection = "parties"
	CollectionAdversaries Collection = "adversaries"
	CollectionEncounters  Collection = "encounters"
)

// Collections returns every collection in a fixed order.
func Collections() []Collection {
	return []Collection{CollectionParties, CollectionAdversaries, CollectionEncounters}
}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	switch c {
	case CollectionParties, CollectionAdversaries, CollectionEncounters:
		return true
	}
	return false
}

// ParseCollection accepts plural or singular collection names.
func ParseCollection(s string) (Collection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parties", "party":
		return CollectionParties, nil
	case "adversaries", "adversary":
		return CollectionAdversaries, nil
	case "encounters", "encounter":
		return CollectionEncounters, nil
	}
	return "", fmt.Errorf("%w: %q", ErrCollectionMissing, s)
}

// Payload is the saved snapshot. Parties use Members, adversary lists use
// Adversaries, and encounters use Party plus Adversaries.
type Payload struct {
	Members     []party.Character `json:"members,omitempty"`
	Party       []party.Character `json:"party,omitempty"`
	Adversaries []adversary.Entry `json:"adversaries,omitempty"`
}

// Characters returns the party members held by the payload, whichever
// field carries them.
func (p Payload) Characters() []party.Character {
	if len(p.Party) > 0 {
		return p.Party
	}
	return p.Members
}

// normalizedFor gives the collection's own fields non-nil slices.
func (p Payload) normalizedFor(c Collection) Payload {
	switch c {
	case CollectionParties:
		if p.Members == nil {
			p.Members = []party.Character{}
		}
	case CollectionAdversaries:
		if p.Adversaries == nil {
			p.Adversaries = []adversary.Entry{}
		}
	case CollectionEncounters:
		if p.Party == nil {
			p.Party = []party.Character{}
		}
		if p.Adversaries == nil {
			p.Adversaries = []adversary.Entry{}
		}
	}
	return p
}

// Record is a named, user-saved snapshot in one collection
type Record struct {
	ID         string     `json:"id"`
	Collection Collection `json:"collection"`
	Name       string     `json:"name"`
	Payload    Payload    `json:"payload"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Ref returns the lightweight reference for r.
func (r Record) Ref() RecordRef {
	return RecordRef{ID: r.ID, Collection: r.Collection, Name: r.Name, CreatedAt: r.CreatedAt}
}

// RecordRef is a lightweight reference to a record
type RecordRef struct {
	ID         string     `json:"id"`
	Collection Collection `json:"collection"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SearchResult represents a search hit with relevance
type SearchResult struct {
	Record RecordRef `json:"record"`
	Rank   float64   `json:"rank"`
}

// Snapshot holds every record of every collection.
type Snapshot struct {
	Parties     []Record `json:"parties"`
	Adversaries []Record `json:"adversaries"`
	Encounters  []Record `json:"encounters"`
}
