package adversary

import (
	"fmt"
	"strings"
)

// Roster tracks adversaries added to an encounter, keyed by name.
// Adding a name already present increments its quantity; quantity never
// drops below one while the entry exists.
type Roster struct {
	order   []string
	entries map[string]*Entry
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{entries: make(map[string]*Entry)}
}

// Add inserts one of e (quantity is ignored) or bumps the existing count.
// It returns the entry after the change.
func (r *Roster) Add(e Entry) (Entry, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Quantity = 1
	if err := ValidateEntry(e); err != nil {
		return Entry{}, err
	}
	r.ensure()
	if existing, ok := r.entries[e.Name]; ok {
		existing.Quantity++
		return *existing, nil
	}
	stored := e
	r.entries[e.Name] = &stored
	r.order = append(r.order, e.Name)
	return stored, nil
}

// Remove drops one of the named adversary and returns the remaining quantity.
// The entry disappears when the quantity reaches zero.
func (r *Roster) Remove(name string) (int, error) {
	r.ensure()
	existing, ok := r.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotInRoster, name)
	}
	if existing.Quantity > 1 {
		existing.Quantity--
		return existing.Quantity, nil
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 0, nil
}

// Replace swaps the roster contents for entries. Duplicate names are merged
// by summing quantities. Nothing changes if any entry is invalid.
func (r *Roster) Replace(entries []Entry) error {
	next := NewRoster()
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if err := ValidateEntry(e); err != nil {
			return err
		}
		if existing, ok := next.entries[e.Name]; ok {
			existing.Quantity += e.Quantity
			continue
		}
		stored := e
		next.entries[e.Name] = &stored
		next.order = append(next.order, e.Name)
	}
	r.order, r.entries = next.order, next.entries
	return nil
}

// Clear removes every entry.
func (r *Roster) Clear() {
	r.order = nil
	r.entries = make(map[string]*Entry)
}

// Len returns the number of distinct adversaries.
func (r *Roster) Len() int {
	return len(r.order)
}

// Entries returns copies of the entries in insertion order.
func (r *Roster) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.entries[name])
	}
	return out
}

func (r *Roster) ensure() {
	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
}

// ValidateEntry checks an encounter entry has a name, a known CR, non-negative XP
// and a quantity of at least one.
func ValidateEntry(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if e.ExperiencePoints < 0 {
		return fmt.Errorf("%w: experience points must not be negative", ErrInvalidInput)
	}
	if e.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if !e.ChallengeRating.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidChallengeRating, e.ChallengeRating)
	}
	return nil
}
