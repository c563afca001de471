package party

import "strings"

// Roster is the ordered list of party members being built.
// Members are immutable once added; they can only be removed.
type Roster struct {
	members []Character
}

// NewRoster creates a roster seeded with members. Invalid members are rejected.
func NewRoster(members ...Character) (*Roster, error) {
	r := &Roster{}
	for _, m := range members {
		if _, err := r.Add(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add validates and appends a member, returning the stored copy.
// A zero level is replaced with DefaultLevel.
func (r *Roster) Add(c Character) (Character, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Level == 0 {
		c.Level = DefaultLevel
	}
	if err := ValidateCharacter(c); err != nil {
		return Character{}, err
	}
	r.members = append(r.members, c)
	return c, nil
}

// Remove deletes the member at index and returns it.
func (r *Roster) Remove(index int) (Character, error) {
	if index < 0 || index >= len(r.members) {
		return Character{}, ErrMemberNotFound
	}
	removed := r.members[index]
	r.members = append(r.members[:index], r.members[index+1:]...)
	return removed, nil
}

// Replace swaps the whole roster for members, e.g. after loading a saved party.
// Nothing changes if any member is invalid.
func (r *Roster) Replace(members []Character) error {
	next, err := NewRoster(members...)
	if err != nil {
		return err
	}
	r.members = next.members
	return nil
}

// Clear removes every member.
func (r *Roster) Clear() {
	r.members = nil
}

// Len returns the number of members.
func (r *Roster) Len() int {
	return len(r.members)
}

// Members returns a copy of the members in insertion order.
func (r *Roster) Members() []Character {
	out := make([]Character, len(r.members))
	copy(out, r.members)
	return out
}
