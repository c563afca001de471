package encounter

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty selects an XP table column. The set of labels comes from the table.
type Difficulty string

const (
	DifficultyLow      Difficulty = "low"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHigh     Difficulty = "high"
)

// ParseDifficulty normalises a label. "standard" is accepted for moderate.
func ParseDifficulty(s string) (Difficulty, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	switch label {
	case "":
		return "", fmt.Errorf("%w: empty label", ErrUnknownDifficulty)
	case "standard", "medium":
		return DifficultyModerate, nil
	}
	return Difficulty(label), nil
}

// Mode picks how the budget is derived from the party.
type Mode string

const (
	// ModeGroup multiplies the average-level value by party size.
	ModeGroup Mode = "group"
	// ModeIndividual sums each member's own level value.
	ModeIndividual Mode = "individual"
)

// ParseMode validates a mode label.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeGroup:
		return ModeGroup, nil
	case ModeIndividual:
		return ModeIndividual, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// XPTable maps level -> difficulty -> per-character XP.
type XPTable map[int]map[Difficulty]int

// Lookup returns the per-character value for level and difficulty.
func (t XPTable) Lookup(level int, d Difficulty) (int, bool) {
	row, ok := t[level]
	if !ok {
		return 0, false
	}
	v, ok := row[d]
	return v, ok
}

// Levels returns the table's levels in ascending order.
func (t XPTable) Levels() []int {
	levels := make([]int, 0, len(t))
	for level := range t {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// Difficulties returns the labels of the lowest level row, cheapest first.
func (t XPTable) Difficulties() []Difficulty {
	levels := t.Levels()
	if len(levels) == 0 {
		return nil
	}
	row := t[levels[0]]
	out := make([]Difficulty, 0, len(row))
	for d := range row {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if row[out[i]] != row[out[j]] {
			return row[out[i]] < row[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Has reports whether d is a column in the table.
func (t XPTable) Has(d Difficulty) bool {
	for _, row := range t {
		if _, ok := row[d]; ok {
			return true
		}
	}
	return false
}

// CheckDifficulty rejects a label that is not a column of the table.
func (t XPTable) CheckDifficulty(d Difficulty) error {
	if !t.Has(d) {
		return fmt.Errorf("%w: %q is not in the xp table", ErrUnknownDifficulty, d)
	}
	return nil
}

// Validate checks levels are positive, values non-negative and every row
// carries the same difficulties.
func (t XPTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidTable)
	}
	want := t.Difficulties()
	for level, row := range t {
		if level < 1 {
			return fmt.Errorf("%w: level %d", ErrInvalidTable, level)
		}
		if len(row) != len(want) {
			return fmt.Errorf("%w: level %d has %d difficulties, want %d", ErrInvalidTable, level, len(row), len(want))
		}
		for d, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: level %d %s is negative", ErrInvalidTable, level, d)
			}
		}
	}
	return nil
}

// BalanceState classifies the sign of a balance for presentation.
type BalanceState string

const (
	BalanceSurplus     BalanceState = "surplus"
	BalanceDeficit     BalanceState = "deficit"
	BalanceExact       BalanceState = "exact"
	BalanceUnavailable BalanceState = "unavailable"
)
