// Package encounter derives XP budget and balance figures for an encounter.
// Nothing here panics on empty or missing data; lookups that cannot be
// satisfied return an error wrapping ErrUnavailable.
package encounter

import (
	"math"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
)

// Difficulty index bounds and the index value of a perfectly matched budget.
const (
	MinDifficultyIndex = 0
	MaxDifficultyIndex = 10
	baselineIndex      = 6
)

// AveragePartyLevel returns floor(sum(level)/count), or 0 for an empty party.
func AveragePartyLevel(members []party.Character) int {
	if len(members) == 0 {
		return 0
	}
	total := 0
	for _, m := range members {
		total += m.Level
	}
	return int(math.Floor(float64(total) / float64(len(members))))
}

// XPBudget computes the party's budget for a difficulty.
// An empty party has a budget of 0. Missing table entries return a
// *LevelMissingError.
func XPBudget(members []party.Character, difficulty Difficulty, mode Mode, table XPTable) (int, error) {
	if len(members) == 0 {
		return 0, nil
	}

	switch mode {
	case ModeGroup:
		apl := AveragePartyLevel(members)
		if apl == 0 {
			return 0, &LevelMissingError{Level: apl, Difficulty: difficulty}
		}
		perCharacter, ok := table.Lookup(apl, difficulty)
		if !ok {
			return 0, &LevelMissingError{Level: apl, Difficulty: difficulty}
		}
		return perCharacter * len(members), nil
	case ModeIndividual:
		total := 0
		for _, m := range members {
			perCharacter, ok := table.Lookup(m.Level, difficulty)
			if !ok {
				return 0, &LevelMissingError{Level: m.Level, Difficulty: difficulty}
			}
			total += perCharacter
		}
		return total, nil
	default:
		return 0, ErrUnknownMode
	}
}

// TotalAdversaryXP sums experience points times quantity.
func TotalAdversaryXP(entries []adversary.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.ExperiencePoints * e.Quantity
	}
	return total
}

// Balance is budget minus spent XP; negative means over budget.
func Balance(budget, totalXP int) int {
	return budget - totalXP
}

// Classify maps a balance to surplus, deficit or exact.
func Classify(balance int) BalanceState {
	switch {
	case balance > 0:
		return BalanceSurplus
	case balance < 0:
		return BalanceDeficit
	default:
		return BalanceExact
	}
}

// DifficultyIndex scores how hard the encounter is on a 0-10 scale.
// A zero budget scores 0.
func DifficultyIndex(averagePartyLevel, totalXP, budget int) float64 {
	if budget == 0 {
		return MinDifficultyIndex
	}
	scaling := 2 + float64(10-min(10, averagePartyLevel))/2
	index := baselineIndex + (float64(totalXP-budget)/float64(budget))*scaling
	return math.Max(MinDifficultyIndex, math.Min(MaxDifficultyIndex, index))
}

// FlavorKey rounds a difficulty index to the nearest message key.
func FlavorKey(index float64) int {
	key := int(math.Round(index))
	return max(MinDifficultyIndex, min(MaxDifficultyIndex, key))
}
