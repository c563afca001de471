package encounter_test

import (
	"testing"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"pgregory.net/rapid"
)

func TestPropertyAveragePartyLevelIsFlooredMean(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		levels := rapid.SliceOfN(rapid.IntRange(1, 20), 1, 12).Draw(t, "levels")
		sum := 0
		for _, l := range levels {
			sum += l
		}
		got := encounter.AveragePartyLevel(members(levels...))
		if got != sum/len(levels) {
			t.Fatalf("levels %v: got %d want %d", levels, got, sum/len(levels))
		}
	})
}

func TestPropertyTotalAdversaryXPIgnoresOrder(t *testing.T) {
	entry := rapid.Custom(func(t *rapid.T) adversary.Entry {
		return adversary.Entry{
			Name:             rapid.StringMatching(`[A-Z][a-z]{2,8}`).Draw(t, "name"),
			ExperiencePoints: rapid.IntRange(0, 50000).Draw(t, "xp"),
			Quantity:         rapid.IntRange(1, 20).Draw(t, "qty"),
		}
	})
	rapid.Check(t, func(t *rapid.T) {
		entries := rapid.SliceOf(entry).Draw(t, "entries")
		shuffled := rapid.Permutation(entries).Draw(t, "shuffled")
		if a, b := encounter.TotalAdversaryXP(entries), encounter.TotalAdversaryXP(shuffled); a != b {
			t.Fatalf("order changed total: %d vs %d", a, b)
		}
	})
}

func TestPropertyBalanceIsDifference(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		budget := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "budget")
		total := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "total")
		if got := encounter.Balance(budget, total); got != budget-total {
			t.Fatalf("balance(%d, %d) = %d", budget, total, got)
		}
	})
}

func TestPropertyDifficultyIndexBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		apl := rapid.IntRange(0, 20).Draw(t, "apl")
		total := rapid.IntRange(0, 1_000_000).Draw(t, "total")
		budget := rapid.IntRange(0, 1_000_000).Draw(t, "budget")
		idx := encounter.DifficultyIndex(apl, total, budget)
		if idx < 0 || idx > 10 {
			t.Fatalf("index %f out of range for apl=%d total=%d budget=%d", idx, apl, total, budget)
		}
		if budget == 0 && idx != 0 {
			t.Fatalf("zero budget produced index %f", idx)
		}
	})
}
