package encounter

import (
	"errors"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
)

// Summary is every derived figure for the current party and adversaries.
type Summary struct {
	PartySize         int          `json:"party_size"`
	AveragePartyLevel int          `json:"average_party_level"`
	Difficulty        Difficulty   `json:"difficulty"`
	Mode              Mode         `json:"mode"`
	XPBudget          int          `json:"xp_budget"`
	BudgetAvailable   bool         `json:"budget_available"`
	UnavailableReason string       `json:"unavailable_reason,omitempty"`
	AdversaryCount    int          `json:"adversary_count"`
	TotalAdversaryXP  int          `json:"total_adversary_xp"`
	Balance           int          `json:"balance"`
	State             BalanceState `json:"state"`
	DifficultyIndex   float64      `json:"difficulty_index"`
	FlavorKey         int          `json:"flavor_key"`
	Flavor            string       `json:"flavor,omitempty"`
}

// Calculator binds an XP table and optional flavor messages.
type Calculator struct {
	table    XPTable
	messages map[int]string
}

// NewCalculator creates a calculator. messages may be nil.
func NewCalculator(table XPTable, messages map[int]string) *Calculator {
	return &Calculator{table: table, messages: messages}
}

// Table returns the calculator's XP table.
func (c *Calculator) Table() XPTable {
	return c.table
}

// ParseDifficulty normalises s and requires it to be a column of the bound table.
func (c *Calculator) ParseDifficulty(s string) (Difficulty, error) {
	d, err := ParseDifficulty(s)
	if err != nil {
		return "", err
	}
	if err := c.table.CheckDifficulty(d); err != nil {
		return "", err
	}
	return d, nil
}

// Budget computes the XP budget against the bound table.
func (c *Calculator) Budget(members []party.Character, difficulty Difficulty, mode Mode) (int, error) {
	return XPBudget(members, difficulty, mode, c.table)
}

// Summarize derives the full summary. An unavailable budget yields a neutral
// summary (zero budget, zero balance, state unavailable) with the reason set.
func (c *Calculator) Summarize(members []party.Character, entries []adversary.Entry, difficulty Difficulty, mode Mode) Summary {
	s := Summary{
		PartySize:         len(members),
		AveragePartyLevel: AveragePartyLevel(members),
		Difficulty:        difficulty,
		Mode:              mode,
		AdversaryCount:    countAdversaries(entries),
		TotalAdversaryXP:  TotalAdversaryXP(entries),
	}

	budget, err := c.Budget(members, difficulty, mode)
	if err != nil {
		s.State = BalanceUnavailable
		s.UnavailableReason = err.Error()
		if !errors.Is(err, ErrUnavailable) {
			s.UnavailableReason = "invalid request: " + err.Error()
		}
		s.Flavor = c.messages[MinDifficultyIndex]
		return s
	}

	s.XPBudget = budget
	s.BudgetAvailable = true
	s.Balance = Balance(budget, s.TotalAdversaryXP)
	s.State = Classify(s.Balance)
	s.DifficultyIndex = DifficultyIndex(s.AveragePartyLevel, s.TotalAdversaryXP, budget)
	s.FlavorKey = FlavorKey(s.DifficultyIndex)
	s.Flavor = c.messages[s.FlavorKey]
	return s
}

func countAdversaries(entries []adversary.Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}
