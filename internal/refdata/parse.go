package refdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"gopkg.in/yaml.v3"
)

// ErrMalformed indicates reference data that parsed but has the wrong shape.
var ErrMalformed = errors.New("malformed reference data")

// InvalidCatalogError carries every validation issue found in a catalog.
type InvalidCatalogError struct {
	Issues []adversary.ValidationIssue
}

func (e *InvalidCatalogError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}
	return fmt.Sprintf("catalog has %d issue(s): %s", len(e.Issues), strings.Join(lines, "; "))
}

// ParseXPTable reads rows of {level, <difficulty>: xp, ...}.
func ParseXPTable(raw []byte) (encounter.XPTable, error) {
	var doc struct {
		XPBudget []map[string]int `yaml:"xp_budget"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode xp table: %w", err)
	}

	table := make(encounter.XPTable, len(doc.XPBudget))
	for i, row := range doc.XPBudget {
		level, ok := row["level"]
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no level", ErrMalformed, i)
		}
		if _, dup := table[level]; dup {
			return nil, fmt.Errorf("%w: level %d listed twice", ErrMalformed, level)
		}
		values := make(map[encounter.Difficulty]int, len(row)-1)
		for key, xp := range row {
			if key == "level" {
				continue
			}
			values[encounter.Difficulty(strings.ToLower(key))] = xp
		}
		table[level] = values
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// ParseFlavor reads the difficulty index message table.
func ParseFlavor(raw []byte) (map[int]string, error) {
	var doc struct {
		Messages map[int]string `yaml:"messages"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode flavor messages: %w", err)
	}
	for key := range doc.Messages {
		if key < encounter.MinDifficultyIndex || key > encounter.MaxDifficultyIndex {
			return nil, fmt.Errorf("%w: message key %d outside 0-10", ErrMalformed, key)
		}
	}
	if doc.Messages == nil {
		doc.Messages = map[int]string{}
	}
	return doc.Messages, nil
}

// ParseCatalog reads {"creatures": [...]} and rejects data with validation issues.
func ParseCatalog(raw []byte) ([]adversary.Adversary, error) {
	var doc struct {
		Creatures []adversary.Adversary `json:"creatures"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if doc.Creatures == nil {
		return nil, fmt.Errorf("%w: creatures is not an array", ErrMalformed)
	}
	if issues := adversary.ValidateCatalog(doc.Creatures); len(issues) > 0 {
		return nil, &InvalidCatalogError{Issues: issues}
	}
	return doc.Creatures, nil
}

// ParseCharacters reads the class and species choice lists.
func ParseCharacters(raw []byte) (classes, species []string, err error) {
	var doc struct {
		Classes []string `yaml:"classes"`
		Species []string `yaml:"species"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode character options: %w", err)
	}
	return nonNil(doc.Classes), nonNil(doc.Species), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
