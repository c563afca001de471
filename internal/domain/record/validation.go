package record

import (
	"fmt"
	"strings"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
)

// ValidateSave checks a save request against the shape its collection stores.
func ValidateSave(c Collection, req SaveRequest) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrCollectionMissing, c)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	p := req.Payload
	switch c {
	case CollectionParties:
		if len(p.Party) > 0 || len(p.Adversaries) > 0 {
			return fmt.Errorf("%w: parties hold members only", ErrInvalidInput)
		}
		return validateMembers(p.Members)
	case CollectionAdversaries:
		if len(p.Members) > 0 || len(p.Party) > 0 {
			return fmt.Errorf("%w: adversary lists hold adversaries only", ErrInvalidInput)
		}
		return validateEntries(p.Adversaries)
	default:
		if len(p.Members) > 0 {
			return fmt.Errorf("%w: encounters store characters under party", ErrInvalidInput)
		}
		if err := validateMembers(p.Party); err != nil {
			return err
		}
		return validateEntries(p.Adversaries)
	}
}

func validateMembers(members []party.Character) error {
	for i, m := range members {
		if err := party.ValidateCharacter(m); err != nil {
			return fmt.Errorf("%w: member %d: %w", ErrInvalidInput, i, err)
		}
	}
	return nil
}

func validateEntries(entries []adversary.Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if err := adversary.ValidateEntry(e); err != nil {
			return fmt.Errorf("%w: adversary %d: %w", ErrInvalidInput, i, err)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("%w: adversary %q listed twice", ErrInvalidInput, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}
