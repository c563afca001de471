package party

import (
	"fmt"
	"strings"
)

// ValidateCharacter checks the fields required to add a party member.
func ValidateCharacter(c Character) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if c.Level < MinLevel || c.Level > MaxLevel {
		return fmt.Errorf("%w: level %d outside %d-%d", ErrInvalidInput, c.Level, MinLevel, MaxLevel)
	}
	return nil
}
