package session

import (
	"fmt"
	"strings"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
)

// DefaultID is the builder used when a caller has no session id, as over stdio.
const DefaultID = "default"

// Action is what a builder command does
type Action string

const (
	ActionSave   Action = "save"
	ActionLoad   Action = "load"
	ActionDelete Action = "delete"
	ActionClear  Action = "clear"
)

// Target is which part of the builder a command acts on
type Target string

const (
	TargetParty     Target = "party"
	TargetAdversary Target = "adversary"
	TargetEncounter Target = "encounter"
)

// Collection returns the record collection a target saves to.
func (t Target) Collection() record.Collection {
	switch t {
	case TargetParty:
		return record.CollectionParties
	case TargetAdversary:
		return record.CollectionAdversaries
	default:
		return record.CollectionEncounters
	}
}

// Command is one of {save, load, delete, clear} x {party, adversary, encounter}.
// RecordID is required by load and delete, Name by save.
type Command struct {
	Action   Action
	Target   Target
	RecordID string
	Name     string
}

// ParseCommand checks action and target labels.
func ParseCommand(action, target string) (Command, error) {
	cmd := Command{
		Action: Action(strings.ToLower(strings.TrimSpace(action))),
		Target: Target(strings.ToLower(strings.TrimSpace(target))),
	}
	switch cmd.Action {
	case ActionSave, ActionLoad, ActionDelete, ActionClear:
	default:
		return Command{}, fmt.Errorf("%w: action %q", ErrUnknownCommand, action)
	}
	switch cmd.Target {
	case TargetParty, TargetAdversary, TargetEncounter:
	case "adversaries":
		cmd.Target = TargetAdversary
	default:
		return Command{}, fmt.Errorf("%w: target %q", ErrUnknownCommand, target)
	}
	return cmd, nil
}

func (c Command) String() string {
	return string(c.Action) + "-" + string(c.Target)
}

// State is a copy of one builder's current party, adversaries and settings.
type State struct {
	SessionID   string               `json:"session_id"`
	Party       []party.Character    `json:"party"`
	Adversaries []adversary.Entry    `json:"adversaries"`
	Difficulty  encounter.Difficulty `json:"difficulty"`
	Mode        encounter.Mode       `json:"mode"`
}

// Result reports what a command did. Found is false when load named a
// missing record; Removed is false when delete did.
type Result struct {
	Command  string `json:"command"`
	RecordID string `json:"record_id,omitempty"`
	Found    bool   `json:"found"`
	Removed  bool   `json:"removed"`
	State    State  `json:"state"`
}

// AddAdversaryRequest adds a catalog adversary by name, or an ad-hoc one
// when both ChallengeRating and ExperiencePoints are set.
type AddAdversaryRequest struct {
	Name             string
	ChallengeRating  *adversary.ChallengeRating
	ExperiencePoints *int
}
