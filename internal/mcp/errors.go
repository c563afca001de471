package mcp

import (
	"errors"
	"fmt"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
)

// Error codes reported in tool results.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeCollectionMissing  = "COLLECTION_MISSING"
	CodeBudgetUnavailable  = "BUDGET_UNAVAILABLE"
	CodeDuplicateID        = "DUPLICATE_ID"
	CodeNoSelection        = "NO_SELECTION"
	CodeNotFound           = "NOT_FOUND"
	CodeUnknownAdversary   = "UNKNOWN_ADVERSARY"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case errors.Is(err, record.ErrStorageUnavailable), errors.Is(err, repository.ErrUnavailable):
		return &APIError{Code: CodeStorageUnavailable, Message: msg, RecoveryHint: "Check the storage backend is reachable, then retry"}
	case errors.Is(err, record.ErrCollectionMissing):
		return &APIError{Code: CodeCollectionMissing, Message: msg, RecoveryHint: "Use parties, adversaries or encounters"}
	case errors.Is(err, record.ErrDuplicateID):
		return &APIError{Code: CodeDuplicateID, Message: msg, RecoveryHint: "Omit id to have one generated"}
	case errors.Is(err, encounter.ErrUnavailable):
		return &APIError{Code: CodeBudgetUnavailable, Message: msg, RecoveryHint: "Party levels must be covered by the XP table"}
	case errors.Is(err, session.ErrNoSelection):
		return &APIError{Code: CodeNoSelection, Message: msg, RecoveryHint: "Pass record_id; list_records shows saved ids"}
	case errors.Is(err, session.ErrUnknownAdversary):
		return &APIError{Code: CodeUnknownAdversary, Message: msg, RecoveryHint: "Use search_adversaries, or pass challenge_rating and experience_points"}
	case errors.Is(err, party.ErrMemberNotFound), errors.Is(err, adversary.ErrNotInRoster):
		return &APIError{Code: CodeNotFound, Message: msg, RecoveryHint: "Call get_encounter to see the current builder"}
	case errors.Is(err, record.ErrInvalidInput),
		errors.Is(err, party.ErrInvalidInput),
		errors.Is(err, adversary.ErrInvalidInput),
		errors.Is(err, adversary.ErrInvalidChallengeRating),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, session.ErrUnknownCommand),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, encounter.ErrUnknownDifficulty),
		errors.Is(err, encounter.ErrUnknownMode):
		return &APIError{Code: CodeInvalidInput, Message: msg}
	default:
		return nil
	}
}

// toolError returns the mapped error, or err itself when it has no code.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
