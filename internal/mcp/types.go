package mcp

import (
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
)

// Builder tools

type AddCharacterParams struct {
	Name    string `json:"name" jsonschema:"character name"`
	Level   int    `json:"level,omitempty" jsonschema:"character level 1-20, defaults to 5"`
	Species string `json:"species,omitempty" jsonschema:"species display name"`
	Class   string `json:"class,omitempty" jsonschema:"class display name"`
}

type AddCharacterResponse struct {
	Character party.Character `json:"character"`
	State     StateResponse   `json:"state"`
}

type RemoveCharacterParams struct {
	Index int `json:"index" jsonschema:"zero-based position in the party"`
}

type RemoveCharacterResponse struct {
	Removed party.Character `json:"removed"`
	State   StateResponse   `json:"state"`
}

type AddAdversaryParams struct {
	Name             string `json:"name" jsonschema:"catalog adversary name, or any name for an ad-hoc adversary"`
	ChallengeRating  string `json:"challenge_rating,omitempty" jsonschema:"ad-hoc challenge rating such as 1/4 or 3"`
	ExperiencePoints *int   `json:"experience_points,omitempty" jsonschema:"ad-hoc experience points"`
}

type AddAdversaryResponse struct {
	Entry adversary.Entry `json:"entry"`
	State StateResponse   `json:"state"`
}

type RemoveAdversaryParams struct {
	Name string `json:"name" jsonschema:"adversary name as shown in the builder"`
}

type RemoveAdversaryResponse struct {
	Remaining int           `json:"remaining"`
	State     StateResponse `json:"state"`
}

type SetDifficultyParams struct {
	Difficulty string `json:"difficulty" jsonschema:"low, moderate or high"`
}

type SetModeParams struct {
	Mode string `json:"mode" jsonschema:"group or individual"`
}

type GetEncounterParams struct{}

// EncounterResponse pairs the builder contents with the derived figures.
type EncounterResponse struct {
	State   StateResponse     `json:"state"`
	Summary encounter.Summary `json:"summary"`
}

type RunCommandParams struct {
	Action   string `json:"action" jsonschema:"save, load, delete or clear"`
	Target   string `json:"target" jsonschema:"party, adversary or encounter"`
	RecordID string `json:"record_id,omitempty" jsonschema:"record to load or delete"`
	Name     string `json:"name,omitempty" jsonschema:"name to save under"`
}

type RunCommandResponse struct {
	Command  string        `json:"command"`
	RecordID string        `json:"record_id,omitempty"`
	Found    bool          `json:"found"`
	Removed  bool          `json:"removed"`
	State    StateResponse `json:"state"`
}

// StateResponse is a builder's party, adversaries and settings.
type StateResponse struct {
	SessionID   string            `json:"session_id"`
	Party       []party.Character `json:"party"`
	Adversaries []adversary.Entry `json:"adversaries"`
	Difficulty  string            `json:"difficulty"`
	Mode        string            `json:"mode"`
}

func toStateResponse(st session.State) StateResponse {
	resp := StateResponse{
		SessionID:   st.SessionID,
		Party:       st.Party,
		Adversaries: st.Adversaries,
		Difficulty:  string(st.Difficulty),
		Mode:        string(st.Mode),
	}
	if resp.Party == nil {
		resp.Party = []party.Character{}
	}
	if resp.Adversaries == nil {
		resp.Adversaries = []adversary.Entry{}
	}
	return resp
}

// Calculator

type CalculateEncounterParams struct {
	PartyLevels []int                 `json:"party_levels" jsonschema:"level of each party member"`
	Adversaries []CalculatorAdversary `json:"adversaries,omitempty" jsonschema:"adversaries with xp and quantity"`
	Difficulty  string                `json:"difficulty,omitempty" jsonschema:"low, moderate or high; defaults to moderate"`
	Mode        string                `json:"mode,omitempty" jsonschema:"group or individual; defaults to group"`
}

type CalculatorAdversary struct {
	Name             string `json:"name,omitempty"`
	ExperiencePoints int    `json:"experience_points"`
	Quantity         int    `json:"quantity,omitempty" jsonschema:"defaults to 1"`
}

// Store tools

type SaveRecordParams struct {
	Collection string         `json:"collection" jsonschema:"parties, adversaries or encounters"`
	ID         string         `json:"id,omitempty" jsonschema:"record id; generated when omitted"`
	Name       string         `json:"name" jsonschema:"display name"`
	Payload    record.Payload `json:"payload" jsonschema:"members for parties, adversaries for adversary lists, party and adversaries for encounters"`
}

type SaveRecordResponse struct {
	ID string `json:"id"`
}

type RecordParams struct {
	Collection string `json:"collection" jsonschema:"parties, adversaries or encounters"`
	ID         string `json:"id" jsonschema:"record id"`
}

type LoadRecordResponse struct {
	Found  bool            `json:"found"`
	Record *RecordResponse `json:"record,omitempty"`
}

type ListRecordsParams struct {
	Collection string `json:"collection" jsonschema:"parties, adversaries or encounters"`
}

type ListRecordsResponse struct {
	Records []RecordRefResponse `json:"records"`
}

type DeleteRecordResponse struct {
	Removed bool `json:"removed"`
}

type LoadAllRecordsParams struct{}

type LoadAllRecordsResponse struct {
	Parties     []RecordResponse `json:"parties"`
	Adversaries []RecordResponse `json:"adversaries"`
	Encounters  []RecordResponse `json:"encounters"`
}

type SearchRecordsParams struct {
	Collection string `json:"collection" jsonschema:"parties, adversaries or encounters"`
	Query      string `json:"query" jsonschema:"word prefixes to match in record names"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

type SearchRecordsResponse struct {
	Results []SearchResultResponse `json:"results"`
}

type SearchResultResponse struct {
	Record RecordRefResponse `json:"record"`
	Rank   float64           `json:"rank"`
}

type RecentActivityParams struct {
	Collection string `json:"collection,omitempty"`
	RecordID   string `json:"record_id,omitempty"`
	Type       string `json:"type,omitempty" jsonschema:"collections_initialized, record_saved or record_deleted"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

type RecentActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

type ActivityEntryResponse struct {
	ID         int64  `json:"id"`
	Collection string `json:"collection,omitempty"`
	RecordID   string `json:"record_id,omitempty"`
	Type       string `json:"type"`
	Summary    string `json:"summary"`
	CreatedAt  string `json:"created_at"`
}

// RecordResponse is a full record with an RFC 3339 timestamp.
type RecordResponse struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	Name       string         `json:"name"`
	Payload    record.Payload `json:"payload"`
	CreatedAt  string         `json:"created_at"`
}

type RecordRefResponse struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toRecordResponse(r record.Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		Collection: string(r.Collection),
		Name:       r.Name,
		Payload:    r.Payload,
		CreatedAt:  formatTime(r.CreatedAt),
	}
}

func toRecordResponses(records []record.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out
}

func toRecordRefResponse(r record.RecordRef) RecordRefResponse {
	return RecordRefResponse{
		ID:         r.ID,
		Collection: string(r.Collection),
		Name:       r.Name,
		CreatedAt:  formatTime(r.CreatedAt),
	}
}

func toActivityEntryResponse(e activity.ActivityEntry) ActivityEntryResponse {
	return ActivityEntryResponse{
		ID:         e.ID,
		Collection: e.Collection,
		RecordID:   e.RecordID,
		Type:       string(e.ActivityType),
		Summary:    e.Summary,
		CreatedAt:  formatTime(e.CreatedAt),
	}
}

// Catalog tools

type SearchAdversariesParams struct {
	Query           string `json:"query,omitempty" jsonschema:"case-insensitive name substring"`
	ChallengeRating string `json:"challenge_rating,omitempty" jsonschema:"exact challenge rating such as 1/2 or 5"`
	Habitat         string `json:"habitat,omitempty"`
	Type            string `json:"type,omitempty"`
	Group           string `json:"group,omitempty"`
	Limit           int    `json:"limit,omitempty"`
}

type SearchAdversariesResponse struct {
	Adversaries []AdversaryResponse `json:"adversaries"`
}

// AdversaryResponse is a catalog adversary with its CR shown as a label.
type AdversaryResponse struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Habitat          []string `json:"habitat"`
	Group            []string `json:"group"`
	ChallengeRating  string   `json:"challenge_rating"`
	ExperiencePoints int      `json:"experience_points"`
	// TypeLabel is Type formatted for display, e.g. "Monstrosity".
	TypeLabel string `json:"type_label"`
}

func toAdversaryResponse(a adversary.Adversary) AdversaryResponse {
	resp := AdversaryResponse{
		Name:             a.Name,
		Type:             a.Type,
		Habitat:          a.Habitat,
		Group:            a.Group,
		ChallengeRating:  a.ChallengeRating.String(),
		ExperiencePoints: a.ExperiencePoints,
		TypeLabel:        adversary.FormatText(a.Type),
	}
	if resp.Habitat == nil {
		resp.Habitat = []string{}
	}
	if resp.Group == nil {
		resp.Group = []string{}
	}
	return resp
}

type AdversaryLookupsParams struct{}

type AdversaryLookupsResponse struct {
	ChallengeRatings []string `json:"challenge_ratings"`
	Habitats         []string `json:"habitats"`
	Types            []string `json:"types"`
	Groups           []string `json:"groups"`
}

type CharacterOptionsParams struct{}

// CharacterOptionsResponse lists the suggested class and species names.
type CharacterOptionsResponse struct {
	Classes []string `json:"classes"`
	Species []string `json:"species"`
}
