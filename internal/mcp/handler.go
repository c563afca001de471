package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// handler adapts tool calls onto the domain services.
type handler struct {
	services Services
}

func (h *handler) addCharacter(ctx context.Context, req *sdkmcp.CallToolRequest, in AddCharacterParams) (*sdkmcp.CallToolResult, AddCharacterResponse, error) {
	id := builderID(ctx, req)
	c, err := h.services.Builders.AddCharacter(id, party.Character{
		Name:    in.Name,
		Level:   in.Level,
		Species: in.Species,
		Class:   in.Class,
	})
	if err != nil {
		return nil, AddCharacterResponse{}, toolError(err)
	}
	return nil, AddCharacterResponse{Character: c, State: h.state(id)}, nil
}

func (h *handler) removeCharacter(ctx context.Context, req *sdkmcp.CallToolRequest, in RemoveCharacterParams) (*sdkmcp.CallToolResult, RemoveCharacterResponse, error) {
	id := builderID(ctx, req)
	c, err := h.services.Builders.RemoveCharacter(id, in.Index)
	if err != nil {
		return nil, RemoveCharacterResponse{}, toolError(err)
	}
	return nil, RemoveCharacterResponse{Removed: c, State: h.state(id)}, nil
}

func (h *handler) addAdversary(ctx context.Context, req *sdkmcp.CallToolRequest, in AddAdversaryParams) (*sdkmcp.CallToolResult, AddAdversaryResponse, error) {
	id := builderID(ctx, req)
	addReq := session.AddAdversaryRequest{Name: in.Name, ExperiencePoints: in.ExperiencePoints}
	if strings.TrimSpace(in.ChallengeRating) != "" {
		cr, err := adversary.ParseChallengeRating(in.ChallengeRating)
		if err != nil {
			return nil, AddAdversaryResponse{}, toolError(err)
		}
		addReq.ChallengeRating = &cr
	}
	entry, err := h.services.Builders.AddAdversary(id, addReq)
	if err != nil {
		return nil, AddAdversaryResponse{}, toolError(err)
	}
	return nil, AddAdversaryResponse{Entry: entry, State: h.state(id)}, nil
}

func (h *handler) removeAdversary(ctx context.Context, req *sdkmcp.CallToolRequest, in RemoveAdversaryParams) (*sdkmcp.CallToolResult, RemoveAdversaryResponse, error) {
	id := builderID(ctx, req)
	remaining, err := h.services.Builders.RemoveAdversary(id, in.Name)
	if err != nil {
		return nil, RemoveAdversaryResponse{}, toolError(err)
	}
	return nil, RemoveAdversaryResponse{Remaining: remaining, State: h.state(id)}, nil
}

func (h *handler) setDifficulty(ctx context.Context, req *sdkmcp.CallToolRequest, in SetDifficultyParams) (*sdkmcp.CallToolResult, EncounterResponse, error) {
	id := builderID(ctx, req)
	d, err := encounter.ParseDifficulty(in.Difficulty)
	if err == nil {
		err = h.services.Builders.SetDifficulty(id, d)
	}
	if err != nil {
		return nil, EncounterResponse{}, toolError(err)
	}
	return nil, h.encounter(id), nil
}

func (h *handler) setMode(ctx context.Context, req *sdkmcp.CallToolRequest, in SetModeParams) (*sdkmcp.CallToolResult, EncounterResponse, error) {
	id := builderID(ctx, req)
	m, err := encounter.ParseMode(in.Mode)
	if err == nil {
		err = h.services.Builders.SetMode(id, m)
	}
	if err != nil {
		return nil, EncounterResponse{}, toolError(err)
	}
	return nil, h.encounter(id), nil
}

func (h *handler) getEncounter(ctx context.Context, req *sdkmcp.CallToolRequest, _ GetEncounterParams) (*sdkmcp.CallToolResult, EncounterResponse, error) {
	return nil, h.encounter(builderID(ctx, req)), nil
}

func (h *handler) runCommand(ctx context.Context, req *sdkmcp.CallToolRequest, in RunCommandParams) (*sdkmcp.CallToolResult, RunCommandResponse, error) {
	cmd, err := session.ParseCommand(in.Action, in.Target)
	if err != nil {
		return nil, RunCommandResponse{}, toolError(err)
	}
	cmd.RecordID = in.RecordID
	cmd.Name = in.Name

	res, err := h.services.Builders.Execute(ctx, builderID(ctx, req), cmd)
	if err != nil {
		return nil, RunCommandResponse{}, toolError(err)
	}
	return nil, RunCommandResponse{
		Command:  res.Command,
		RecordID: res.RecordID,
		Found:    res.Found,
		Removed:  res.Removed,
		State:    toStateResponse(res.State),
	}, nil
}

func (h *handler) state(id string) StateResponse {
	return toStateResponse(h.services.Builders.State(id))
}

func (h *handler) encounter(id string) EncounterResponse {
	return EncounterResponse{
		State:   h.state(id),
		Summary: h.services.Builders.Summary(id),
	}
}

func (h *handler) calculateEncounter(_ context.Context, _ *sdkmcp.CallToolRequest, in CalculateEncounterParams) (*sdkmcp.CallToolResult, encounter.Summary, error) {
	label := in.Difficulty
	if label == "" {
		label = string(encounter.DifficultyModerate)
	}
	difficulty, err := h.services.Calculator.ParseDifficulty(label)
	if err != nil {
		return nil, encounter.Summary{}, toolError(err)
	}
	mode := encounter.ModeGroup
	if in.Mode != "" {
		m, err := encounter.ParseMode(in.Mode)
		if err != nil {
			return nil, encounter.Summary{}, toolError(err)
		}
		mode = m
	}

	members := make([]party.Character, 0, len(in.PartyLevels))
	for i, level := range in.PartyLevels {
		members = append(members, party.Character{Name: fmt.Sprintf("member %d", i+1), Level: level})
	}
	entries := make([]adversary.Entry, 0, len(in.Adversaries))
	for i, a := range in.Adversaries {
		if a.ExperiencePoints < 0 || a.Quantity < 0 {
			return nil, encounter.Summary{}, toolError(fmt.Errorf("%w: adversary %d has negative xp or quantity", adversary.ErrInvalidInput, i))
		}
		qty := a.Quantity
		if qty == 0 {
			qty = 1
		}
		entries = append(entries, adversary.Entry{Name: a.Name, ExperiencePoints: a.ExperiencePoints, Quantity: qty})
	}
	return nil, h.services.Calculator.Summarize(members, entries, difficulty, mode), nil
}

func (h *handler) saveRecord(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveRecordParams) (*sdkmcp.CallToolResult, SaveRecordResponse, error) {
	c, err := record.ParseCollection(in.Collection)
	if err != nil {
		return nil, SaveRecordResponse{}, toolError(err)
	}
	id, err := h.services.Records.Save(ctx, c, record.SaveRequest{ID: in.ID, Name: in.Name, Payload: in.Payload})
	if err != nil {
		return nil, SaveRecordResponse{}, toolError(err)
	}
	return nil, SaveRecordResponse{ID: id}, nil
}

func (h *handler) loadRecord(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordParams) (*sdkmcp.CallToolResult, LoadRecordResponse, error) {
	c, err := record.ParseCollection(in.Collection)
	if err != nil {
		return nil, LoadRecordResponse{}, toolError(err)
	}
	rec, found, err := h.services.Records.Get(ctx, c, in.ID)
	if err != nil {
		return nil, LoadRecordResponse{}, toolError(err)
	}
	if !found {
		return nil, LoadRecordResponse{Found: false}, nil
	}
	resp := toRecordResponse(*rec)
	return nil, LoadRecordResponse{Found: true, Record: &resp}, nil
}

func (h *handler) listRecords(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListRecordsParams) (*sdkmcp.CallToolResult, ListRecordsResponse, error) {
	c, err := record.ParseCollection(in.Collection)
	if err != nil {
		return nil, ListRecordsResponse{}, toolError(err)
	}
	records, err := h.services.Records.List(ctx, c)
	if err != nil {
		return nil, ListRecordsResponse{}, toolError(err)
	}
	refs := make([]RecordRefResponse, 0, len(records))
	for _, r := range records {
		refs = append(refs, toRecordRefResponse(r.Ref()))
	}
	return nil, ListRecordsResponse{Records: refs}, nil
}

func (h *handler) deleteRecord(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordParams) (*sdkmcp.CallToolResult, DeleteRecordResponse, error) {
	c, err := record.ParseCollection(in.Collection)
	if err != nil {
		return nil, DeleteRecordResponse{}, toolError(err)
	}
	removed, err := h.services.Records.Remove(ctx, c, in.ID)
	if err != nil {
		return nil, DeleteRecordResponse{}, toolError(err)
	}
	return nil, DeleteRecordResponse{Removed: removed}, nil
}

func (h *handler) loadAllRecords(ctx context.Context, _ *sdkmcp.CallToolRequest, _ LoadAllRecordsParams) (*sdkmcp.CallToolResult, LoadAllRecordsResponse, error) {
	snap, err := h.services.Records.LoadAll(ctx)
	if err != nil {
		return nil, LoadAllRecordsResponse{}, toolError(err)
	}
	return nil, LoadAllRecordsResponse{
		Parties:     toRecordResponses(snap.Parties),
		Adversaries: toRecordResponses(snap.Adversaries),
		Encounters:  toRecordResponses(snap.Encounters),
	}, nil
}

func (h *handler) searchRecords(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchRecordsParams) (*sdkmcp.CallToolResult, SearchRecordsResponse, error) {
	c, err := record.ParseCollection(in.Collection)
	if err != nil {
		return nil, SearchRecordsResponse{}, toolError(err)
	}
	results, err := h.services.Records.Search(ctx, c, in.Query, record.SearchOptions{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, SearchRecordsResponse{}, toolError(err)
	}
	out := make([]SearchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResultResponse{Record: toRecordRefResponse(r.Record), Rank: r.Rank})
	}
	return nil, SearchRecordsResponse{Results: out}, nil
}

func (h *handler) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityResponse, error) {
	opts := activity.ListActivityOptions{
		RecordID: in.RecordID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.Collection != "" {
		c, err := record.ParseCollection(in.Collection)
		if err != nil {
			return nil, RecentActivityResponse{}, toolError(err)
		}
		opts.Collection = string(c)
	}
	if in.Type != "" {
		t := activity.ActivityType(in.Type)
		switch t {
		case activity.TypeCollectionsInitialized, activity.TypeRecordSaved, activity.TypeRecordDeleted:
		default:
			return nil, RecentActivityResponse{}, toolError(fmt.Errorf("%w: activity type %q", activity.ErrInvalidInput, in.Type))
		}
		opts.ActivityType = &t
	}
	entries, err := h.services.Activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, RecentActivityResponse{}, toolError(err)
	}
	out := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toActivityEntryResponse(e))
	}
	return nil, RecentActivityResponse{Entries: out}, nil
}

func (h *handler) searchAdversaries(_ context.Context, _ *sdkmcp.CallToolRequest, in SearchAdversariesParams) (*sdkmcp.CallToolResult, SearchAdversariesResponse, error) {
	opts := adversary.FilterOptions{
		Query:   in.Query,
		Habitat: in.Habitat,
		Type:    in.Type,
		Group:   in.Group,
		Limit:   in.Limit,
	}
	if strings.TrimSpace(in.ChallengeRating) != "" {
		cr, err := adversary.ParseChallengeRating(in.ChallengeRating)
		if err != nil {
			return nil, SearchAdversariesResponse{}, toolError(err)
		}
		opts.ChallengeRating = &cr
	}
	matches := h.services.Catalog.Filter(opts)
	out := make([]AdversaryResponse, 0, len(matches))
	for _, a := range matches {
		out = append(out, toAdversaryResponse(a))
	}
	return nil, SearchAdversariesResponse{Adversaries: out}, nil
}

func (h *handler) characterOptions(_ context.Context, _ *sdkmcp.CallToolRequest, _ CharacterOptionsParams) (*sdkmcp.CallToolResult, CharacterOptionsResponse, error) {
	resp := CharacterOptionsResponse{Classes: h.services.Classes, Species: h.services.Species}
	if resp.Classes == nil {
		resp.Classes = []string{}
	}
	if resp.Species == nil {
		resp.Species = []string{}
	}
	return nil, resp, nil
}

func (h *handler) adversaryLookups(_ context.Context, _ *sdkmcp.CallToolRequest, _ AdversaryLookupsParams) (*sdkmcp.CallToolResult, AdversaryLookupsResponse, error) {
	l := h.services.Catalog.Lookups()
	crs := make([]string, 0, len(l.ChallengeRatings))
	for _, cr := range l.ChallengeRatings {
		crs = append(crs, cr.String())
	}
	return nil, AdversaryLookupsResponse{
		ChallengeRatings: crs,
		Habitats:         l.Habitats,
		Types:            l.Types,
		Groups:           l.Groups,
	}, nil
}
