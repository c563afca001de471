package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
)

// RecordStore is the subset of the record service the builder commands use.
type RecordStore interface {
	Save(ctx context.Context, c record.Collection, req record.SaveRequest) (string, error)
	Get(ctx context.Context, c record.Collection, id string) (*record.Record, bool, error)
	Remove(ctx context.Context, c record.Collection, id string) (bool, error)
}

// Defaults are the settings a new builder starts with.
type Defaults struct {
	Difficulty encounter.Difficulty
	Mode       encounter.Mode
}

// Service owns one builder per session id.
type Service struct {
	store    RecordStore
	calc     *encounter.Calculator
	catalog  *adversary.Catalog
	defaults Defaults
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	builders map[string]*builder
}

// NewService creates a session service. catalog may be nil, in which case
// adversaries can only be added ad hoc.
func NewService(
	store RecordStore,
	calc *encounter.Calculator,
	catalog *adversary.Catalog,
	defaults Defaults,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if defaults.Difficulty == "" {
		defaults.Difficulty = encounter.DifficultyModerate
	}
	if defaults.Mode == "" {
		defaults.Mode = encounter.ModeGroup
	}
	return &Service{
		store:    store,
		calc:     calc,
		catalog:  catalog,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
		builders: make(map[string]*builder),
	}
}

// with runs fn against the session's builder, creating it on first use.
// The builder counts as in flight until fn returns, so PruneIdle leaves it alone.
func (s *Service) with(id string, fn func(id string, b *builder) error) error {
	id = normalizeID(id)
	s.mu.Lock()
	b, ok := s.builders[id]
	if !ok {
		b = newBuilder(s.defaults.Difficulty, s.defaults.Mode, s.now())
		s.builders[id] = b
		s.logger.Debug("builder session started", "session_id", id)
	}
	b.lastActivity = s.now()
	b.inFlight++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		b.inFlight--
		b.lastActivity = s.now()
		s.mu.Unlock()
	}()

	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(id, b)
}

func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultID
	}
	return id
}

// State returns a copy of the session's builder.
func (s *Service) State(id string) State {
	var st State
	_ = s.with(id, func(id string, b *builder) error {
		st = b.state(id)
		return nil
	})
	return st
}

// Summary computes the encounter figures for the session's builder.
func (s *Service) Summary(id string) encounter.Summary {
	var sum encounter.Summary
	_ = s.with(id, func(_ string, b *builder) error {
		sum = s.calc.Summarize(b.party.Members(), b.adversaries.Entries(), b.difficulty, b.mode)
		return nil
	})
	return sum
}

// AddCharacter appends a party member.
func (s *Service) AddCharacter(id string, c party.Character) (party.Character, error) {
	var added party.Character
	err := s.with(id, func(_ string, b *builder) error {
		var err error
		added, err = b.party.Add(c)
		return err
	})
	return added, err
}

// RemoveCharacter deletes the party member at index.
func (s *Service) RemoveCharacter(id string, index int) (party.Character, error) {
	var removed party.Character
	err := s.with(id, func(_ string, b *builder) error {
		var err error
		removed, err = b.party.Remove(index)
		return err
	})
	return removed, err
}

// AddAdversary adds one adversary, bumping the quantity if it is already present.
func (s *Service) AddAdversary(id string, req AddAdversaryRequest) (adversary.Entry, error) {
	entry, err := s.resolveAdversary(req)
	if err != nil {
		return adversary.Entry{}, err
	}
	var added adversary.Entry
	err = s.with(id, func(_ string, b *builder) error {
		var err error
		added, err = b.adversaries.Add(entry)
		return err
	})
	return added, err
}

func (s *Service) resolveAdversary(req AddAdversaryRequest) (adversary.Entry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return adversary.Entry{}, fmt.Errorf("%w: adversary name is required", ErrInvalidInput)
	}
	if req.ChallengeRating != nil || req.ExperiencePoints != nil {
		if req.ChallengeRating == nil || req.ExperiencePoints == nil {
			return adversary.Entry{}, fmt.Errorf("%w: ad-hoc adversaries need both challenge rating and xp", ErrInvalidInput)
		}
		return adversary.Entry{
			Name:             name,
			ChallengeRating:  *req.ChallengeRating,
			ExperiencePoints: *req.ExperiencePoints,
			Quantity:         1,
		}, nil
	}
	if s.catalog == nil {
		return adversary.Entry{}, fmt.Errorf("%w: %s", ErrUnknownAdversary, name)
	}
	a, ok := s.catalog.Find(name)
	if !ok {
		return adversary.Entry{}, fmt.Errorf("%w: %s", ErrUnknownAdversary, name)
	}
	return adversary.EntryFor(a), nil
}

// RemoveAdversary drops one of the named adversary and returns the remaining quantity.
func (s *Service) RemoveAdversary(id, name string) (int, error) {
	var remaining int
	err := s.with(id, func(_ string, b *builder) error {
		var err error
		remaining, err = b.adversaries.Remove(strings.TrimSpace(name))
		return err
	})
	return remaining, err
}

// SetDifficulty selects the XP table column. The label must exist in the table.
func (s *Service) SetDifficulty(id string, d encounter.Difficulty) error {
	if err := s.calc.Table().CheckDifficulty(d); err != nil {
		return err
	}
	return s.with(id, func(_ string, b *builder) error {
		b.difficulty = d
		return nil
	})
}

// SetMode selects group or individual budgeting.
func (s *Service) SetMode(id string, m encounter.Mode) error {
	if m != encounter.ModeGroup && m != encounter.ModeIndividual {
		return fmt.Errorf("%w: %q", encounter.ErrUnknownMode, m)
	}
	return s.with(id, func(_ string, b *builder) error {
		b.mode = m
		return nil
	})
}

// Execute dispatches a builder command.
func (s *Service) Execute(ctx context.Context, id string, cmd Command) (Result, error) {
	var res Result
	err := s.with(id, func(id string, b *builder) error {
		res = Result{Command: cmd.String()}
		var err error
		switch cmd.Action {
		case ActionSave:
			err = s.save(ctx, b, cmd, &res)
		case ActionLoad:
			err = s.load(ctx, b, cmd, &res)
		case ActionDelete:
			err = s.delete(ctx, cmd, &res)
		case ActionClear:
			err = clearBuilder(b, cmd)
		default:
			err = fmt.Errorf("%w: action %q", ErrUnknownCommand, cmd.Action)
		}
		res.State = b.state(id)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	s.logger.DebugContext(ctx, "builder command", "session_id", normalizeID(id), "command", res.Command, "record_id", res.RecordID)
	return res, nil
}

func (s *Service) save(ctx context.Context, b *builder, cmd Command, res *Result) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("%w: a name is required to save", ErrInvalidInput)
	}
	var payload record.Payload
	switch cmd.Target {
	case TargetParty:
		payload.Members = b.party.Members()
	case TargetAdversary:
		payload.Adversaries = b.adversaries.Entries()
	case TargetEncounter:
		payload.Party = b.party.Members()
		payload.Adversaries = b.adversaries.Entries()
	default:
		return fmt.Errorf("%w: target %q", ErrUnknownCommand, cmd.Target)
	}
	id, err := s.store.Save(ctx, cmd.Target.Collection(), record.SaveRequest{Name: cmd.Name, Payload: payload})
	if err != nil {
		return err
	}
	res.RecordID = id
	return nil
}

func (s *Service) load(ctx context.Context, b *builder, cmd Command, res *Result) error {
	if err := checkTarget(cmd.Target); err != nil {
		return err
	}
	recordID := strings.TrimSpace(cmd.RecordID)
	if recordID == "" {
		return fmt.Errorf("%w: %s", ErrNoSelection, cmd)
	}
	res.RecordID = recordID

	rec, found, err := s.store.Get(ctx, cmd.Target.Collection(), recordID)
	if err != nil || !found {
		return err
	}
	res.Found = true

	// Build replacements first so a bad record leaves the builder untouched.
	var (
		nextParty       *party.Roster
		nextAdversaries *adversary.Roster
	)
	if cmd.Target != TargetAdversary {
		if nextParty, err = party.NewRoster(rec.Payload.Characters()...); err != nil {
			return fmt.Errorf("%w: saved party: %w", ErrInvalidInput, err)
		}
	}
	if cmd.Target != TargetParty {
		nextAdversaries = adversary.NewRoster()
		if err := nextAdversaries.Replace(rec.Payload.Adversaries); err != nil {
			return fmt.Errorf("%w: saved adversaries: %w", ErrInvalidInput, err)
		}
	}
	if nextParty != nil {
		b.party = nextParty
	}
	if nextAdversaries != nil {
		b.adversaries = nextAdversaries
	}
	return nil
}

func (s *Service) delete(ctx context.Context, cmd Command, res *Result) error {
	if err := checkTarget(cmd.Target); err != nil {
		return err
	}
	recordID := strings.TrimSpace(cmd.RecordID)
	if recordID == "" {
		return fmt.Errorf("%w: %s", ErrNoSelection, cmd)
	}
	res.RecordID = recordID
	removed, err := s.store.Remove(ctx, cmd.Target.Collection(), recordID)
	if err != nil {
		return err
	}
	res.Removed = removed
	return nil
}

func clearBuilder(b *builder, cmd Command) error {
	switch cmd.Target {
	case TargetParty:
		b.party.Clear()
	case TargetAdversary:
		b.adversaries.Clear()
	case TargetEncounter:
		b.party.Clear()
		b.adversaries.Clear()
	default:
		return fmt.Errorf("%w: target %q", ErrUnknownCommand, cmd.Target)
	}
	return nil
}

func checkTarget(t Target) error {
	switch t {
	case TargetParty, TargetAdversary, TargetEncounter:
		return nil
	}
	return fmt.Errorf("%w: target %q", ErrUnknownCommand, t)
}

// Sessions lists the ids of live builders in sorted order.
func (s *Service) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.builders))
	for id := range s.builders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close discards a session's builder.
func (s *Service) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.builders, normalizeID(id))
}

// PruneIdle discards builders untouched for longer than maxIdle and returns
// how many were removed. The default session and builders in use are kept.
func (s *Service) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for id, b := range s.builders {
		if id == DefaultID || b.inFlight > 0 {
			continue
		}
		if b.lastActivity.Before(cutoff) {
			delete(s.builders, id)
			pruned++
		}
	}
	return pruned
}
