package session

import (
	"sync"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
)

// builder is one session's party, adversaries and calculator settings.
// mu guards the contents; lastActivity and inFlight are guarded by Service.mu.
type builder struct {
	mu          sync.Mutex
	party       *party.Roster
	adversaries *adversary.Roster
	difficulty  encounter.Difficulty
	mode        encounter.Mode

	lastActivity time.Time
	inFlight     int
}

func newBuilder(difficulty encounter.Difficulty, mode encounter.Mode, now time.Time) *builder {
	roster, _ := party.NewRoster()
	return &builder{
		party:        roster,
		adversaries:  adversary.NewRoster(),
		difficulty:   difficulty,
		mode:         mode,
		lastActivity: now,
	}
}

// state copies the builder; callers hold mu.
func (b *builder) state(id string) State {
	return State{
		SessionID:   id,
		Party:       b.party.Members(),
		Adversaries: b.adversaries.Entries(),
		Difficulty:  b.difficulty,
		Mode:        b.mode,
	}
}
