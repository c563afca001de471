package party_test

import (
	"testing"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/stretchr/testify/require"
)

func TestRoster_AddAndRemove(t *testing.T) {
	r := &party.Roster{}

	added, err := r.Add(party.Character{Name: "  Mira Vale ", Level: 3, Species: "Elf", Class: "Wizard"})
	require.NoError(t, err)
	require.Equal(t, "Mira Vale", added.Name)

	_, err = r.Add(party.Character{Name: "Bram", Level: 5})
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	removed, err := r.Remove(0)
	require.NoError(t, err)
	require.Equal(t, "Mira Vale", removed.Name)
	require.Equal(t, []party.Character{{Name: "Bram", Level: 5}}, r.Members())
}

func TestRoster_AddDefaultsLevel(t *testing.T) {
	r := &party.Roster{}
	added, err := r.Add(party.Character{Name: "Ash"})
	require.NoError(t, err)
	require.Equal(t, party.DefaultLevel, added.Level)
}

func TestRoster_AddRejectsInvalid(t *testing.T) {
	r := &party.Roster{}

	_, err := r.Add(party.Character{Name: "   ", Level: 3})
	require.ErrorIs(t, err, party.ErrInvalidInput)

	_, err = r.Add(party.Character{Name: "Too High", Level: 21})
	require.ErrorIs(t, err, party.ErrInvalidInput)

	_, err = r.Add(party.Character{Name: "Negative", Level: -1})
	require.ErrorIs(t, err, party.ErrInvalidInput)

	require.Zero(t, r.Len())
}

func TestRoster_RemoveOutOfRange(t *testing.T) {
	r := &party.Roster{}
	_, err := r.Remove(0)
	require.ErrorIs(t, err, party.ErrMemberNotFound)
	_, err = r.Remove(-1)
	require.ErrorIs(t, err, party.ErrMemberNotFound)
}

func TestRoster_ReplaceIsAllOrNothing(t *testing.T) {
	r, err := party.NewRoster(party.Character{Name: "Keep", Level: 2})
	require.NoError(t, err)

	err = r.Replace([]party.Character{{Name: "Fine", Level: 4}, {Name: "", Level: 4}})
	require.ErrorIs(t, err, party.ErrInvalidInput)
	require.Equal(t, "Keep", r.Members()[0].Name)

	require.NoError(t, r.Replace([]party.Character{{Name: "New", Level: 7}}))
	require.Equal(t, "New", r.Members()[0].Name)

	r.Clear()
	require.Zero(t, r.Len())
}

func TestRoster_MembersIsACopy(t *testing.T) {
	r, err := party.NewRoster(party.Character{Name: "Orig", Level: 1})
	require.NoError(t, err)

	members := r.Members()
	members[0].Name = "Changed"
	require.Equal(t, "Orig", r.Members()[0].Name)
}
