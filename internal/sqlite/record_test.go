package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRecordRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTestRecords(t, db)

	now := time.Now().UTC()
	rec := &record.Record{
		ID:         "e1",
		Collection: record.CollectionEncounters,
		Name:       "Roadside ambush",
		Payload: record.Payload{
			Party:       []party.Character{{Name: "Ayla", Level: 3, Class: "Rogue"}},
			Adversaries: []adversary.Entry{{Name: "Bandit", ChallengeRating: 0.125, ExperiencePoints: 25, Quantity: 4}},
		},
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, rec))

	loaded, err := repo.Get(ctx, record.CollectionEncounters, "e1")
	require.NoError(t, err)
	require.Equal(t, rec.Name, loaded.Name)
	require.Equal(t, rec.Payload, loaded.Payload)
	require.True(t, now.Equal(loaded.CreatedAt))
}

func TestRecordRepository_CollectionMissing(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewRecordRepository(db)

	err := repo.Create(ctx, &record.Record{ID: "p1", Collection: record.CollectionParties, Name: "Heroes"})
	require.ErrorIs(t, err, repository.ErrCollectionMissing)

	_, err = repo.Get(ctx, record.CollectionParties, "p1")
	require.ErrorIs(t, err, repository.ErrCollectionMissing)

	_, err = repo.List(ctx, record.CollectionParties)
	require.ErrorIs(t, err, repository.ErrCollectionMissing)

	require.ErrorIs(t, repo.Delete(ctx, record.CollectionParties, "p1"), repository.ErrCollectionMissing)
}

func TestRecordRepository_EnsureCollectionsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTestRecords(t, db)

	require.NoError(t, repo.Create(ctx, &record.Record{ID: "p1", Collection: record.CollectionParties, Name: "Heroes"}))
	created, err := repo.EnsureCollections(ctx, record.Collections())
	require.NoError(t, err)
	require.Zero(t, created)

	list, err := repo.List(ctx, record.CollectionParties)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRecordRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTestRecords(t, db)

	rec := &record.Record{ID: "p1", Collection: record.CollectionParties, Name: "Heroes"}
	require.NoError(t, repo.Create(ctx, rec))
	require.ErrorIs(t, repo.Create(ctx, rec), repository.ErrConflict)

	// Ids are scoped to their collection.
	other := &record.Record{ID: "p1", Collection: record.CollectionEncounters, Name: "Heroes"}
	require.NoError(t, repo.Create(ctx, other))
}

func TestRecordRepository_DeleteAndList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTestRecords(t, db)

	require.NoError(t, repo.Create(ctx, &record.Record{ID: "a", Collection: record.CollectionAdversaries, Name: "Pack"}))
	require.NoError(t, repo.Create(ctx, &record.Record{ID: "b", Collection: record.CollectionAdversaries, Name: "Pack"}))

	require.NoError(t, repo.Delete(ctx, record.CollectionAdversaries, "a"))
	require.ErrorIs(t, repo.Delete(ctx, record.CollectionAdversaries, "a"), repository.ErrNotFound)

	_, err := repo.Get(ctx, record.CollectionAdversaries, "a")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx, record.CollectionAdversaries)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "b", list[0].ID)

	empty, err := repo.List(ctx, record.CollectionParties)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestRecordRepository_Closed(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	repo := NewRecordRepository(db)
	require.NoError(t, db.Close())

	_, err = repo.EnsureCollections(context.Background(), record.Collections())
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func characterGen() *rapid.Generator[party.Character] {
	return rapid.Custom(func(t *rapid.T) party.Character {
		return party.Character{
			Name:  rapid.StringMatching(`[A-Z][a-z]{1,10}`).Draw(t, "name"),
			Level: rapid.IntRange(party.MinLevel, party.MaxLevel).Draw(t, "level"),
			Class: rapid.SampledFrom([]string{"", "Wizard", "Fighter"}).Draw(t, "class"),
		}
	})
}

func entriesGen() *rapid.Generator[[]adversary.Entry] {
	crs := []adversary.ChallengeRating{0, 0.125, 0.25, 0.5, 1, 2, 5, 13, 30}
	return rapid.Custom(func(t *rapid.T) []adversary.Entry {
		names := rapid.SliceOfDistinct(rapid.StringMatching(`[A-Z][a-z]{2,8}`), func(s string) string { return s }).Draw(t, "names")
		entries := make([]adversary.Entry, 0, len(names))
		for _, n := range names {
			entries = append(entries, adversary.Entry{
				Name:             n,
				ChallengeRating:  rapid.SampledFrom(crs).Draw(t, "cr"),
				ExperiencePoints: rapid.IntRange(0, 155000).Draw(t, "xp"),
				Quantity:         rapid.IntRange(1, 12).Draw(t, "qty"),
			})
		}
		return entries
	})
}

// A saved record loads back with the same payload; deleting it makes it
// unreachable by id and by listing.
func TestRecordService_RoundTripProperty(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	activities := NewActivityRepository(db)
	svc := record.NewService(NewRecordRepository(db), activities, NewSearchRepository(db), nil)
	require.NoError(t, svc.Init(ctx))

	rapid.Check(t, func(t *rapid.T) {
		coll := rapid.SampledFrom(record.Collections()).Draw(t, "collection")
		var payload record.Payload
		switch coll {
		case record.CollectionParties:
			payload.Members = rapid.SliceOf(characterGen()).Draw(t, "members")
		case record.CollectionAdversaries:
			payload.Adversaries = entriesGen().Draw(t, "adversaries")
		default:
			payload.Party = rapid.SliceOf(characterGen()).Draw(t, "party")
			payload.Adversaries = entriesGen().Draw(t, "adversaries")
		}
		name := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,20}[a-z]`).Draw(t, "name")

		id, err := svc.Save(ctx, coll, record.SaveRequest{Name: name, Payload: payload})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		twin, err := svc.Save(ctx, coll, record.SaveRequest{Name: name, Payload: payload})
		if err != nil {
			t.Fatalf("save twin: %v", err)
		}
		if twin == id {
			t.Fatalf("same name produced the same id %s", id)
		}

		got, found, err := svc.Get(ctx, coll, id)
		if err != nil || !found {
			t.Fatalf("get: found=%v err=%v", found, err)
		}
		assertPayloadEqual(t, coll, payload, got.Payload)

		for _, target := range []string{id, twin} {
			removed, err := svc.Remove(ctx, coll, target)
			if err != nil || !removed {
				t.Fatalf("remove %s: removed=%v err=%v", target, removed, err)
			}
			if _, found, err := svc.Get(ctx, coll, target); err != nil || found {
				t.Fatalf("deleted record %s still loadable: found=%v err=%v", target, found, err)
			}
		}
		all, err := svc.List(ctx, coll)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, rec := range all {
			if rec.ID == id || rec.ID == twin {
				t.Fatalf("deleted record %s still listed", rec.ID)
			}
		}
	})
}

func assertPayloadEqual(t *rapid.T, coll record.Collection, want, got record.Payload) {
	switch coll {
	case record.CollectionParties:
		if len(want.Members) != len(got.Members) {
			t.Fatalf("members: want %v got %v", want.Members, got.Members)
		}
		for i := range want.Members {
			if want.Members[i] != got.Members[i] {
				t.Fatalf("member %d: want %v got %v", i, want.Members[i], got.Members[i])
			}
		}
	case record.CollectionAdversaries:
		assertEntriesEqual(t, want.Adversaries, got.Adversaries)
	default:
		if len(want.Party) != len(got.Party) {
			t.Fatalf("party: want %v got %v", want.Party, got.Party)
		}
		for i := range want.Party {
			if want.Party[i] != got.Party[i] {
				t.Fatalf("party member %d: want %v got %v", i, want.Party[i], got.Party[i])
			}
		}
		assertEntriesEqual(t, want.Adversaries, got.Adversaries)
	}
}

func assertEntriesEqual(t *rapid.T, want, got []adversary.Entry) {
	if len(want) != len(got) {
		t.Fatalf("adversaries: want %v got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("adversary %d: want %v got %v", i, want[i], got[i])
		}
	}
}
