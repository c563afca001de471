package redis

import (
	"context"
	"testing"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

// createTestClient creates an in-memory Redis client for testing
func createTestClient(t *testing.T) (Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := NewClient(mr.Addr(), &Options{MaxRetries: -1})
	require.NoError(t, err, "failed to create redis client")

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient("", nil)
	require.Error(t, err)
}

func TestRecordRepository_CreateGet(t *testing.T) {
	client, mr := createTestClient(t)
	ctx := context.Background()
	repo := NewRecordRepository(client, "test")
	_, err := repo.EnsureCollections(ctx, record.Collections())
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := &record.Record{
		ID:         "e1",
		Collection: record.CollectionEncounters,
		Name:       "Roadside ambush",
		Payload: record.Payload{
			Party:       []party.Character{{Name: "Ayla", Level: 3}},
			Adversaries: []adversary.Entry{{Name: "Bandit", ChallengeRating: 0.125, ExperiencePoints: 25, Quantity: 4}},
		},
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, rec))
	require.True(t, mr.Exists("test:records:encounters"))

	loaded, err := repo.Get(ctx, record.CollectionEncounters, "e1")
	require.NoError(t, err)
	require.Equal(t, rec.Name, loaded.Name)
	require.Equal(t, rec.Payload, loaded.Payload)
	require.True(t, now.Equal(loaded.CreatedAt))

	_, err = repo.Get(ctx, record.CollectionEncounters, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordRepository_CollectionMissing(t *testing.T) {
	client, _ := createTestClient(t)
	ctx := context.Background()
	repo := NewRecordRepository(client, "")

	err := repo.Create(ctx, &record.Record{ID: "p1", Collection: record.CollectionParties, Name: "Heroes"})
	require.ErrorIs(t, err, repository.ErrCollectionMissing)

	_, err = repo.List(ctx, record.CollectionParties)
	require.ErrorIs(t, err, repository.ErrCollectionMissing)
}

func TestRecordRepository_DuplicateAndDelete(t *testing.T) {
	client, _ := createTestClient(t)
	ctx := context.Background()
	repo := NewRecordRepository(client, "")
	created, err := repo.EnsureCollections(ctx, record.Collections())
	require.NoError(t, err)
	require.Equal(t, 3, created)
	created, err = repo.EnsureCollections(ctx, record.Collections())
	require.NoError(t, err)
	require.Zero(t, created)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &record.Record{ID: "b", Collection: record.CollectionParties, Name: "Heroes", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, &record.Record{ID: "a", Collection: record.CollectionParties, Name: "Heroes", CreatedAt: base}))
	require.ErrorIs(t, repo.Create(ctx, &record.Record{ID: "a", Collection: record.CollectionParties, Name: "Other"}), repository.ErrConflict)

	list, err := repo.List(ctx, record.CollectionParties)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].ID)

	require.NoError(t, repo.Delete(ctx, record.CollectionParties, "a"))
	require.ErrorIs(t, repo.Delete(ctx, record.CollectionParties, "a"), repository.ErrNotFound)
}

func TestRecordRepository_Unavailable(t *testing.T) {
	client, mr := createTestClient(t)
	ctx := context.Background()
	repo := NewRecordRepository(client, "")
	mr.Close()

	_, err := repo.EnsureCollections(ctx, record.Collections())
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestActivityRepository_LogList(t *testing.T) {
	client, _ := createTestClient(t)
	ctx := context.Background()
	repo := NewActivityRepository(client, "")

	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{Collection: "parties", RecordID: "p1", ActivityType: activity.TypeRecordSaved, Summary: "saved"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{Collection: "parties", RecordID: "p1", ActivityType: activity.TypeRecordDeleted, Summary: "deleted"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeCollectionsInitialized, Summary: "init"}))

	all, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, int64(3), all[0].ID)
	require.Equal(t, activity.TypeCollectionsInitialized, all[0].ActivityType)

	parties, err := repo.List(ctx, activity.ListActivityOptions{Collection: "parties", Limit: 1})
	require.NoError(t, err)
	require.Len(t, parties, 1)
	require.Equal(t, activity.TypeRecordDeleted, parties[0].ActivityType)

	paged, err := repo.List(ctx, activity.ListActivityOptions{Collection: "parties", Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, activity.TypeRecordSaved, paged[0].ActivityType)
}

func TestSearchRepository_Search(t *testing.T) {
	client, _ := createTestClient(t)
	ctx := context.Background()
	records := NewRecordRepository(client, "")
	_, err := records.EnsureCollections(ctx, record.Collections())
	require.NoError(t, err)
	require.NoError(t, records.Create(ctx, &record.Record{ID: "e1", Collection: record.CollectionEncounters, Name: "Goblin ambush"}))
	require.NoError(t, records.Create(ctx, &record.Record{ID: "a1", Collection: record.CollectionAdversaries, Name: "Goblins of the hill"}))
	require.NoError(t, records.Create(ctx, &record.Record{ID: "p1", Collection: record.CollectionParties, Name: "Tuesday group"}))

	search := NewSearchRepository(client, "")

	results, err := search.Search(ctx, "", "goblin", record.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "e1", results[0].Record.ID)

	results, err = search.Search(ctx, record.CollectionAdversaries, "goblin", record.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = search.Search(ctx, "", "goblin", record.SearchOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "a1", results[0].Record.ID)
}

func TestSearchRepository_MatchesWordPrefixesOnly(t *testing.T) {
	client, _ := createTestClient(t)
	ctx := context.Background()
	records := NewRecordRepository(client, "")
	_, err := records.EnsureCollections(ctx, record.Collections())
	require.NoError(t, err)
	require.NoError(t, records.Create(ctx, &record.Record{ID: "p1", Collection: record.CollectionParties, Name: "Beta Crew"}))
	require.NoError(t, records.Create(ctx, &record.Record{ID: "a1", Collection: record.CollectionAdversaries, Name: "Hobgoblin captain"}))
	require.NoError(t, records.Create(ctx, &record.Record{ID: "e1", Collection: record.CollectionEncounters, Name: "Cave-in (hard)"}))

	search := NewSearchRepository(client, "")

	for _, query := range []string{"rew", "goblin", "eta crew", "ave"} {
		results, err := search.Search(ctx, "", query, record.SearchOptions{})
		require.NoError(t, err)
		require.Empty(t, results, "query %q", query)
	}

	for query, id := range map[string]string{"cre": "p1", "beta cr": "p1", "hob cap": "a1", "in": "e1", "hard": "e1"} {
		results, err := search.Search(ctx, "", query, record.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		require.Equal(t, id, results[0].Record.ID, "query %q", query)
	}
}

func TestScore_ExactWordRanksAbovePrefix(t *testing.T) {
	exact, ok := score("Goblin ambush", []string{"goblin"})
	require.True(t, ok)
	prefix, ok := score("Goblins of the hill", []string{"goblin"})
	require.True(t, ok)
	require.Greater(t, exact, prefix)

	_, ok = score("Hobgoblins", []string{"goblin"})
	require.False(t, ok)
}

func TestRecordService_OnRedis(t *testing.T) {
	client, _ := createTestClient(t)
	ctx := context.Background()
	svc := record.NewService(
		NewRecordRepository(client, ""),
		NewActivityRepository(client, ""),
		NewSearchRepository(client, ""),
		nil,
	)
	require.NoError(t, svc.Init(ctx))

	payload := record.Payload{Members: []party.Character{{Name: "Ayla", Level: 3}}}
	first, err := svc.Save(ctx, record.CollectionParties, record.SaveRequest{Name: "Heroes", Payload: payload})
	require.NoError(t, err)
	second, err := svc.Save(ctx, record.CollectionParties, record.SaveRequest{Name: "Heroes", Payload: payload})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	got, found, err := svc.Get(ctx, record.CollectionParties, first)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, payload.Members, got.Payload.Members)

	removed, err := svc.Remove(ctx, record.CollectionParties, first)
	require.NoError(t, err)
	require.True(t, removed)

	_, found, err = svc.Get(ctx, record.CollectionParties, first)
	require.NoError(t, err)
	require.False(t, found)

	snap, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Parties, 1)
	require.Equal(t, second, snap.Parties[0].ID)
	require.Empty(t, snap.Encounters)
}
