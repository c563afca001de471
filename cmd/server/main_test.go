package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/refdata"
	"github.com/RawAnimal/EncounterBuilder/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "encounters.db")
	t.Setenv("ENCOUNTER_CONFIG_PATH", "")
	t.Setenv("ENCOUNTER_SQLITE_PATH", dbPath)
	t.Setenv("ENCOUNTER_LOG_LEVEL", "error")
	return dbPath
}

func TestRunCalc(t *testing.T) {
	data, err := refdata.Embedded()
	require.NoError(t, err)
	calc := encounter.NewCalculator(data.XPTable, data.Flavor)

	sum, err := runCalc(calc, data.Catalog, calcOptions{
		levels:      []int{3, 5, 4},
		adversaries: []string{"Ogre", "ogre"},
		difficulty:  "moderate",
		mode:        "group",
	})
	require.NoError(t, err)
	require.Equal(t, 1125, sum.XPBudget)
	require.Equal(t, 900, sum.TotalAdversaryXP)
	require.Equal(t, 2, sum.AdversaryCount)

	sum, err = runCalc(calc, data.Catalog, calcOptions{levels: []int{5}, xp: []int{100, 200}, difficulty: "low", mode: "individual"})
	require.NoError(t, err)
	require.Equal(t, 500, sum.XPBudget)
	require.Equal(t, 300, sum.TotalAdversaryXP)

	_, err = runCalc(calc, data.Catalog, calcOptions{adversaries: []string{"Tarrasque"}, difficulty: "low", mode: "group"})
	require.ErrorContains(t, err, "not in the catalog")

	_, err = runCalc(calc, data.Catalog, calcOptions{difficulty: "low", mode: "solo"})
	require.ErrorIs(t, err, encounter.ErrUnknownMode)

	_, err = runCalc(calc, data.Catalog, calcOptions{levels: []int{4}, difficulty: "deadly", mode: "group"})
	require.ErrorIs(t, err, encounter.ErrUnknownDifficulty)
}

func TestLoadBase_RejectsDifficultyMissingFromTable(t *testing.T) {
	isolate(t)
	t.Setenv("ENCOUNTER_DEFAULT_DIFFICULTY", "deadly")

	_, err := loadBase("")
	require.ErrorIs(t, err, encounter.ErrUnknownDifficulty)
	require.ErrorContains(t, err, "rules.difficulty")
}

func TestCalcCommand_Text(t *testing.T) {
	isolate(t)
	out, err := run(t, "calc", "--levels", "3,5,4", "--adversary", "Ogre", "--adversary", "Ogre")
	require.NoError(t, err)
	require.Contains(t, out, "Budget:      1125 XP (moderate, group)")
	require.Contains(t, out, "Balance:     +225 (surplus)")
}

func TestCalcCommand_JSON(t *testing.T) {
	isolate(t)
	out, err := run(t, "calc", "--levels", "25", "--json")
	require.NoError(t, err)

	var sum encounter.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	require.False(t, sum.BudgetAvailable)
	require.Equal(t, encounter.BalanceUnavailable, sum.State)
}

func TestRecordsCommands(t *testing.T) {
	dbPath := isolate(t)
	ctx := context.Background()

	db, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	svc := record.NewService(sqlite.NewRecordRepository(db), sqlite.NewActivityRepository(db), nil, nil)
	require.NoError(t, svc.Init(ctx))
	_, err = svc.Save(ctx, record.CollectionParties, record.SaveRequest{
		ID:      "p-1",
		Name:    "Dawn Patrol",
		Payload: record.Payload{Members: []party.Character{{Name: "Ayla", Level: 3}}},
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := run(t, "records", "list", "parties")
	require.NoError(t, err)
	require.Contains(t, out, "p-1")
	require.Contains(t, out, "Dawn Patrol")

	out, err = run(t, "records", "delete", "parties", "p-1")
	require.NoError(t, err)
	require.Contains(t, out, "deleted parties/p-1")

	out, err = run(t, "records", "delete", "party", "p-1")
	require.NoError(t, err)
	require.Contains(t, out, "no parties record")

	_, err = run(t, "records", "list", "campaigns")
	require.ErrorIs(t, err, record.ErrCollectionMissing)

	db, err = sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()
	initType := activity.TypeCollectionsInitialized
	inits, err := sqlite.NewActivityRepository(db).List(ctx, activity.ListActivityOptions{ActivityType: &initType})
	require.NoError(t, err)
	require.Len(t, inits, 1)
}
