package adversary_test

import (
	"testing"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() *adversary.Catalog {
	return adversary.NewCatalog([]adversary.Adversary{
		{Name: "Wolf", Type: "beast", Habitat: []string{"forest", "grassland"}, Group: []string{"animals"}, ChallengeRating: 0.25, ExperiencePoints: 50},
		{Name: "Ogre", Type: "giant", Habitat: []string{"hill"}, Group: []string{"giants"}, ChallengeRating: 2, ExperiencePoints: 450},
		{Name: "Dire Wolf", Type: "beast", Habitat: []string{"forest", "hill"}, Group: []string{"animals"}, ChallengeRating: 1, ExperiencePoints: 200},
		{Name: "Goblin Boss", Type: "fey", Habitat: []string{"forest", "underdark"}, Group: []string{"goblinoids"}, ChallengeRating: 1, ExperiencePoints: 200},
	})
}

func TestCatalog_Find(t *testing.T) {
	c := sampleCatalog()
	a, ok := c.Find("dire wolf")
	require.True(t, ok)
	require.Equal(t, 200, a.ExperiencePoints)

	_, ok = c.Find("Tarrasque")
	require.False(t, ok)
}

func TestCatalog_Filter(t *testing.T) {
	c := sampleCatalog()

	names := func(list []adversary.Adversary) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.Name)
		}
		return out
	}

	require.Equal(t, []string{"Wolf", "Dire Wolf"}, names(c.Filter(adversary.FilterOptions{Query: "WOLF"})))
	require.Equal(t, []string{"Dire Wolf", "Goblin Boss"}, names(c.Filter(adversary.FilterOptions{Habitat: "forest", ChallengeRating: ptrCR(1)})))
	require.Equal(t, []string{"Ogre", "Dire Wolf"}, names(c.Filter(adversary.FilterOptions{Habitat: "hill"})))
	require.Equal(t, []string{"Wolf"}, names(c.Filter(adversary.FilterOptions{Group: "animals", Limit: 1})))
	require.Empty(t, c.Filter(adversary.FilterOptions{Type: "dragon"}))
	require.Len(t, c.Filter(adversary.FilterOptions{}), 4)
}

func TestCatalog_Lookups(t *testing.T) {
	l := sampleCatalog().Lookups()
	require.Equal(t, []adversary.ChallengeRating{0.25, 1, 2}, l.ChallengeRatings)
	require.Equal(t, []string{"forest", "grassland", "hill", "underdark"}, l.Habitats)
	require.Equal(t, []string{"beast", "fey", "giant"}, l.Types)
	require.Equal(t, []string{"animals", "giants", "goblinoids"}, l.Groups)
}

func TestValidateCatalog(t *testing.T) {
	issues := adversary.ValidateCatalog([]adversary.Adversary{
		{Name: "Wolf", Type: "beast", Habitat: []string{"forest"}, Group: []string{"animals"}, ChallengeRating: 0.25, ExperiencePoints: 50},
		{Name: "bad name", Type: "Beast", Habitat: []string{"Forest"}, ChallengeRating: 1.5, ExperiencePoints: -1},
	})
	require.Len(t, issues, 5)
	for _, issue := range issues {
		require.Equal(t, 1, issue.Index)
	}
	require.Equal(t, "name", issues[0].Field)
}

func ptrCR(v adversary.ChallengeRating) *adversary.ChallengeRating {
	return &v
}
