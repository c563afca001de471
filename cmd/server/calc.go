package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
)

type calcOptions struct {
	levels      []int
	adversaries []string
	xp          []int
	difficulty  string
	mode        string
	asJSON      bool
}

func newCalcCmd() *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate an encounter budget and balance",
		Example: `  encounter-architect calc --levels 3,5,4 --adversary Ogre --adversary Ogre
  encounter-architect calc --levels 5,5,5,5 --xp 1100 --difficulty high --mode individual`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadBase("")
			if err != nil {
				return err
			}
			defer a.Close()

			sum, err := runCalc(a.calc, a.data.Catalog, opts)
			if err != nil {
				return err
			}
			if opts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&opts.levels, "levels", nil, "party member levels, e.g. 3,5,4")
	cmd.Flags().StringArrayVar(&opts.adversaries, "adversary", nil, "catalog adversary name; repeat to add more")
	cmd.Flags().IntSliceVar(&opts.xp, "xp", nil, "ad-hoc adversary XP values")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", string(encounter.DifficultyModerate), "low, moderate or high")
	cmd.Flags().StringVar(&opts.mode, "mode", string(encounter.ModeGroup), "group or individual")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func runCalc(calc *encounter.Calculator, catalog *adversary.Catalog, opts calcOptions) (encounter.Summary, error) {
	difficulty, err := calc.ParseDifficulty(opts.difficulty)
	if err != nil {
		return encounter.Summary{}, err
	}
	mode, err := encounter.ParseMode(opts.mode)
	if err != nil {
		return encounter.Summary{}, err
	}

	members := make([]party.Character, 0, len(opts.levels))
	for i, level := range opts.levels {
		members = append(members, party.Character{Name: "member " + strconv.Itoa(i+1), Level: level})
	}

	roster := adversary.NewRoster()
	for _, name := range opts.adversaries {
		a, ok := catalog.Find(name)
		if !ok {
			return encounter.Summary{}, fmt.Errorf("%w: %s is not in the catalog", adversary.ErrInvalidInput, name)
		}
		if _, err := roster.Add(adversary.EntryFor(a)); err != nil {
			return encounter.Summary{}, err
		}
	}
	entries := roster.Entries()
	for i, xp := range opts.xp {
		if xp < 0 {
			return encounter.Summary{}, fmt.Errorf("%w: negative xp %d", adversary.ErrInvalidInput, xp)
		}
		entries = append(entries, adversary.Entry{Name: "ad-hoc " + strconv.Itoa(i+1), ExperiencePoints: xp, Quantity: 1})
	}

	return calc.Summarize(members, entries, difficulty, mode), nil
}

func printSummary(w io.Writer, s encounter.Summary) {
	fmt.Fprintf(w, "Party:       %d members, average level %d\n", s.PartySize, s.AveragePartyLevel)
	if !s.BudgetAvailable {
		fmt.Fprintf(w, "Budget:      unavailable (%s)\n", s.UnavailableReason)
		fmt.Fprintf(w, "Adversaries: %d (%d XP)\n", s.AdversaryCount, s.TotalAdversaryXP)
		return
	}
	fmt.Fprintf(w, "Budget:      %d XP (%s, %s)\n", s.XPBudget, s.Difficulty, s.Mode)
	fmt.Fprintf(w, "Adversaries: %d (%d XP)\n", s.AdversaryCount, s.TotalAdversaryXP)
	fmt.Fprintf(w, "Balance:     %+d (%s)\n", s.Balance, s.State)
	fmt.Fprintf(w, "Difficulty:  %s/10\n", strings.TrimSuffix(strconv.FormatFloat(s.DifficultyIndex, 'f', 1, 64), ".0"))
	if s.Flavor != "" {
		fmt.Fprintf(w, "             %s\n", s.Flavor)
	}
}
