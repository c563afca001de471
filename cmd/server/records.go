package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
)

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect the configured record store",
	}
	cmd.AddCommand(newRecordsListCmd(), newRecordsDeleteCmd())
	return cmd
}

func newRecordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list [collection]",
		Short:     "List saved records; all collections when none is given",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"parties", "adversaries", "encounters"},
		RunE: func(cmd *cobra.Command, args []string) error {
			collections := record.Collections()
			if len(args) == 1 {
				c, err := record.ParseCollection(args[0])
				if err != nil {
					return err
				}
				collections = []record.Collection{c}
			}

			a, err := loadBase("")
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openStore(cmd.Context()); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLLECTION\tID\tNAME\tCREATED")
			for _, c := range collections {
				records, err := a.records.List(cmd.Context(), c)
				if err != nil {
					return err
				}
				for _, r := range records {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Collection, r.ID, r.Name, r.CreatedAt.Format("2006-01-02 15:04"))
				}
			}
			return tw.Flush()
		},
	}
}

func newRecordsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a saved record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := record.ParseCollection(args[0])
			if err != nil {
				return err
			}

			a, err := loadBase("")
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openStore(cmd.Context()); err != nil {
				return err
			}

			removed, err := a.records.Remove(cmd.Context(), c, args[1])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "no %s record with id %s\n", c, args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s\n", c, args[1])
			return nil
		},
	}
}
