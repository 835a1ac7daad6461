package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/urmzd/sdfwot/pkg/db"
)

func historyCmd() *cobra.Command {
	var (
		dbPath string
		filter db.ConversionFilter
		prune  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, _, err := openHistory(ctx, dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			store := database.Conversions()
			if prune > 0 {
				removed, err := store.DeleteBefore(ctx, time.Now().Add(-prune))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d records\n", removed)
				return nil
			}

			records, err := store.List(ctx, filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tFROM\tTO\tSTATUS\tDURATION\tSOURCE")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.SourceKind, r.TargetKind,
					r.Status, r.Duration, r.Source)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to database file (default: ~/.config/sdfwot/sdfwot.db)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Only show succeeded or failed conversions")
	cmd.Flags().StringVar(&filter.SourceKind, "kind", "", "Only show conversions from this kind")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 20, "Maximum number of records")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Delete records older than this instead of listing")

	return cmd
}
