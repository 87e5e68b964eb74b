package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.openHistory()
			defer func() { _ = l.Close() }()

			recs, err := l.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No query history found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTOOL\tTARGET\tCACHED\tSTATUS\tDURATION")
			for _, r := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%dms\n",
					r.CreatedAt.Format("2006-01-02T15:04:05"), r.ToolName, r.Target, r.Cached, r.Status, r.DurationMS)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "number of entries to show")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate query history per tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.openHistory()
			defer func() { _ = l.Close() }()

			sums, err := l.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				fmt.Println("No query history found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOOL\tREQUESTS\tCACHE HITS\tERRORS\tLAST USED")
			for _, s := range sums {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
					s.ToolName, s.Requests, s.CacheHits, s.Errors, s.LastUsed.Format("2006-01-02T15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(summaryCmd)
	return cmd
}
