package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ismailtasdelen/hackertarget/pkg/api"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.openCache()
			defer func() { _ = c.Close() }()

			stats := c.Stats()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			if !stats.Enabled {
				fmt.Fprintln(w, "Status:\tDisabled")
				return w.Flush()
			}
			fmt.Fprintln(w, "Status:\tEnabled")
			fmt.Fprintf(w, "Total Entries:\t%d\n", stats.TotalEntries)
			fmt.Fprintf(w, "Active Entries:\t%d\n", stats.ActiveEntries)
			fmt.Fprintf(w, "Expired Entries:\t%d\n", stats.ExpiredEntries)
			fmt.Fprintf(w, "Total Hits:\t%d\n", stats.TotalHits)
			fmt.Fprintf(w, "Cache Size:\t%s\n", humanize.Bytes(uint64(stats.SizeBytes)))
			fmt.Fprintf(w, "TTL:\t%s\n", stats.TTL)
			fmt.Fprintf(w, "Location:\t%s\n", stats.Directory)
			return w.Flush()
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.openCache()
			defer func() { _ = c.Close() }()

			if !c.Clear() {
				return fmt.Errorf("failed to clear cache")
			}
			fmt.Println("Cache cleared.")
			return nil
		},
	}

	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.openCache()
			defer func() { _ = c.Close() }()

			removed := c.Cleanup()
			fmt.Printf("Removed %d expired cache entries.\n", removed)
			return nil
		},
	}

	var limit int
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most requested cached targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.openCache()
			defer func() { _ = c.Close() }()

			top := c.TopTargets(limit)
			if len(top) == 0 {
				fmt.Println("No cached entries found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TARGET\tTOOL\tHITS")
			for _, t := range top {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.Target, api.Tool(t.ToolID).Name(), t.Hits)
			}
			return w.Flush()
		},
	}
	topCmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of results to show")

	deleteCmd := &cobra.Command{
		Use:   "delete <tool> <target>",
		Short: "Remove a single cache entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := api.ParseTool(args[0])
			if err != nil {
				return err
			}

			c := a.openCache()
			defer func() { _ = c.Close() }()

			if c.Delete(tool.ID(), args[1]) {
				fmt.Println("Cache entry deleted.")
			} else {
				fmt.Println("No matching cache entry.")
			}
			return nil
		},
	}

	cmd.AddCommand(statsCmd, clearCmd, cleanupCmd, topCmd, deleteCmd)
	return cmd
}
