package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ismailtasdelen/hackertarget/pkg/api"
	"github.com/ismailtasdelen/hackertarget/pkg/format"
	"github.com/ismailtasdelen/hackertarget/pkg/target"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		file     string
		toolName string
		output   string
		save     string
		delay    time.Duration
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a tool against every target in a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := api.ParseTool(toolName)
			if err != nil {
				return err
			}

			targets, err := target.ReadTargetsFile(file)
			if err != nil {
				return err
			}
			a.logger.Info().Int("targets", len(targets)).Str("file", file).Msg("loaded batch targets")

			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Batch.Delay
			}

			client, cleanup := a.newClient(noCache)
			defer cleanup()

			results, err := client.BatchQuery(cmd.Context(), tool, targets, delay, a.cfg.Batch.ContinueOnError)
			if err != nil {
				return err
			}

			f, err := format.New(output, a.cfg.Output.Colored)
			if err != nil {
				return err
			}
			out, err := f.FormatBatch(results)
			if err != nil {
				return err
			}
			return writeOutput(out, save)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file with targets, one per line")
	cmd.Flags().StringVarP(&toolName, "tool", "t", "", "tool to run against each target")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json|csv|xml|console)")
	cmd.Flags().StringVarP(&save, "save", "s", "", "save output to file")
	cmd.Flags().DurationVarP(&delay, "delay", "d", time.Second, "delay between requests")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}
