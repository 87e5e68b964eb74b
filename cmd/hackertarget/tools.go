package main

import (
	"github.com/spf13/cobra"

	"github.com/ismailtasdelen/hackertarget/pkg/api"
	"github.com/ismailtasdelen/hackertarget/pkg/format"
)

// newToolCmds builds one subcommand per API tool, e.g. "hackertarget dns".
func newToolCmds(a *app) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(api.ToolAliases()))
	for _, alias := range api.ToolAliases() {
		tool, err := api.ParseTool(alias)
		if err != nil {
			continue
		}
		cmds = append(cmds, newToolCmd(a, alias, tool))
	}
	return cmds
}

func newToolCmd(a *app, alias string, tool api.Tool) *cobra.Command {
	var (
		output  string
		save    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   alias + " <target>",
		Short: "Run " + tool.Name(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup := a.newClient(noCache)
			defer cleanup()

			res, err := client.Query(cmd.Context(), tool, args[0])
			if err != nil {
				return err
			}

			kind := output
			if kind == "" {
				kind = a.cfg.Output.Format
			}
			f, err := format.New(kind, a.cfg.Output.Colored)
			if err != nil {
				return err
			}
			out, err := f.Format(res)
			if err != nil {
				return err
			}
			return writeOutput(out, save)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format (console|json|csv|xml|html)")
	cmd.Flags().StringVarP(&save, "save", "s", "", "save output to file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	return cmd
}
