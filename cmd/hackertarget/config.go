package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ismailtasdelen/hackertarget/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	var initPath string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := initPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&initPath, "path", "p", "", "config file path")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	var setPath string
	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (e.g. api.key)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := setPath
			if path == "" {
				if a.configPath != "" {
					path = a.configPath
				} else {
					path = config.DefaultPath()
				}
			}
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
	setCmd.Flags().StringVarP(&setPath, "path", "p", "", "config file path")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", args[0], v)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, setCmd, getCmd)
	return cmd
}
