package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ismailtasdelen/hackertarget/pkg/api"
	cachepkg "github.com/ismailtasdelen/hackertarget/pkg/cache/sqlite"
	"github.com/ismailtasdelen/hackertarget/pkg/config"
	"github.com/ismailtasdelen/hackertarget/pkg/history"
	"github.com/ismailtasdelen/hackertarget/pkg/logging"
	"github.com/ismailtasdelen/hackertarget/pkg/target"
)

// app carries the loaded config and logger shared by all subcommands.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	configPath string
	logLevel   string
	logFile    string
	noColor    bool
	apiKey     string
	timeout    int
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "hackertarget",
		Short:         "HackerTarget CLI — network reconnaissance toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "log file path")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "HackerTarget API key")
	root.PersistentFlags().IntVar(&a.timeout, "timeout", 0, "request timeout in seconds")

	root.AddCommand(newToolCmds(a)...)
	root.AddCommand(
		newBatchCmd(a),
		newCacheCmd(a),
		newConfigCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.apiKey != "" {
		cfg.API.Key = a.apiKey
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = time.Duration(a.timeout) * time.Second
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}
	if a.noColor {
		cfg.Logging.Colored = false
		cfg.Output.Colored = false
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// openCache builds the response cache from config. A cache that cannot
// initialize degrades to a disabled one: the CLI must work without caching.
func (a *app) openCache() *cachepkg.Cache {
	c, err := cachepkg.New(a.cfg.Cache.Directory, a.cfg.Cache.TTL, a.cfg.Cache.Enabled, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("cache unavailable, continuing without it")
		c, _ = cachepkg.New("", 0, false, a.logger)
	}
	return c
}

// dataDir is where non-cache state (the query history) lives.
func (a *app) dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hackertarget"
	}
	return filepath.Join(home, ".hackertarget")
}

// openHistory builds the query history log, or a disabled one on failure.
func (a *app) openHistory() *history.Log {
	l, err := history.New(a.dataDir(), a.cfg.History.Enabled, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("history unavailable, continuing without it")
		l, _ = history.New("", false, a.logger)
	}
	return l
}

// newClient wires an API client with cache and history. With noCache set
// the cache is left out entirely for this invocation.
func (a *app) newClient(noCache bool) (*api.Client, func()) {
	var cache *cachepkg.Cache
	if !noCache {
		cache = a.openCache()
	}
	hist := a.openHistory()

	client := api.New(a.cfg.API, cache, hist, a.logger)
	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
		_ = hist.Close()
	}
	return client, cleanup
}

// writeOutput prints to stdout or saves to a file with a sanitized name.
func writeOutput(content, savePath string) error {
	if savePath == "" {
		fmt.Println(content)
		return nil
	}

	dir := filepath.Dir(savePath)
	name := target.SanitizeFilename(filepath.Base(savePath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("save output: %w", err)
	}
	fmt.Printf("Output saved to: %s\n", path)
	return nil
}
