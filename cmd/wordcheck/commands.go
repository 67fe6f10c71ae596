package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordcheck/internal/cli"
	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/server"
	"github.com/bastiangx/wordcheck/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appFlags holds the persistent flags shared by every subcommand.
type appFlags struct {
	configPath string
	dictPath   string
	debug      bool
}

// engineOptions maps the [engine] section onto engine sizing.
func engineOptions(cfg config.EngineConfig) suggest.Options {
	return suggest.Options{
		CacheCapacity:      cfg.CacheCapacity,
		FilterBits:         cfg.FilterBits,
		FilterHashes:       cfg.FilterHashes,
		TableBuckets:       cfg.TableBuckets,
		InvalidateOnUpdate: cfg.InvalidateOnUpdate,
		Logger:             logger.New("engine"),
	}
}

// setup loads config, resolves the dictionary and returns a loaded engine.
// A dictionary that cannot be found leaves the engine empty.
func (a *appFlags) setup() (*config.Config, *suggest.Engine, error) {
	cfg, configPath, err := config.LoadConfigWithPriority(a.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log.Debugf("Using config: (%s)", config.GetActiveConfigPath(configPath))

	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	pathResolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing path resolver: %w", err)
	}

	dictPath := cfg.Dict.Path
	if a.dictPath != "" {
		dictPath = a.dictPath
	}

	engine := suggest.NewEngine(engineOptions(cfg.Engine))
	resolved, err := pathResolver.ResolveFile(dictPath)
	if err != nil {
		log.Warnf("Dictionary not found at %s, running with empty dict...", resolved)
		return cfg, engine, nil
	}

	added := engine.LoadDictionary(resolved)
	log.Debugf("Loaded %s words from %s", utils.FormatWithCommas(added), resolved)
	return cfg, engine, nil
}

func createServeCmd(app *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the msgpack IPC server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, engine, err := app.setup()
			if err != nil {
				return err
			}
			log.Debug("spawning IPC")
			showStartupInfo(engine)
			srv := server.NewServer(engine, cfg, os.Stdin, os.Stdout)
			return srv.Start()
		},
	}
}

func createCliCmd(app *appFlags) *cobra.Command {
	var opts cli.Options
	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Interactive prompt for completions and spell checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, engine, err := app.setup()
			if err != nil {
				return err
			}
			log.SetReportTimestamp(false)
			if !cmd.Flags().Changed("limit") {
				opts.Limit = cfg.CLI.DefaultLimit
			}
			if !cmd.Flags().Changed("no-filter") {
				opts.NoFilter = cfg.CLI.NoFilter
			}
			if !cmd.Flags().Changed("prmin") {
				opts.MinPrefix = cfg.Query.MinPrefix
			}
			if !cmd.Flags().Changed("prmax") {
				opts.MaxPrefix = cfg.Query.MaxPrefix
			}
			if !cmd.Flags().Changed("distance") {
				opts.MaxDistance = cfg.Query.MaxDistance
			}
			log.Debug("Input info:",
				"minPrefix", opts.MinPrefix,
				"maxPrefix", opts.MaxPrefix,
				"limit", opts.Limit,
				"noFilter", opts.NoFilter)

			return cli.NewInputHandler(engine, opts, os.Stdin, os.Stdout).Start()
		},
	}
	def := config.DefaultConfig()
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", def.CLI.DefaultLimit, "Number of suggestions to return")
	cmd.Flags().IntVar(&opts.MinPrefix, "prmin", def.Query.MinPrefix, "Minimum prefix length for suggestions")
	cmd.Flags().IntVar(&opts.MaxPrefix, "prmax", def.Query.MaxPrefix, "Maximum prefix length for suggestions")
	cmd.Flags().IntVarP(&opts.MaxDistance, "distance", "m", def.Query.MaxDistance, "Maximum edit distance for corrections")
	cmd.Flags().BoolVar(&opts.NoFilter, "no-filter", def.CLI.NoFilter, "Disable input filtering (DBG only)")
	return cmd
}

func createCompleteCmd(app *appFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "complete [prefix]",
		Short: "Print completions for a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := app.setup()
			if err != nil {
				return err
			}
			for _, w := range engine.Autocomplete(args[0], limit) {
				fmt.Println(w)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of suggestions to return")
	return cmd
}

func createCheckCmd(app *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [word]",
		Short: "Report whether a word is in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := app.setup()
			if err != nil {
				return err
			}
			if engine.CheckSpelling(args[0]) {
				fmt.Printf("'%s' is spelled correctly\n", args[0])
				return nil
			}
			fmt.Printf("'%s' is not in the dictionary\n", args[0])
			return nil
		},
	}
}

func createCorrectCmd(app *appFlags) *cobra.Command {
	var maxDistance, limit int
	cmd := &cobra.Command{
		Use:   "correct [word]",
		Short: "Print dictionary words within an edit distance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := app.setup()
			if err != nil {
				return err
			}
			for _, w := range engine.GetCorrections(args[0], maxDistance, limit) {
				fmt.Println(w)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&maxDistance, "distance", "m", 2, "Maximum edit distance")
	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "Number of corrections to return")
	return cmd
}

func createStatsCmd(app *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Load the dictionary and print engine statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := app.setup()
			if err != nil {
				return err
			}
			cli.PrintStats(os.Stdout, engine.Stats())
			return nil
		},
	}
}

func createBatchCmd(app *appFlags) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Run every line of a file as a query and report timings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseBatchMode(mode)
			if err != nil {
				return err
			}
			_, engine, err := app.setup()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening query file: %w", err)
			}
			defer f.Close()

			report, err := runBatch(engine, m, f)
			if err != nil {
				return err
			}
			report.Print(os.Stdout)
			fmt.Println()
			fmt.Print(engine.Stats().String())
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "auto", "Query kind: auto or spell")
	return cmd
}

func createVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			banner.SetStyles(styles)

			banner.Print("")
			banner.Print("[ wordcheck ] completions and spelling corrections")
			banner.Print("", "version", Version)
			banner.Print("")
			banner.Print("use -h or --help to see available commands")
			banner.Print("Github Repo", "gh", gh)
		},
	}
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(engine *suggest.Engine) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: %s words", utils.FormatWithCommas(engine.DictionarySize()))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
