package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynguyen789/AIToDoList/internal/config"
	"github.com/huynguyen789/AIToDoList/internal/persist"
	"github.com/huynguyen789/AIToDoList/internal/state"
	"github.com/huynguyen789/AIToDoList/internal/storage"
	"github.com/huynguyen789/AIToDoList/internal/suggest"
	"github.com/huynguyen789/AIToDoList/internal/update"
)

type rootFlags struct {
	dbPath   string
	redisURL string
	userID   string
	debug    bool
	dark     bool
}

func main() {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "aitodo",
		Short: "Eisenhower matrix task organizer",
		Long: "Terminal task organizer that sorts work into the four Eisenhower buckets,\n" +
			"scores finished tasks, and persists through SQLite with optional Redis sync.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "path to the sqlite database")
	pf.StringVar(&flags.redisURL, "redis-url", "", "redis URL for remote sync")
	pf.StringVar(&flags.userID, "user", "", "user id for per-user remote storage")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&flags.dark, "dark", true, "dark color theme")

	rootCmd.AddCommand(newSyncCmd(flags))
	rootCmd.AddCommand(newExportCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig layers flag values over environment configuration. A flag
// only wins when the user set it, so AITODO_* variables keep working.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg := config.FromEnv(config.Default())
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if cmd.Flags().Changed("redis-url") {
		cfg.RedisURL = flags.redisURL
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = flags.userID
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flags.debug
	}
	if cmd.Flags().Changed("dark") {
		cfg.DarkMode = flags.dark
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ensureDataDir(cfg config.Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// newLogger writes structured logs to a file next to the database. Logging
// to stdout would draw over the TUI.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	logPath := filepath.Join(filepath.Dir(cfg.DBPath), "aitodo.log")
	zcfg := zap.NewProductionConfig()
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}
	return zcfg.Build()
}

func openBackends(cfg config.Config, log *zap.Logger) (*storage.Store, *storage.LocalBackend, func(), error) {
	local, err := storage.OpenLocal(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open local storage: %w", err)
	}
	cleanup := func() { _ = local.Close() }

	var remote storage.Backend
	if cfg.RemoteEnabled() {
		r, err := storage.OpenRemote(cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("open remote storage: %w", err)
		}
		remote = r
		closeLocal := cleanup
		cleanup = func() {
			_ = r.Close()
			closeLocal()
		}
	}

	return storage.NewStore(local, remote, log), local, cleanup, nil
}

func runTUI(cfg config.Config) error {
	if err := ensureDataDir(cfg); err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store, local, cleanup, err := openBackends(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl := state.NewController(log)
	worker := persist.NewWorker(store, ctrl.Events(), cfg.UserID, log)
	worker.Start()

	var sugg suggest.Suggester = suggest.Disabled{}
	if cfg.OpenAIKey != "" {
		sugg = suggest.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if stored, ok, darkErr := local.DarkMode(ctx); darkErr == nil && ok {
		cfg.DarkMode = stored
	}
	cancel()

	log.Info("app_started",
		zap.String("db", cfg.DBPath),
		zap.Bool("remote", cfg.RemoteEnabled()),
		zap.Bool("suggestions", cfg.OpenAIKey != ""),
	)

	ui := update.NewModelWithRuntime(ctrl, store, local, sugg, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	_, runErr := program.Run()

	ctrl.Close()
	worker.Stop()
	log.Info("app_stopped")

	if runErr != nil {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}

func newSyncCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy the local snapshot to remote storage",
		Long:  "Copy the local SQLite snapshot to the configured Redis backend for this user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			if !cfg.RemoteEnabled() {
				return fmt.Errorf("sync needs --redis-url and --user (or AITODO_REDIS_URL and AITODO_USER_ID)")
			}
			if err := ensureDataDir(cfg); err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			store, _, cleanup, err := openBackends(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := store.MigrateUp(ctx, cfg.UserID); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			fmt.Printf("synced local tasks to remote for user %s\n", cfg.UserID)
			return nil
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print all task data as JSON",
		Long:  "Load the full snapshot through the backend chain and print it as indented JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			if err := ensureDataDir(cfg); err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			store, _, cleanup, err := openBackends(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			snap := store.LoadAll(ctx, cfg.UserID)
			out, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
