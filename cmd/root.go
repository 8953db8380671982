package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/cloud"
	"github.com/abhisek/transform90/internal/config"
	"github.com/abhisek/transform90/internal/logging"
	"github.com/abhisek/transform90/internal/store"
	"github.com/abhisek/transform90/internal/tracker"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "transform90",
	Short: "90-day habit tracker",
	Long: "transform90 tracks a 90-day self-improvement program: daily habits, " +
		"levels unlocked by perfect days, reading progress and statistics.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TRANSFORM90_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides TRANSFORM90_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(checkpointsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the config file, then builds the logger. The board
// logs to a file beside the database so log lines do not tear the screen.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	var outputs []string
	if cmd == rootCmd {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		outputs = []string{filepath.Join(filepath.Dir(dbPath), "transform90.log")}
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	l, err := logging.New(cfg.Logging, verbose, outputs...)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then TRANSFORM90_DB and the default XDG
// path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}

// newRemote builds the sync remote the config asks for.
func newRemote(kv store.KVRepo) cloud.Remote {
	if cfg.Sync.Remote == config.RemoteHTTP {
		return cloud.NewHTTPRemote(cfg.Sync.URL, cfg.Sync.Timeout)
	}
	return cloud.NewLocalRemote(kv)
}

// openService opens the store and wires the tracker to it. The caller
// closes the returned store.
func openService(cmd *cobra.Command) (*tracker.Service, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	kv := st.KVRepo()
	var syncOpts []cloud.SyncerOption
	if cfg.Sync.Identity != "" {
		syncOpts = append(syncOpts, cloud.WithIdentity(cfg.Sync.Identity))
	}
	syncer := cloud.NewAutoSyncer(newRemote(kv), kv, logger.Named("sync"), cfg.Sync.Throttle, syncOpts...)

	svc, err := tracker.Open(cmd.Context(), tracker.Options{
		KV:              kv,
		Snapshots:       st.SnapshotRepo(),
		Events:          st.EventRepo(),
		Clearer:         st,
		Syncer:          syncer,
		Logger:          logger,
		Checkpoints:     cfg.Database.Checkpoints,
		AllowIncomplete: cfg.Program.AllowIncompleteDays,
		SyncInterval:    cfg.Sync.Interval,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return svc, st, nil
}
