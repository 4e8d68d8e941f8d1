package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"phrasegraph/internal/config"
	"phrasegraph/internal/db"
	"phrasegraph/internal/logging"
)

var (
	dbPath     string
	configPath string
	debugLog   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "phrasegraph",
	Short:         "Word graphs, themed communities and sentence generation from a text corpus",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()
		logging.Init(os.Stderr, debugLog)

		loaded, err := config.Load(config.GetEnvString("PHRASEGRAPH_CONFIG", configPath))
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the phrases.db corpus database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "JSON file overriding the default tables and thresholds")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
}

var dbCandidates = []string{"phrases.db", filepath.Join("db", "phrases.db")}

// DiscoverDB finds the database path using priority: env > flag > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("PHRASEGRAPH_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			for _, name := range dbCandidates {
				candidate := filepath.Join(dir, name)
				if _, err := os.Stat(candidate); err == nil {
					return candidate, nil
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 4. XDG fallback
	if xdgPath, err := defaultDBPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no phrases.db found (set PHRASEGRAPH_DB, use --db, or run phrasegraph ingest first)")
}

func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "phrasegraph", "phrases.db"), nil
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	logging.Debug("opening database", "path", path)
	return db.OpenDB(path)
}

func checkNonNegative(flag string, v int) error {
	if v < 0 {
		return fmt.Errorf("--%s must not be negative, got %d", flag, v)
	}
	return nil
}

// writeOutput runs write against stdout when path is empty, otherwise against
// a created file whose close error is reported.
func writeOutput(path string, write func(out io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
