package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"phrasegraph/internal/db"
	"phrasegraph/internal/logging"
)

var (
	ingestSource      string
	ingestMinWords    int
	ingestRebuildOnly bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...|-]",
	Short: "Store text as sentences and rebuild the word and transition tables",
	Long: "Splits each file (or stdin when no file or '-' is given) into sentences, stores the new ones " +
		"and rebuilds words and transitions from every stored sentence. Creates the database when missing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openOrCreateDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		minWords := cfg.Ingest.MinWords
		if cmd.Flags().Changed("min-words") {
			minWords = ingestMinWords
		}

		if !ingestRebuildOnly {
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, path := range args {
				if err := ingestFile(d, path, minWords); err != nil {
					return err
				}
			}
		}

		stats, err := d.RebuildVocabulary(db.RebuildOpts{
			Forbidden: cfg.Transition.Forbidden,
			MinWords:  minWords,
		})
		if err != nil {
			return err
		}
		logging.Info("vocabulary rebuilt",
			"sentences", stats.Sentences,
			"skipped", stats.Skipped,
			"words", stats.Words,
			"transitions", stats.Transitions)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "Source label stored with the sentences (defaults to the file name)")
	ingestCmd.Flags().IntVar(&ingestMinWords, "min-words", 4, "Sentences with fewer words are ignored")
	ingestCmd.Flags().BoolVar(&ingestRebuildOnly, "rebuild-only", false, "Skip reading text and only rebuild words and transitions")
	rootCmd.AddCommand(ingestCmd)
}

func ingestFile(d *db.DB, path string, minWords int) error {
	var (
		data []byte
		err  error
	)
	source := ingestSource
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if source == "" {
			source = "stdin"
		}
	} else {
		data, err = os.ReadFile(path)
		if source == "" {
			source = filepath.Base(path)
		}
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	sentences := db.SplitSentences(string(data), minWords)
	inserted, err := d.InsertSentences(source, sentences)
	if err != nil {
		return err
	}
	logging.Info("ingested", "source", source, "sentences", len(sentences), "new", inserted)
	return nil
}

// openOrCreateDatabase opens the discovered database or, when none exists,
// creates one at --db, $PHRASEGRAPH_DB or the XDG location.
func openOrCreateDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		path = createPath()
		if path == "" {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		logging.Info("creating database", "path", path)
	}

	d, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func createPath() string {
	if dbPath != "" {
		return dbPath
	}
	if envPath := os.Getenv("PHRASEGRAPH_DB"); envPath != "" {
		return envPath
	}
	path, err := defaultDBPath()
	if err != nil {
		return ""
	}
	return path
}
