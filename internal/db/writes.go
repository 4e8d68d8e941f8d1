package db

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// RebuildOpts controls how stored sentences are turned into words and transitions
type RebuildOpts struct {
	Forbidden []string // tokens never stored as words
	MinWords  int      // sentences with fewer surviving words are skipped
}

// RebuildStats summarizes a vocabulary rebuild
type RebuildStats struct {
	Sentences   int `json:"sentences"`
	Skipped     int `json:"skipped"`
	Words       int `json:"words"`
	Transitions int `json:"transitions"`
}

// InsertSentences stores sentences under a source label and returns how many
// were new. Blank and already stored sentences are ignored.
func (d *DB) InsertSentences(source string, texts []string) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var src *string
	if source != "" {
		src = &source
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO sentences (source, text) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		res, err := stmt.Exec(src, text)
		if err != nil {
			return 0, fmt.Errorf("inserting sentence: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sentences: %w", err)
	}
	return inserted, nil
}

// RebuildVocabulary replaces the words and transitions tables with the ones
// derived from the stored sentences. Every observed succession of two words
// increments the weight of its transition by one.
func (d *DB) RebuildVocabulary(opts RebuildOpts) (*RebuildStats, error) {
	forbidden := make(map[string]bool, len(opts.Forbidden))
	for _, w := range opts.Forbidden {
		forbidden[strings.ToLower(w)] = true
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	texts, err := loadSentenceTexts(tx)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM transitions`); err != nil {
		return nil, fmt.Errorf("clearing transitions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM words`); err != nil {
		return nil, fmt.Errorf("clearing words: %w", err)
	}

	stats := &RebuildStats{}
	var kept [][]string
	vocab := make(map[string]bool)
	for _, text := range texts {
		words := Words(text, forbidden)
		if len(words) < opts.MinWords || len(words) == 0 {
			stats.Skipped++
			continue
		}
		kept = append(kept, words)
		for _, w := range words {
			vocab[w] = true
		}
	}
	stats.Sentences = len(kept)

	ids, err := insertWords(tx, vocab)
	if err != nil {
		return nil, err
	}
	stats.Words = len(ids)

	upsert, err := tx.Prepare(`
		INSERT INTO transitions (source_id, target_id, weight) VALUES (?, ?, 1)
		ON CONFLICT(source_id, target_id) DO UPDATE SET weight = weight + 1
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing transition upsert: %w", err)
	}
	defer upsert.Close()

	for _, words := range kept {
		for i := 0; i+1 < len(words); i++ {
			if _, err := upsert.Exec(ids[words[i]], ids[words[i+1]]); err != nil {
				return nil, fmt.Errorf("recording transition %s -> %s: %w", words[i], words[i+1], err)
			}
		}
	}

	if err := tx.QueryRow(`SELECT COUNT(*) FROM transitions`).Scan(&stats.Transitions); err != nil {
		return nil, fmt.Errorf("counting transitions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing vocabulary: %w", err)
	}
	return stats, nil
}

func loadSentenceTexts(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query(`SELECT text FROM sentences ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading sentences: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// insertWords stores the vocabulary in lexical order so ids are reproducible.
func insertWords(tx *sql.Tx, vocab map[string]bool) (map[string]int64, error) {
	words := make([]string, 0, len(vocab))
	for w := range vocab {
		words = append(words, w)
	}
	sort.Strings(words)

	stmt, err := tx.Prepare(`INSERT INTO words (word, is_sentence_end) VALUES (?, 0)`)
	if err != nil {
		return nil, fmt.Errorf("preparing word insert: %w", err)
	}
	defer stmt.Close()

	ids := make(map[string]int64, len(words))
	for _, w := range words {
		res, err := stmt.Exec(w)
		if err != nil {
			return nil, fmt.Errorf("inserting word %q: %w", w, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids[w] = id
	}
	return ids, nil
}
