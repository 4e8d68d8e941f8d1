package db

// scanWord scans a row into a Word. The row must have all 3 columns in standard order.
func scanWord(scanner interface{ Scan(dest ...any) error }) (Word, error) {
	var w Word
	err := scanner.Scan(&w.ID, &w.Word, &w.IsSentenceEnd)
	return w, err
}

// AllWords returns the vocabulary ordered by id
func (d *DB) AllWords() ([]Word, error) {
	rows, err := d.conn.Query(`SELECT id, word, is_sentence_end FROM words ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// GetWord returns a single word by its surface form, or nil if not found
func (d *DB) GetWord(word string) (*Word, error) {
	row := d.conn.QueryRow(`SELECT id, word, is_sentence_end FROM words WHERE word = ?`, word)
	w, err := scanWord(row)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
