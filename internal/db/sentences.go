package db

func scanSentence(scanner interface{ Scan(dest ...any) error }) (Sentence, error) {
	var s Sentence
	err := scanner.Scan(&s.ID, &s.Source, &s.Text)
	return s, err
}

// AllSentences returns the stored sentences in insertion order
func (d *DB) AllSentences() ([]Sentence, error) {
	rows, err := d.conn.Query(`SELECT id, source, text FROM sentences ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sentences []Sentence
	for rows.Next() {
		s, err := scanSentence(rows)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, s)
	}
	return sentences, rows.Err()
}

// CountSentences returns the number of stored sentences
func (d *DB) CountSentences() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM sentences`).Scan(&n)
	return n, err
}
