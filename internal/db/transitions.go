package db

// scanTransition scans a row into a Transition. The row must have all 4 columns in standard order.
func scanTransition(scanner interface{ Scan(dest ...any) error }) (Transition, error) {
	var t Transition
	err := scanner.Scan(&t.ID, &t.SourceID, &t.TargetID, &t.Weight)
	return t, err
}

// AllTransitions returns every transition ordered by (source, target)
func (d *DB) AllTransitions() ([]Transition, error) {
	rows, err := d.conn.Query(`
		SELECT id, source_id, target_id, weight
		FROM transitions ORDER BY source_id, target_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transitions []Transition
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}
	return transitions, rows.Err()
}

// TransitionWeight returns the weight of source -> target, or 0 when the pair was never observed
func (d *DB) TransitionWeight(sourceID, targetID int64) (int, error) {
	var weight int
	err := d.conn.QueryRow(`
		SELECT COALESCE(SUM(weight), 0) FROM transitions
		WHERE source_id = ? AND target_id = ?
	`, sourceID, targetID).Scan(&weight)
	return weight, err
}
