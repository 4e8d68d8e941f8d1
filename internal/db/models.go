package db

// Word represents a row in the words table
type Word struct {
	ID            int64  `json:"id"`
	Word          string `json:"word"`
	IsSentenceEnd bool   `json:"is_sentence_end"`
}

// Transition represents a row in the transitions table
type Transition struct {
	ID       int64 `json:"id"`
	SourceID int64 `json:"source_id"`
	TargetID int64 `json:"target_id"`
	Weight   int   `json:"weight"` // number of observed source -> target successions
}

// Sentence represents a row in the sentences table
type Sentence struct {
	ID     int64   `json:"id"`
	Source *string `json:"source"`
	Text   string  `json:"text"`
}
