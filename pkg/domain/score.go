package domain

// ScoreReport is the payload submitted at the end of a game session.
// One point per correctly sorted item, so Points normally equals
// CorrectItems.
type ScoreReport struct {
	Points       int   `json:"points"`
	CorrectItems int   `json:"correct_items"`
	TotalItems   int   `json:"total_items"`
	DurationMS   int64 `json:"duration_ms"`
}

// ScoreResult is the server's answer to a score submission. TotalScore is
// the new cumulative total and replaces any locally tracked value.
type ScoreResult struct {
	UserID     int `json:"user_id"`
	TotalScore int `json:"total_score"`
	ScoreID    int `json:"score_id"`
}
