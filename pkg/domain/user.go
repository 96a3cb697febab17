package domain

// User represents a registered Récy&Co player. Only the server mutates
// TotalScore, via score submission.
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	TotalScore int    `json:"total_score"`
	CreatedAt  Time   `json:"created_at,omitempty"`
	LastLogin  *Time  `json:"last_login_at,omitempty"`
}

// Stats aggregates a player's game history.
// Wire field names are the server's (French) API format.
type Stats struct {
	GamesPlayed  int `json:"parties_jouees"`
	Points       int `json:"points"`
	CorrectItems int `json:"correct_items"`
}

// Badge is an unlocked achievement, joined with its award date.
type Badge struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	AwardedAt   Time   `json:"awarded_at,omitempty"`
}
