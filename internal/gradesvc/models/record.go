package models

import "github.com/shopspring/decimal"

// UserRecord is a user's aggregate grading record for one season.
type UserRecord struct {
	UserID         int64           `json:"user_id"`
	Wins           int64           `json:"wins"`
	Losses         int64           `json:"losses"`
	Pushes         int64           `json:"pushes"`
	TriplePlayWins int64           `json:"triple_play_wins"`
	Points         decimal.Decimal `json:"points"` // wins + 0.5 per push + 2 extra per triple play win
}
