package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SideHomeSpread = "home_spread"
	SideAwaySpread = "away_spread"
)

type Pick struct {
	ID          int64               `json:"id"`           // Primary key
	UserID      int64               `json:"user_id"`      // FK to users(user_id)
	GameID      int64               `json:"game_id"`      // FK to games(id)
	Side        string              `json:"side"`         // 'home_spread' or 'away_spread'
	Spread      decimal.NullDecimal `json:"spread"`       // Line frozen at submission, signed from the picked side's perspective
	Submitted   bool                `json:"submitted"`
	TriplePlay  bool                `json:"triple_play"`  // Scoring multiplier, not part of grading
	Result      sql.NullString      `json:"result"`       // 'win', 'loss', 'push', null until graded
	EvaluatedAt sql.NullTime        `json:"evaluated_at"` // When the result was last computed
	CreatedAt   time.Time           `json:"created_at"`   // Timestamp
	UpdatedAt   time.Time           `json:"updated_at"`   // Timestamp
}
