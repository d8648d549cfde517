package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	GameStatusScheduled  = "scheduled"
	GameStatusInProgress = "in_progress"
	GameStatusFinal      = "final"
	GameStatusCancelled  = "cancelled"
)

// Score is a final score pair. A re-grade carries the score it graded from so
// the store can assert the stored score has not moved in the meantime.
type Score struct {
	Home int64 `json:"home"`
	Away int64 `json:"away"`
}

type Game struct {
	ID        int64               `json:"id"`         // Primary key
	Season    int                 `json:"season"`     // Contest season (year)
	Week      int                 `json:"week"`       // Contest week within the season
	HomeTeam  string              `json:"home_team"`
	AwayTeam  string              `json:"away_team"`
	StartAt   time.Time           `json:"start_at"`   // Scheduled kickoff
	Spread    decimal.NullDecimal `json:"spread"`     // Live home-relative line, negative = home favored
	HomeScore sql.NullInt64       `json:"home_score"` // Null until final
	AwayScore sql.NullInt64       `json:"away_score"` // Null until final
	Status    string              `json:"status"`     // 'scheduled', 'in_progress', 'final', 'cancelled'
	Forced    bool                `json:"forced"`     // Finalized with a placeholder 0-0 score
	CreatedAt time.Time           `json:"created_at"` // Timestamp
	UpdatedAt time.Time           `json:"updated_at"` // Timestamp
}
