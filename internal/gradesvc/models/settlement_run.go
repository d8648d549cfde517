package models

import "time"

const (
	TriggerFinalize   = "finalize"
	TriggerReevaluate = "reevaluate"
	TriggerForceFinal = "force-final"
)

// SettlementRun is one settlement pass over a game, kept as an audit trail
// entry. Forced runs record the placeholder 0-0 finalization so they stay
// distinguishable from a genuine 0-0 result.
type SettlementRun struct {
	RunID        string    `bson:"run_id" json:"run_id"`
	GameID       int64     `bson:"game_id" json:"game_id"`
	Trigger      string    `bson:"trigger" json:"trigger"` // 'finalize', 'reevaluate', 'force-final'
	HomeScore    int64     `bson:"home_score" json:"home_score"`
	AwayScore    int64     `bson:"away_score" json:"away_score"`
	Forced       bool      `bson:"forced" json:"forced"`
	PicksUpdated int       `bson:"picks_updated" json:"picks_updated"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expires_at"` // TTL index expiry
}
