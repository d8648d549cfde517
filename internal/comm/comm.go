package comm

import (
	"encoding/json"
	"time"
)

// SettlementMsg is the envelope for messages on the settlement.service topic.
type SettlementMsg struct {
	Type string          `json:"type"` // e.g. "score-final", "reevaluate", "force-final"
	Data json.RawMessage `json:"data"`
}

// ScoreFinal is published by the score feed or operator tooling once a game
// has a real final score.
type ScoreFinal struct {
	GameID    int64 `json:"game_id"`
	HomeScore int64 `json:"home_score"`
	AwayScore int64 `json:"away_score"`
}

// ReevaluateRequest asks for a re-grade from the score already stored.
type ReevaluateRequest struct {
	GameID int64 `json:"game_id"`
}

// ForceFinal asks for the placeholder 0-0 finalization of a stale game.
type ForceFinal struct {
	GameID int64 `json:"game_id"`
}

// PickOutcome is one graded pick as published on game.settled. Margins are
// decimal strings so half points survive the wire.
type PickOutcome struct {
	PickID         int64  `json:"pick_id"`
	UserID         int64  `json:"user_id"`
	Side           string `json:"side"`
	Result         string `json:"result"`
	ActualMargin   string `json:"actual_margin"`
	RequiredMargin string `json:"required_margin"`
	TriplePlay     bool   `json:"triple_play"`
}

// GameSettled is the settlement announcement other services consume
// (socket push, stats, notifications).
type GameSettled struct {
	RunID        string        `json:"run_id"`
	GameID       int64         `json:"game_id"`
	Season       int           `json:"season"`
	Week         int           `json:"week"`
	HomeTeam     string        `json:"home_team"`
	AwayTeam     string        `json:"away_team"`
	HomeScore    int64         `json:"home_score"`
	AwayScore    int64         `json:"away_score"`
	Forced       bool          `json:"forced"`
	PicksUpdated int           `json:"picks_updated"`
	Outcomes     []PickOutcome `json:"outcomes"`
	SettledAt    time.Time     `json:"settled_at"`
}
