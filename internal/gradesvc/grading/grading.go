package grading

import (
	"errors"
	"fmt"

	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/shopspring/decimal"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultPush Result = "push"
)

var (
	ErrMissingSpread = errors.New("pick has no spread value")
	ErrUnknownSide   = errors.New("pick side is not home_spread or away_spread")
)

// Evaluation is the outcome of grading one pick against a final score. It is
// rebuilt from scratch on every grading pass and only used to update the
// pick's result column, never stored on its own.
type Evaluation struct {
	PickID         int64           `json:"pick_id"`
	UserID         int64           `json:"user_id"`
	Side           string          `json:"side"`
	Result         Result          `json:"result"`
	ActualMargin   decimal.Decimal `json:"actual_margin"`   // home score - away score, signed
	RequiredMargin decimal.Decimal `json:"required_margin"` // break-even margin for the graded side
	TriplePlay     bool            `json:"triple_play"`
}

// Grade grades a single pick against a final score. Pure, no I/O. The pick's
// own stored spread is used, never the game's live line.
func Grade(p *models.Pick, homeScore, awayScore int64) (Evaluation, error) {
	if !p.Spread.Valid {
		return Evaluation{}, fmt.Errorf("pick %d: %w", p.ID, ErrMissingSpread)
	}

	margin := decimal.NewFromInt(homeScore - awayScore)

	// sideMargin is the picked team's own margin of victory
	var sideMargin decimal.Decimal
	switch p.Side {
	case models.SideHomeSpread:
		sideMargin = margin
	case models.SideAwaySpread:
		sideMargin = margin.Neg()
	default:
		return Evaluation{}, fmt.Errorf("pick %d side %q: %w", p.ID, p.Side, ErrUnknownSide)
	}

	spread := p.Spread.Decimal

	return Evaluation{
		PickID:         p.ID,
		UserID:         p.UserID,
		Side:           p.Side,
		Result:         coverResult(spread, sideMargin),
		ActualMargin:   margin,
		RequiredMargin: RequiredMargin(spread),
		TriplePlay:     p.TriplePlay,
	}, nil
}

// RequiredMargin is the break-even margin for a side laying or getting the
// given spread. A -6.5 favorite must win by more than 6.5, a +6.5 underdog may
// lose by up to 6 or win outright, a pick'em (0) must win outright: in every
// case the break-even margin is the negated spread.
func RequiredMargin(spread decimal.Decimal) decimal.Decimal {
	return spread.Neg()
}

// coverResult is the one comparison shared by both sides of a line. Favorite,
// underdog and pick'em all grade by the same rule: the side's own margin
// against its break-even margin, with exact decimal equality for the push.
func coverResult(spread, sideMargin decimal.Decimal) Result {
	switch sideMargin.Cmp(RequiredMargin(spread)) {
	case 1:
		return ResultWin
	case 0:
		return ResultPush
	default:
		return ResultLoss
	}
}
