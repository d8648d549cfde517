package grading_test

import (
	"testing"

	"github.com/avvvet/pickem-services/internal/gradesvc/grading"
	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickOn(side, spread string) *models.Pick {
	return &models.Pick{
		ID:     1,
		UserID: 7,
		Side:   side,
		Spread: decimal.NewNullDecimal(decimal.RequireFromString(spread)),
	}
}

func TestGradeHomeSide(t *testing.T) {
	tests := []struct {
		name       string
		spread     string
		home, away int64
		want       grading.Result
	}{
		{"favorite fails to cover", "-6.5", 20, 17, grading.ResultLoss},
		{"favorite pushes on the number", "-3", 20, 17, grading.ResultPush},
		{"favorite covers", "-2.5", 20, 17, grading.ResultWin},
		{"seven point favorite wins by seven", "-7", 24, 17, grading.ResultWin},
		{"seven point favorite wins by six", "-7", 23, 17, grading.ResultLoss},
		{"underdog covers in a loss", "6.5", 17, 20, grading.ResultWin},
		{"underdog pushes", "3", 17, 20, grading.ResultPush},
		{"underdog blown out", "3", 14, 20, grading.ResultLoss},
		{"underdog wins outright", "3", 20, 14, grading.ResultWin},
		{"pick'em tie", "0", 21, 21, grading.ResultPush},
		{"pick'em home wins", "0", 21, 17, grading.ResultWin},
		{"pick'em home loses", "0", 17, 21, grading.ResultLoss},
		{"half point favorite in a tie", "-0.5", 21, 21, grading.ResultLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := grading.Grade(pickOn(models.SideHomeSpread, tt.spread), tt.home, tt.away)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.Result)
		})
	}
}

func TestGradeAwaySide(t *testing.T) {
	// away getting 6.5, loses by three: covers
	ev, err := grading.Grade(pickOn(models.SideAwaySpread, "6.5"), 20, 17)
	require.NoError(t, err)
	assert.Equal(t, grading.ResultWin, ev.Result)
	assert.Equal(t, "3", ev.ActualMargin.String())
	assert.True(t, ev.RequiredMargin.Equal(decimal.RequireFromString("-6.5")))

	// away getting 6.5, wins outright
	ev, err = grading.Grade(pickOn(models.SideAwaySpread, "6.5"), 17, 20)
	require.NoError(t, err)
	assert.Equal(t, grading.ResultWin, ev.Result)

	// away laying 3, wins by exactly three: push
	ev, err = grading.Grade(pickOn(models.SideAwaySpread, "-3"), 17, 20)
	require.NoError(t, err)
	assert.Equal(t, grading.ResultPush, ev.Result)

	// away laying 3, wins by two: loss
	ev, err = grading.Grade(pickOn(models.SideAwaySpread, "-3"), 18, 20)
	require.NoError(t, err)
	assert.Equal(t, grading.ResultLoss, ev.Result)
}

// A home pick and an away pick holding the same side-perspective spread must
// grade identically when the score is mirrored: the two sides run the same
// comparison on the same (spread, own margin) pair.
func TestGradeMirrorSymmetry(t *testing.T) {
	spreads := []string{"-13.5", "-7", "-6.5", "-3", "-0.5", "0", "0.5", "3", "6.5", "7", "13.5"}
	finals := [][2]int64{{0, 0}, {17, 20}, {20, 17}, {24, 17}, {23, 17}, {21, 21}, {3, 45}, {28, 27}}

	for _, s := range spreads {
		for _, f := range finals {
			home, err := grading.Grade(pickOn(models.SideHomeSpread, s), f[0], f[1])
			require.NoError(t, err)

			away, err := grading.Grade(pickOn(models.SideAwaySpread, s), f[1], f[0])
			require.NoError(t, err)

			assert.Equal(t, home.Result, away.Result, "spread %s final %d-%d", s, f[0], f[1])
			assert.True(t, home.RequiredMargin.Equal(away.RequiredMargin), "spread %s", s)
		}
	}
}

// Opposite sides of the same line on the same game: a win on one side is a
// loss on the other, and pushes land on both.
func TestGradeOppositeSides(t *testing.T) {
	spreads := []string{"-7", "-3", "-0.5", "0", "0.5", "3", "7"}
	finals := [][2]int64{{20, 17}, {17, 20}, {21, 21}, {24, 17}, {14, 20}}

	for _, s := range spreads {
		neg := decimal.RequireFromString(s).Neg().String()
		for _, f := range finals {
			home, err := grading.Grade(pickOn(models.SideHomeSpread, s), f[0], f[1])
			require.NoError(t, err)

			away, err := grading.Grade(pickOn(models.SideAwaySpread, neg), f[0], f[1])
			require.NoError(t, err)

			switch home.Result {
			case grading.ResultWin:
				assert.Equal(t, grading.ResultLoss, away.Result, "spread %s final %d-%d", s, f[0], f[1])
			case grading.ResultLoss:
				assert.Equal(t, grading.ResultWin, away.Result, "spread %s final %d-%d", s, f[0], f[1])
			default:
				assert.Equal(t, grading.ResultPush, away.Result, "spread %s final %d-%d", s, f[0], f[1])
			}
		}
	}
}

// Landing exactly on the number is always a push, on either side of the line.
func TestGradePushBoundary(t *testing.T) {
	// home laying 3, wins by exactly 3
	ev, err := grading.Grade(pickOn(models.SideHomeSpread, "-3"), 20, 17)
	require.NoError(t, err)
	assert.Equal(t, grading.ResultPush, ev.Result)

	// home getting 3, loses by exactly 3
	ev, err = grading.Grade(pickOn(models.SideHomeSpread, "3"), 17, 20)
	require.NoError(t, err)
	assert.Equal(t, grading.ResultPush, ev.Result)

	// half point lines can never push
	for _, f := range [][2]int64{{20, 17}, {17, 20}, {21, 21}, {24, 14}} {
		ev, err := grading.Grade(pickOn(models.SideHomeSpread, "-2.5"), f[0], f[1])
		require.NoError(t, err)
		assert.NotEqual(t, grading.ResultPush, ev.Result, "final %d-%d", f[0], f[1])
	}
}

func TestGradeEvaluationFields(t *testing.T) {
	p := pickOn(models.SideHomeSpread, "-6.5")
	p.TriplePlay = true

	ev, err := grading.Grade(p, 20, 17)
	require.NoError(t, err)

	assert.Equal(t, p.ID, ev.PickID)
	assert.Equal(t, p.UserID, ev.UserID)
	assert.Equal(t, models.SideHomeSpread, ev.Side)
	assert.True(t, ev.TriplePlay)
	assert.Equal(t, "3", ev.ActualMargin.String())
	assert.True(t, ev.RequiredMargin.Equal(decimal.RequireFromString("6.5")))
}

func TestGradeMissingSpread(t *testing.T) {
	p := &models.Pick{ID: 42, Side: models.SideHomeSpread}

	_, err := grading.Grade(p, 20, 17)
	require.Error(t, err)
	assert.ErrorIs(t, err, grading.ErrMissingSpread)
	assert.Contains(t, err.Error(), "42")
}

func TestGradeUnknownSide(t *testing.T) {
	p := pickOn("moneyline", "-3")

	_, err := grading.Grade(p, 20, 17)
	require.Error(t, err)
	assert.ErrorIs(t, err, grading.ErrUnknownSide)
}
