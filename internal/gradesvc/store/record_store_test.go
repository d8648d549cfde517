package store

import (
	"testing"

	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// The standings ORDER BY is this same metric doubled; keep them in lockstep.
func TestContestPoints(t *testing.T) {
	tests := []struct {
		name string
		rec  models.UserRecord
		want string
	}{
		{"wins only", models.UserRecord{Wins: 4}, "4"},
		{"push counts half", models.UserRecord{Wins: 3, Pushes: 1}, "3.5"},
		{"triple play win counts triple", models.UserRecord{Wins: 2, TriplePlayWins: 1}, "4"},
		{"losses count nothing", models.UserRecord{Wins: 1, Losses: 9}, "1"},
		{"full card", models.UserRecord{Wins: 5, Losses: 2, Pushes: 2, TriplePlayWins: 2}, "10"},
		{"empty record", models.UserRecord{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contestPoints(&tt.rec)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}
