package store

import (
	"context"

	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RecordStore struct {
	db *pgxpool.Pool
}

func NewRecordStore(db *pgxpool.Pool) *RecordStore {
	return &RecordStore{db: db}
}

// GetUserRecord aggregates a user's graded, submitted picks for one season.
func (s *RecordStore) GetUserRecord(ctx context.Context, userID int64, season int) (*models.UserRecord, error) {
	rec := &models.UserRecord{UserID: userID}

	err := s.db.QueryRow(ctx, `
        SELECT
            COALESCE(COUNT(*) FILTER (WHERE p.result = 'win'), 0),
            COALESCE(COUNT(*) FILTER (WHERE p.result = 'loss'), 0),
            COALESCE(COUNT(*) FILTER (WHERE p.result = 'push'), 0),
            COALESCE(COUNT(*) FILTER (WHERE p.result = 'win' AND p.triple_play), 0)
        FROM picks p
        JOIN games g ON g.id = p.game_id
        WHERE p.user_id = $1 AND p.submitted AND g.season = $2
    `, userID, season).Scan(&rec.Wins, &rec.Losses, &rec.Pushes, &rec.TriplePlayWins)

	if err != nil {
		return nil, err
	}

	rec.Points = contestPoints(rec)
	return rec, nil
}

// ListSeasonStandings returns one record per user with at least one graded,
// submitted pick in the season, highest contest points first, ties broken by
// user id. The ORDER BY is contestPoints doubled to stay in integers:
// 2 per win, 1 per push, 4 more per triple play win.
func (s *RecordStore) ListSeasonStandings(ctx context.Context, season int) ([]*models.UserRecord, error) {
	rows, err := s.db.Query(ctx, `
        SELECT p.user_id,
            COUNT(*) FILTER (WHERE p.result = 'win'),
            COUNT(*) FILTER (WHERE p.result = 'loss'),
            COUNT(*) FILTER (WHERE p.result = 'push'),
            COUNT(*) FILTER (WHERE p.result = 'win' AND p.triple_play)
        FROM picks p
        JOIN games g ON g.id = p.game_id
        WHERE p.submitted AND p.result IS NOT NULL AND g.season = $1
        GROUP BY p.user_id
        ORDER BY COUNT(*) FILTER (WHERE p.result = 'win') * 2
               + COUNT(*) FILTER (WHERE p.result = 'push')
               + COUNT(*) FILTER (WHERE p.result = 'win' AND p.triple_play) * 4 DESC,
            p.user_id
    `, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.UserRecord
	for rows.Next() {
		rec := &models.UserRecord{}
		err := rows.Scan(&rec.UserID, &rec.Wins, &rec.Losses, &rec.Pushes, &rec.TriplePlayWins)
		if err != nil {
			return nil, err
		}
		rec.Points = contestPoints(rec)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// contestPoints: a win is a point, a push half a point, and a triple play win
// counts triple (two bonus points on top of the win).
func contestPoints(rec *models.UserRecord) decimal.Decimal {
	points := decimal.NewFromInt(rec.Wins)
	points = points.Add(decimal.NewFromInt(rec.Pushes).Div(decimal.NewFromInt(2)))
	points = points.Add(decimal.NewFromInt(rec.TriplePlayWins).Mul(decimal.NewFromInt(2)))
	return points
}
