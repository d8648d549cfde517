package store

import (
	"context"
	"fmt"

	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PickStore struct {
	db *pgxpool.Pool
}

func NewPickStore(db *pgxpool.Pool) *PickStore {
	return &PickStore{db: db}
}

// ListPicksByGameID returns every pick referencing the game, submitted or
// not. Settlement grades them all; the submission gate is enforced upstream.
func (s *PickStore) ListPicksByGameID(ctx context.Context, gameID int64) ([]*models.Pick, error) {
	query := `
		SELECT id, user_id, game_id, side, spread, submitted, triple_play,
		       result, evaluated_at, created_at, updated_at
		FROM picks
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		var p models.Pick
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.GameID,
			&p.Side,
			&p.Spread,
			&p.Submitted,
			&p.TriplePlay,
			&p.Result,
			&p.EvaluatedAt,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		picks = append(picks, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list picks for game %d: %w", gameID, err)
	}

	return picks, nil
}
