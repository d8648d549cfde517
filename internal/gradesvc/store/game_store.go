package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/pickem-services/internal/gradesvc/grading"
	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrScoreChanged means the stored score moved between a re-grade's read and
// its write; the caller should grade again from the fresh score.
var ErrScoreChanged = errors.New("stored score changed during settlement")

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT id, season, week, home_team, away_team, start_at, spread,
		       home_score, away_score, status, forced, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.Season,
		&game.Week,
		&game.HomeTeam,
		&game.AwayTeam,
		&game.StartAt,
		&game.Spread,
		&game.HomeScore,
		&game.AwayScore,
		&game.Status,
		&game.Forced,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// SettleGame persists the final score and every graded result in one
// transaction. The games row is updated first and its row lock is held until
// commit, so two settlements of the same game never interleave. Either the
// whole pass commits or nothing is written.
//
// A non-nil expected score makes the game update conditional on the stored
// score still being that value: a re-grade that raced a score correction
// writes nothing and gets ErrScoreChanged instead of reverting the correction.
func (s *GameStore) SettleGame(ctx context.Context, game *models.Game, expected *models.Score, evals []grading.Evaluation, evaluatedAt time.Time) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin settlement for game %d: %w", game.ID, err)
	}
	defer tx.Rollback(ctx)

	var ct pgconn.CommandTag
	if expected != nil {
		ct, err = tx.Exec(ctx, `
			UPDATE games
			SET home_score = $1, away_score = $2, status = $3, forced = $4, updated_at = now()
			WHERE id = $5 AND home_score = $6 AND away_score = $7
		`, game.HomeScore, game.AwayScore, game.Status, game.Forced, game.ID, expected.Home, expected.Away)
		if err != nil {
			return 0, fmt.Errorf("update score for game %d: %w", game.ID, err)
		}
		if ct.RowsAffected() == 0 {
			return 0, fmt.Errorf("update score for game %d: %w", game.ID, ErrScoreChanged)
		}
	} else {
		ct, err = tx.Exec(ctx, `
			UPDATE games
			SET home_score = $1, away_score = $2, status = $3, forced = $4, updated_at = now()
			WHERE id = $5
		`, game.HomeScore, game.AwayScore, game.Status, game.Forced, game.ID)
		if err != nil {
			return 0, fmt.Errorf("update score for game %d: %w", game.ID, err)
		}
		if ct.RowsAffected() == 0 {
			return 0, fmt.Errorf("update score for game %d: %w", game.ID, pgx.ErrNoRows)
		}
	}

	updated := 0
	for _, ev := range evals {
		ct, err := tx.Exec(ctx, `
			UPDATE picks
			SET result = $1, evaluated_at = $2, updated_at = now()
			WHERE id = $3
		`, string(ev.Result), evaluatedAt, ev.PickID)
		if err != nil {
			return 0, fmt.Errorf("update result for pick %d: %w", ev.PickID, err)
		}
		updated += int(ct.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit settlement for game %d: %w", game.ID, err)
	}

	return updated, nil
}
