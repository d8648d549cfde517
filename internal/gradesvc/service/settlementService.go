package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/pickem-services/internal/gradesvc/grading"
	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"github.com/avvvet/pickem-services/internal/gradesvc/store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GameStore is the game persistence settlement needs. GetGameByID returns
// nil, nil when the game does not exist. SettleGame writes the score and every
// result in one transaction and reports how many picks were actually updated.
// A non-nil expected score turns the write into a compare-and-swap on the
// stored score; a mismatch returns store.ErrScoreChanged with nothing written.
type GameStore interface {
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	SettleGame(ctx context.Context, game *models.Game, expected *models.Score, evals []grading.Evaluation, evaluatedAt time.Time) (int, error)
}

type PickStore interface {
	ListPicksByGameID(ctx context.Context, gameID int64) ([]*models.Pick, error)
}

// AuditStore records settlement runs. Best effort: a failed audit write is
// logged, never surfaced to the caller.
type AuditStore interface {
	RecordRun(ctx context.Context, run *models.SettlementRun) error
}

type SettlementService struct {
	gameStore  GameStore
	pickStore  PickStore
	auditStore AuditStore
}

func NewSettlementService(gameStore GameStore, pickStore PickStore, auditStore AuditStore) *SettlementService {
	return &SettlementService{
		gameStore:  gameStore,
		pickStore:  pickStore,
		auditStore: auditStore,
	}
}

type SettlementResult struct {
	RunID        string               `json:"run_id"`
	Game         *models.Game         `json:"game"`
	Evaluations  []grading.Evaluation `json:"evaluations"`
	PicksUpdated int                  `json:"picks_updated"`
}

// FinalizeGame persists the final score and grades every pick on the game,
// submitted or not; the submission gate belongs to the pick entry workflow.
func (s *SettlementService) FinalizeGame(ctx context.Context, gameID, homeScore, awayScore int64) (*SettlementResult, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrInvalidScore
	}
	return s.settle(ctx, gameID, homeScore, awayScore, false, models.TriggerFinalize)
}

// ForceFinalizeGame is the emergency override for games whose real score is
// unobtainable. It finalizes at 0-0 with the forced flag set, keeping the
// placeholder distinguishable from a genuine 0-0 downstream.
func (s *SettlementService) ForceFinalizeGame(ctx context.Context, gameID int64) (*SettlementResult, error) {
	return s.settle(ctx, gameID, 0, 0, true, models.TriggerForceFinal)
}

// reevaluateAttempts bounds the retries when a re-grade races a concurrent
// score correction.
const reevaluateAttempts = 3

// ReevaluateGamePicks re-grades every pick from the score already stored on
// the game and overwrites prior results. It never invents a score, and it is
// idempotent: the same stored score yields the same evaluations every time.
// The write asserts the stored score is still the one it graded from; if a
// correction landed in between, the pass restarts from the fresh score instead
// of reverting the correction.
func (s *SettlementService) ReevaluateGamePicks(ctx context.Context, gameID int64) (*SettlementResult, error) {
	var lastErr error
	for attempt := 0; attempt < reevaluateAttempts; attempt++ {
		game, err := s.gameStore.GetGameByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		if game == nil {
			return nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
		}
		if !game.HomeScore.Valid || !game.AwayScore.Valid {
			return nil, fmt.Errorf("game %d: %w", gameID, ErrScoreNotRecorded)
		}

		expected := &models.Score{Home: game.HomeScore.Int64, Away: game.AwayScore.Int64}
		res, err := s.settleGame(ctx, game, expected.Home, expected.Away, game.Forced, models.TriggerReevaluate, expected)
		if errors.Is(err, store.ErrScoreChanged) {
			lastErr = err
			continue
		}
		return res, err
	}
	return nil, fmt.Errorf("game %d: %w", gameID, lastErr)
}

func (s *SettlementService) settle(ctx context.Context, gameID, homeScore, awayScore int64, forced bool, trigger string) (*SettlementResult, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
	}
	return s.settleGame(ctx, game, homeScore, awayScore, forced, trigger, nil)
}

func (s *SettlementService) settleGame(ctx context.Context, game *models.Game, homeScore, awayScore int64, forced bool, trigger string, expected *models.Score) (*SettlementResult, error) {
	picks, err := s.pickStore.ListPicksByGameID(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	// Grade everything up front. A pick without a spread is a data integrity
	// defect and fails the whole batch before anything is written.
	evals := make([]grading.Evaluation, 0, len(picks))
	for _, p := range picks {
		ev, err := grading.Grade(p, homeScore, awayScore)
		if err != nil {
			return nil, fmt.Errorf("grade game %d: %w", game.ID, err)
		}
		evals = append(evals, ev)
	}

	game.HomeScore = sql.NullInt64{Int64: homeScore, Valid: true}
	game.AwayScore = sql.NullInt64{Int64: awayScore, Valid: true}
	game.Status = models.GameStatusFinal
	game.Forced = forced

	updated, err := s.gameStore.SettleGame(ctx, game, expected, evals, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	res := &SettlementResult{
		RunID:        uuid.NewString(),
		Game:         game,
		Evaluations:  evals,
		PicksUpdated: updated,
	}
	s.recordRun(ctx, res, trigger)

	return res, nil
}

func (s *SettlementService) recordRun(ctx context.Context, res *SettlementResult, trigger string) {
	if s.auditStore == nil {
		return
	}

	now := time.Now().UTC()
	run := &models.SettlementRun{
		RunID:        res.RunID,
		GameID:       res.Game.ID,
		Trigger:      trigger,
		HomeScore:    res.Game.HomeScore.Int64,
		AwayScore:    res.Game.AwayScore.Int64,
		Forced:       res.Game.Forced,
		PicksUpdated: res.PicksUpdated,
		CreatedAt:    now,
		ExpiresAt:    now.Add(90 * 24 * time.Hour),
	}
	if err := s.auditStore.RecordRun(ctx, run); err != nil {
		log.Warnf("settlement run %s for game %d not recorded: %v", run.RunID, run.GameID, err)
	}
}
