package service

import (
	"context"

	"github.com/avvvet/pickem-services/internal/gradesvc/models"
)

type RecordStore interface {
	GetUserRecord(ctx context.Context, userID int64, season int) (*models.UserRecord, error)
	ListSeasonStandings(ctx context.Context, season int) ([]*models.UserRecord, error)
}

type StatsService struct {
	recordStore RecordStore
}

func NewStatsService(recordStore RecordStore) *StatsService {
	return &StatsService{recordStore: recordStore}
}

func (s *StatsService) GetUserRecord(ctx context.Context, userID int64, season int) (*models.UserRecord, error) {
	if season <= 0 {
		return nil, ErrInvalidSeason
	}
	return s.recordStore.GetUserRecord(ctx, userID, season)
}

func (s *StatsService) ListSeasonStandings(ctx context.Context, season int) ([]*models.UserRecord, error) {
	if season <= 0 {
		return nil, ErrInvalidSeason
	}
	return s.recordStore.ListSeasonStandings(ctx, season)
}
