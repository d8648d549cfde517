package audit

import (
	"context"

	"github.com/avvvet/pickem-services/internal/gradesvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "settlement_runs"

// Store keeps the settlement-run audit trail. Every finalize, reevaluate and
// force-final pass leaves one document here; forced runs are how a 0-0
// placeholder is told apart from a real 0-0 later.
type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the TTL index that expires old settlement runs.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0), // MongoDB expires on the expires_at value itself
	}

	_, err := s.col.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (s *Store) RecordRun(ctx context.Context, run *models.SettlementRun) error {
	_, err := s.col.InsertOne(ctx, run)
	return err
}
