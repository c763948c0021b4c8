package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

type ArchiveRepository interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

type dbArchive struct {
	collection *mongo.Collection
}

func NewArchiveRepository(db *mongo.Database, collection string) ArchiveRepository {
	return &dbArchive{
		collection: db.Collection(collection),
	}
}

// Save - upserts on match_id, a record written twice stays a single document.
func (that *dbArchive) Save(ctx context.Context, record *entity.MatchRecord) error {
	filter := bson.M{"match_id": record.MatchID}
	opts := options.Replace().SetUpsert(true)

	if _, err := that.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to archive match %s: %w", record.MatchID, err)
	}

	return nil
}
