package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arthurazevedods/maker-challenge-server/internal/model"
)

// collectionIndexes lists every collection the API uses and the
// secondary indexes it needs. Collections without indexes map to nil.
var collectionIndexes = map[string][]mongo.IndexModel{
	model.StudentCollection: nil,
	model.TeamCollection: {
		{
			Keys:    bson.D{{Key: "membros", Value: 1}},
			Options: options.Index().SetName("membros_1"),
		},
	},
	model.ChallengeCollection: nil,
}

// Migrate brings the database up to what the API expects.
//
// MongoDB has no schema, so "migrating" means:
//   - create missing collections (challenges included, even though no route uses them yet)
//   - create missing indexes; CreateMany is a no-op for identical existing indexes
//   - log whether anything changed
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	existing, err := db.DB.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	created := 0
	for name, indexes := range collectionIndexes {
		if !present[name] {
			if err := db.DB.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("creating collection %s: %w", name, err)
			}
			created++
		}

		if len(indexes) == 0 {
			continue
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}

	if created == 0 {
		logger.Info().Msgf("database collections up to date, %d collections", len(collectionIndexes))
	} else {
		logger.Info().Msgf("created %d of %d database collections", created, len(collectionIndexes))
	}
	return nil
}
