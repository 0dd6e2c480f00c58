package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shekel-labs/shekel-settlement/internal/config"
)

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	NetworkConfigCollection: {},
	StatsCollection:         {},
	AuthorityCollection:     {},
	TokenAccountCollection: {
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "asset_id", Value: 1}}},
	},
	SettlementCollection: {
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
	},
}

// Setup creates the collections and indexes. Collections cannot be created
// implicitly inside a transaction on older servers, so this has to run before
// the first unit of work.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	client, err := mongo.Connect(ctx, cfg.ClientOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for name, idxs := range collections {
		if err := createCollection(ctx, database, name); err != nil {
			return err
		}
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and indexes created successfully")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, name string) error {
	existing, err := database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	if len(existing) > 0 {
		log.Ctx(ctx).Debug().Str("collection", name).Msg("Collection already exists")
		return nil
	}

	if err := database.CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	log.Ctx(ctx).Debug().Str("collection", name).Msg("Collection created")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Keys) == 0 {
		return nil
	}

	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	_, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}
	return nil
}
