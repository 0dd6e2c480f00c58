package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
)

const networkConfigID = authority.ConfigTag

type networkConfigDoc struct {
	ID                  string `bson:"_id"`
	model.NetworkConfig `bson:",inline"`
}

func (db *Database) SaveNewNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error {
	doc := networkConfigDoc{
		ID:            networkConfigID,
		NetworkConfig: *cfg,
	}

	_, err := db.collection(model.NetworkConfigCollection).InsertOne(ctx, doc)
	if isDuplicateKey(err) {
		return &DuplicateKeyError{
			Key:     networkConfigID,
			Message: "network config already exists",
		}
	}
	return err
}

func (db *Database) GetNetworkConfig(ctx context.Context) (*model.NetworkConfig, error) {
	filter := bson.M{"_id": networkConfigID}
	res := db.collection(model.NetworkConfigCollection).FindOne(ctx, filter)

	var doc networkConfigDoc
	err := res.Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     networkConfigID,
				Message: "network config not found",
			}
		}
		return nil, err
	}

	return &doc.NetworkConfig, nil
}

func (db *Database) UpsertNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error {
	filter := bson.M{
		"_id": networkConfigID,
	}
	update := bson.M{"$set": cfg}

	_, err := db.collection(model.NetworkConfigCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
