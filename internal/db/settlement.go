package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
)

func (db *Database) SaveSettlement(ctx context.Context, doc *model.SettlementDocument) error {
	_, err := db.collection(model.SettlementCollection).InsertOne(ctx, doc)
	if isDuplicateKey(err) {
		return &DuplicateKeyError{
			Key:     doc.ID,
			Message: "settlement already exists",
		}
	}
	return err
}

func (db *Database) GetSettlement(ctx context.Context, id string) (*model.SettlementDocument, error) {
	var doc model.SettlementDocument
	err := db.collection(model.SettlementCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     id,
				Message: "settlement not found",
			}
		}
		return nil, err
	}
	return &doc, nil
}
