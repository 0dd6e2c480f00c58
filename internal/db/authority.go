package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
)

const authorityID = authority.AuthorityTag

func (db *Database) SaveNewAuthority(ctx context.Context, doc *model.AuthorityDocument) error {
	toSave := *doc
	toSave.ID = authorityID

	_, err := db.collection(model.AuthorityCollection).InsertOne(ctx, toSave)
	if isDuplicateKey(err) {
		return &DuplicateKeyError{
			Key:     authorityID,
			Message: "authority already exists",
		}
	}
	return err
}

func (db *Database) GetAuthority(ctx context.Context) (*model.AuthorityDocument, error) {
	var doc model.AuthorityDocument
	err := db.collection(model.AuthorityCollection).
		FindOne(ctx, bson.M{"_id": authorityID}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     authorityID,
				Message: "authority not found",
			}
		}
		return nil, err
	}
	return &doc, nil
}
