package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

func (db *Database) SaveNewTokenAccount(ctx context.Context, account *model.TokenAccount) error {
	_, err := db.collection(model.TokenAccountCollection).InsertOne(ctx, account)
	if isDuplicateKey(err) {
		return &DuplicateKeyError{
			Key:     account.Address.String(),
			Message: "token account already exists",
		}
	}
	return err
}

func (db *Database) GetTokenAccount(ctx context.Context, address types.Address) (*model.TokenAccount, error) {
	var account model.TokenAccount
	err := db.collection(model.TokenAccountCollection).
		FindOne(ctx, bson.M{"_id": address}).
		Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     address.String(),
				Message: fmt.Sprintf("token account %s not found", address),
			}
		}
		return nil, err
	}
	return &account, nil
}

func (db *Database) GetTokenAccountsByOwner(ctx context.Context, owner types.Address) ([]*model.TokenAccount, error) {
	cursor, err := db.collection(model.TokenAccountCollection).Find(
		ctx,
		bson.M{"owner": owner},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*model.TokenAccount
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (db *Database) UpdateTokenAccountBalance(ctx context.Context, address types.Address, balance uint64) error {
	filter := bson.M{"_id": address}
	update := bson.M{"$set": bson.M{"balance": balance}}

	res, err := db.collection(model.TokenAccountCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     address.String(),
			Message: fmt.Sprintf("token account %s not found", address),
		}
	}
	return nil
}
