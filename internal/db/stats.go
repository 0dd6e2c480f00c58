package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
)

const statsID = authority.StatsTag

// SaveNewStats inserts the stats record. It exists exactly once per deployment.
func (db *Database) SaveNewStats(ctx context.Context, stats *model.StatsDocument) error {
	doc := *stats
	doc.ID = statsID
	doc.LastUpdated = time.Now().Unix()

	_, err := db.collection(model.StatsCollection).InsertOne(ctx, doc)
	if isDuplicateKey(err) {
		return &DuplicateKeyError{
			Key:     statsID,
			Message: "stats already exist",
		}
	}
	return err
}

func (db *Database) GetStats(ctx context.Context) (*model.StatsDocument, error) {
	var stats model.StatsDocument
	err := db.collection(model.StatsCollection).
		FindOne(ctx, bson.M{"_id": statsID}).
		Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     statsID,
				Message: "stats not found",
			}
		}
		return nil, err
	}
	return &stats, nil
}

// UpdateStats overwrites the running totals. The stats record must exist.
func (db *Database) UpdateStats(ctx context.Context, stats *model.StatsDocument) error {
	filter := bson.M{"_id": statsID}
	update := bson.M{
		"$set": bson.M{
			"amount_moved":              stats.AmountMoved,
			"amount_rewarded_sender":    stats.AmountRewardedSender,
			"amount_rewarded_recipient": stats.AmountRewardedRecipient,
			"last_updated":              time.Now().Unix(),
		},
	}

	res, err := db.collection(model.StatsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     statsID,
			Message: "stats not found",
		}
	}
	return nil
}
