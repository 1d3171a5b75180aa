package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dreamstay/internal/domain/shared/apperr"
)

// nextSequence allocates the next integer id from the counters collection.
// The $inc upsert is atomic per counter name, so concurrent inserts never
// share an id.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, apperr.Storage("allocate id", err)
	}
	return doc.Value, nil
}
