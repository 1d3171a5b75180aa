package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique constraints the repositories rely on.
// The (property_id, date) index is what turns a double insert into a
// duplicate key error instead of a second record for the same night.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	availability := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "property_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("availability").Indexes().CreateMany(ctx, availability); err != nil {
		return err
	}

	properties := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "host_id", Value: 1},
				{Key: "title_key", Value: 1},
				{Key: "location_key", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("properties").Indexes().CreateMany(ctx, properties); err != nil {
		return err
	}

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	bookings := []mongo.IndexModel{
		{Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "property_id", Value: 1}}},
	}
	if _, err := db.Collection("bookings").Indexes().CreateMany(ctx, bookings); err != nil {
		return err
	}

	sessions := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := db.Collection("sessions").Indexes().CreateMany(ctx, sessions); err != nil {
		return err
	}
	return nil
}
