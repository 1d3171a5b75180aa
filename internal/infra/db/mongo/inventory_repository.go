package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaininventory "dreamstay/internal/domain/inventory"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

// InventoryRepository stores one document per (property, date) night. Dates
// are kept as YYYY-MM-DD strings, which makes the unique index readable and
// lets range queries use plain string comparison.
type InventoryRepository struct {
	col *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{col: db.Collection("availability")}
}

type inventoryDocument struct {
	PropertyID  int64  `bson:"property_id"`
	Date        string `bson:"date"`
	Price       int64  `bson:"price"`
	IsAvailable bool   `bson:"is_available"`
	IsBlocked   bool   `bson:"is_blocked"`
	IsReserved  bool   `bson:"is_reserved"`
	CreatedAt   int64  `bson:"created_at"`
}

func newInventoryDocument(rec domaininventory.Record) inventoryDocument {
	return inventoryDocument{
		PropertyID:  rec.PropertyID,
		Date:        rec.Date.String(),
		Price:       int64(rec.Price),
		IsAvailable: rec.IsAvailable,
		IsBlocked:   rec.IsBlocked,
		IsReserved:  rec.IsReserved,
		CreatedAt:   rec.CreatedAt.UnixMilli(),
	}
}

func (d inventoryDocument) toRecord() (domaininventory.Record, error) {
	date, err := stay.ParseDate(d.Date)
	if err != nil {
		return domaininventory.Record{}, apperr.Storage("corrupt availability date", err)
	}
	return domaininventory.Record{
		PropertyID:  d.PropertyID,
		Date:        date,
		Price:       money.Amount(d.Price),
		IsAvailable: d.IsAvailable,
		IsBlocked:   d.IsBlocked,
		IsReserved:  d.IsReserved,
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
	}, nil
}

func (r *InventoryRepository) Get(ctx context.Context, propertyID int64, date stay.DateKey) (*domaininventory.Record, error) {
	var doc inventoryDocument
	filter := bson.M{"property_id": propertyID, "date": date.String()}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("availability record not found")
		}
		return nil, apperr.Storage("load availability record", err)
	}
	rec, err := doc.toRecord()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *InventoryRepository) Range(ctx context.Context, propertyID int64, from, to stay.DateKey) ([]domaininventory.Record, error) {
	filter := bson.M{
		"property_id": propertyID,
		"date":        bson.M{"$gte": from.String(), "$lt": to.String()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage("load availability range", err)
	}
	return decodeRecords(ctx, cursor)
}

func (r *InventoryRepository) Bookable(ctx context.Context, propertyID int64, dates []stay.DateKey) ([]domaininventory.Record, error) {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, d.String())
	}
	filter := bson.M{
		"property_id":  propertyID,
		"date":         bson.M{"$in": keys},
		"is_available": true,
		"is_blocked":   false,
		"is_reserved":  false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage("load bookable records", err)
	}
	return decodeRecords(ctx, cursor)
}

func (r *InventoryRepository) Insert(ctx context.Context, rec domaininventory.Record) error {
	if _, err := r.col.InsertOne(ctx, newInventoryDocument(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("availability record already exists for this date")
		}
		return apperr.Storage("insert availability record", err)
	}
	return nil
}

func (r *InventoryRepository) Apply(ctx context.Context, propertyID int64, date stay.DateKey, m domaininventory.Mutation) error {
	set := bson.M{}
	if m.Price != nil {
		set["price"] = int64(*m.Price)
	}
	if m.IsAvailable != nil {
		set["is_available"] = *m.IsAvailable
	}
	if m.IsBlocked != nil {
		set["is_blocked"] = *m.IsBlocked
	}
	if len(set) == 0 {
		return nil
	}
	filter := bson.M{
		"property_id": propertyID,
		"date":        date.String(),
		"is_reserved": false,
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return apperr.Storage("update availability record", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing record from a reserved one.
		count, err := r.col.CountDocuments(ctx, bson.M{"property_id": propertyID, "date": date.String()})
		if err != nil {
			return apperr.Storage("update availability record", err)
		}
		if count == 0 {
			return apperr.NotFound("availability record not found")
		}
		return apperr.Conflict("availability record is reserved")
	}
	return nil
}

// Reserve flips is_reserved one night at a time in ascending date order.
// Each update matches only a still-bookable document, so two overlapping
// commits serialize on their first shared night: against a committed winner
// the loser modifies zero documents, against a still-open transaction the
// server fails the update with WriteConflict. Either way the whole call
// reports a conflict for the transaction to roll back.
func (r *InventoryRepository) Reserve(ctx context.Context, propertyID int64, dates []stay.DateKey) error {
	for _, d := range dates {
		filter := bson.M{
			"property_id":  propertyID,
			"date":         d.String(),
			"is_available": true,
			"is_blocked":   false,
			"is_reserved":  false,
		}
		res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"is_reserved": true}})
		if err != nil {
			if isWriteConflict(err) {
				return apperr.Conflict("some dates are not available for booking")
			}
			return apperr.Storage("reserve night", err)
		}
		if res.ModifiedCount != 1 {
			return apperr.Conflict("some dates are not available for booking")
		}
	}
	return nil
}

func decodeRecords(ctx context.Context, cursor *mongo.Cursor) ([]domaininventory.Record, error) {
	defer cursor.Close(ctx)
	var out []domaininventory.Record
	for cursor.Next(ctx) {
		var doc inventoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.Storage("decode availability record", err)
		}
		rec, err := doc.toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Storage("iterate availability records", err)
	}
	return out, nil
}
