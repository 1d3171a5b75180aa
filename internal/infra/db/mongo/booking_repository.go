package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "dreamstay/internal/domain/booking"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

type BookingRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{db: db, col: db.Collection("bookings")}
}

type bookingDocument struct {
	ID          int64  `bson:"_id"`
	GuestID     int64  `bson:"guest_id"`
	PropertyID  int64  `bson:"property_id"`
	CheckIn     string `bson:"check_in"`
	CheckOut    string `bson:"check_out"`
	TotalPrice  int64  `bson:"total_price"`
	Status      string `bson:"status"`
	VoucherCode string `bson:"voucher_code"`
	CreatedAt   int64  `bson:"created_at"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:          b.ID,
		GuestID:     b.GuestID,
		PropertyID:  b.PropertyID,
		CheckIn:     b.CheckIn.String(),
		CheckOut:    b.CheckOut.String(),
		TotalPrice:  int64(b.TotalPrice),
		Status:      string(b.Status),
		VoucherCode: b.VoucherCode,
		CreatedAt:   b.CreatedAt.UnixMilli(),
	}
}

func (d bookingDocument) toEntity() (domainbooking.Booking, error) {
	checkIn, err := stay.ParseDate(d.CheckIn)
	if err != nil {
		return domainbooking.Booking{}, apperr.Storage("corrupt booking check-in", err)
	}
	checkOut, err := stay.ParseDate(d.CheckOut)
	if err != nil {
		return domainbooking.Booking{}, apperr.Storage("corrupt booking check-out", err)
	}
	return domainbooking.Booking{
		ID:          d.ID,
		GuestID:     d.GuestID,
		PropertyID:  d.PropertyID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalPrice:  money.Amount(d.TotalPrice),
		Status:      domainbooking.Status(d.Status),
		VoucherCode: d.VoucherCode,
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
	}, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	id, err := nextSequence(ctx, r.db, "bookings")
	if err != nil {
		return err
	}
	b.ID = id
	if _, err := r.col.InsertOne(ctx, newBookingDocument(b)); err != nil {
		return apperr.Storage("insert booking", err)
	}
	return nil
}

func (r *BookingRepository) ByID(ctx context.Context, id int64) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Storage("load booking", err)
	}
	entity, err := doc.toEntity()
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, apperr.Storage("list bookings", err)
	}
	defer cursor.Close(ctx)
	var out []domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.Storage("decode booking", err)
		}
		entity, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Storage("iterate bookings", err)
	}
	return out, nil
}

// TopDestinations joins confirmed bookings to their listings and groups by
// location, most reserved first.
func (r *BookingRepository) TopDestinations(ctx context.Context, limit int) ([]domainbooking.DestinationCount, error) {
	if limit <= 0 {
		return nil, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domainbooking.StatusConfirmed)}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "property_id",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: "$property"}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$property.location",
			"reservations": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "reservations", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Storage("aggregate destinations", err)
	}
	defer cursor.Close(ctx)
	var out []domainbooking.DestinationCount
	for cursor.Next(ctx) {
		var row struct {
			Location     string `bson:"_id"`
			Reservations int64  `bson:"reservations"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, apperr.Storage("decode destination row", err)
		}
		out = append(out, domainbooking.DestinationCount{Location: row.Location, Reservations: row.Reservations})
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Storage("iterate destinations", err)
	}
	return out, nil
}
