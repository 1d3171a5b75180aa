package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
)

type PropertyRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{db: db, col: db.Collection("properties")}
}

type propertyDocument struct {
	ID          int64    `bson:"_id"`
	HostID      int64    `bson:"host_id"`
	Title       string   `bson:"title"`
	TitleKey    string   `bson:"title_key"`
	Description string   `bson:"description"`
	Location    string   `bson:"location"`
	LocationKey string   `bson:"location_key"`
	IsApproved  bool     `bson:"is_approved"`
	PhotoURLs   []string `bson:"photo_urls,omitempty"`
	CreatedAt   int64    `bson:"created_at"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	return propertyDocument{
		ID:          p.ID,
		HostID:      p.HostID,
		Title:       p.Title,
		TitleKey:    strings.ToLower(p.Title),
		Description: p.Description,
		Location:    p.Location,
		LocationKey: strings.ToLower(p.Location),
		IsApproved:  p.IsApproved,
		PhotoURLs:   p.PhotoURLs,
		CreatedAt:   p.CreatedAt.UnixMilli(),
	}
}

func (d propertyDocument) toEntity() domainproperty.Property {
	return domainproperty.Property{
		ID:          d.ID,
		HostID:      d.HostID,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		IsApproved:  d.IsApproved,
		PhotoURLs:   d.PhotoURLs,
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
	}
}

func (r *PropertyRepository) ByID(ctx context.Context, id int64) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, apperr.Storage("load property", err)
	}
	entity := doc.toEntity()
	return &entity, nil
}

func (r *PropertyRepository) Insert(ctx context.Context, p *domainproperty.Property) error {
	id, err := nextSequence(ctx, r.db, "properties")
	if err != nil {
		return err
	}
	p.ID = id
	doc := newPropertyDocument(p)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("property with the same title and location already exists")
		}
		return apperr.Storage("insert property", err)
	}
	return nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := newPropertyDocument(p)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc)
	if err != nil {
		return apperr.Storage("save property", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("property not found")
	}
	return nil
}

func (r *PropertyRepository) ListByHost(ctx context.Context, hostID int64) ([]domainproperty.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"host_id": hostID}, opts)
	if err != nil {
		return nil, apperr.Storage("list properties", err)
	}
	return decodeProperties(ctx, cursor)
}

func (r *PropertyRepository) SearchApproved(ctx context.Context, filter domainproperty.SearchFilter) ([]domainproperty.Property, error) {
	query := bson.M{"is_approved": true}
	if location := strings.ToLower(strings.TrimSpace(filter.Location)); location != "" {
		query["location_key"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuote(location)}}
	}
	if title := strings.ToLower(strings.TrimSpace(filter.Title)); title != "" {
		query["title_key"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuote(title)}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, apperr.Storage("search properties", err)
	}
	return decodeProperties(ctx, cursor)
}

func decodeProperties(ctx context.Context, cursor *mongo.Cursor) ([]domainproperty.Property, error) {
	defer cursor.Close(ctx)
	var out []domainproperty.Property
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.Storage("decode property", err)
		}
		out = append(out, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Storage("iterate properties", err)
	}
	return out, nil
}

// regexQuote escapes regex metacharacters so user search terms match
// literally.
func regexQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
