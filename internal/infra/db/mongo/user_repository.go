package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainauth "dreamstay/internal/domain/auth"
	"dreamstay/internal/domain/shared/apperr"
	domainuser "dreamstay/internal/domain/user"
)

type UserRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, col: db.Collection("users")}
}

type userDocument struct {
	ID           int64  `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name"`
	Phone        string `bson:"phone"`
	CreatedAt    int64  `bson:"created_at"`
}

func newUserDocument(u *domainuser.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		CreatedAt:    u.CreatedAt.UnixMilli(),
	}
}

func (d userDocument) toEntity() domainuser.User {
	return domainuser.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domainuser.Role(d.Role),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Phone:        d.Phone,
		CreatedAt:    time.UnixMilli(d.CreatedAt).UTC(),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id int64) (*domainuser.User, error) {
	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Storage("load user", err)
	}
	entity := doc.toEntity()
	return &entity, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	var doc userDocument
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Storage("load user", err)
	}
	entity := doc.toEntity()
	return &entity, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *domainuser.User) error {
	id, err := nextSequence(ctx, r.db, "users")
	if err != nil {
		return err
	}
	u.ID = id
	if _, err := r.col.InsertOne(ctx, newUserDocument(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("email already registered")
		}
		return apperr.Storage("insert user", err)
	}
	return nil
}

// SessionStore keeps bearer sessions in the sessions collection with a TTL
// index on expires_at, so stale sessions expire server side.
type SessionStore struct {
	col *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{col: db.Collection("sessions")}
}

// expires_at stays a BSON date so the TTL index can reap stale sessions.
type sessionDocument struct {
	Token     string    `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	doc := sessionDocument{
		Token:     string(session.Token),
		UserID:    session.UserID,
		Role:      string(session.Role),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return apperr.Storage("save session", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	var doc sessionDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": string(token)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, apperr.Storage("load session", err)
	}
	return &domainauth.Session{
		Token:     domainauth.Token(doc.Token),
		UserID:    doc.UserID,
		Role:      domainuser.Role(doc.Role),
		CreatedAt: doc.CreatedAt.UTC(),
		ExpiresAt: doc.ExpiresAt.UTC(),
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": string(token)}); err != nil {
		return apperr.Storage("delete session", err)
	}
	return nil
}
