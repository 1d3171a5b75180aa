package memory

import (
	"context"
	"strings"
	"sync"

	domainauth "dreamstay/internal/domain/auth"
	"dreamstay/internal/domain/shared/apperr"
	domainuser "dreamstay/internal/domain/user"
)

// UserRepository stores accounts in memory with a unique email constraint.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domainuser.User
	byMail map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:   make(map[int64]domainuser.User),
		byMail: make(map[string]int64),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id int64) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	clone := u
	return &clone, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byMail[normalizeEmail(email)]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	u := r.byID[id]
	clone := u
	return &clone, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *domainuser.User) error {
	key := normalizeEmail(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byMail[key]; exists {
		return apperr.Conflict("email already registered")
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = *u
	r.byMail[key] = u.ID
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SessionStore keeps bearer sessions in memory. Sessions vanish on restart,
// which is acceptable for the dev loop this store serves.
type SessionStore struct {
	mu    sync.RWMutex
	items map[domainauth.Token]domainauth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[domainauth.Token]domainauth.Session)}
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.Token] = *session
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.items[token]
	if !ok {
		return nil, domainauth.ErrSessionNotFound
	}
	clone := session
	return &clone, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}
