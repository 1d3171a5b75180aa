package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"dreamstay/internal/domain/auth"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/user"
)

var (
	ErrInvalidCredentials = apperr.Authorization("invalid email or password")
	ErrPasswordTooShort   = apperr.Validation("password must be at least 8 characters")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service owns registration, login and token resolution. It works against
// the user repository directly, outside the unit of work: account writes
// are single-document and need no cross-repository transaction.
type Service struct {
	Users      user.Repository
	Sessions   auth.SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

type RegisterParams struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *user.User
	Token string
}

type ResolveResult struct {
	User    *user.User
	Session *auth.Session
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	role, err := user.ParseRole(params.Role)
	if err != nil {
		return nil, err
	}
	if err := s.validatePassword(params.Password); err != nil {
		return nil, err
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Phone:        strings.TrimSpace(params.Phone),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, err
	}
	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", "user_id", u.ID, "email", u.Email, "role", u.Role)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Passwords.Compare(u.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user authenticated", "user_id", u.ID)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.ensureDependencies(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, auth.Token(token)); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("session terminated")
	}
	return nil
}

func (s *Service) ResolveToken(ctx context.Context, token string) (*ResolveResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, auth.ErrSessionNotFound
	}
	session, err := s.Sessions.Get(ctx, auth.Token(token))
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = s.Sessions.Delete(ctx, session.Token)
		return nil, auth.ErrSessionNotFound
	}
	u, err := s.Users.ByID(ctx, session.UserID)
	if err != nil {
		_ = s.Sessions.Delete(ctx, session.Token)
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	return &ResolveResult{User: u, Session: session}, nil
}

func (s *Service) issueSession(ctx context.Context, u *user.User) (string, error) {
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	session, err := auth.NewSession(auth.CreateSessionParams{
		Token:  auth.Token(token),
		UserID: u.ID,
		Role:   u.Role,
		TTL:    s.sessionTTL(),
		Now:    time.Now(),
	})
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}

func (s *Service) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Users == nil:
		return errors.New("auth: user repository required")
	case s.Sessions == nil:
		return errors.New("auth: session store required")
	case s.Passwords == nil:
		return errors.New("auth: password hasher required")
	case s.Tokens == nil:
		return errors.New("auth: token generator required")
	default:
		return nil
	}
}
