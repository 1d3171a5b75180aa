package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authsvc "dreamstay/internal/app/services/auth"
	domainauth "dreamstay/internal/domain/auth"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/user"
	"dreamstay/internal/infra/security"
	"dreamstay/internal/infra/storage/memory"
)

func newService(t *testing.T) *authsvc.Service {
	t.Helper()
	return &authsvc.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
	}
}

func register(t *testing.T, svc *authsvc.Service, email, role string) *authsvc.AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:     email,
		Password:  "correct horse battery",
		Role:      role,
		FirstName: "Nikos",
		LastName:  "Ioannou",
		Phone:     "+30 694 111 2222",
	})
	require.NoError(t, err)
	return res
}

// TestRegister_issuesUsableSession verifies the register round trip: the
// account is created with the requested role and the returned token resolves
// back to the same user.
func TestRegister_issuesUsableSession(t *testing.T) {
	svc := newService(t)
	res := register(t, svc, "Nikos@Example.com", "host")

	require.NotZero(t, res.User.ID)
	require.Equal(t, "nikos@example.com", res.User.Email)
	require.Equal(t, user.RoleHost, res.User.Role)
	require.NotEmpty(t, res.Token)
	require.NotEqual(t, "correct horse battery", res.User.PasswordHash)

	resolved, err := svc.ResolveToken(context.Background(), res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, resolved.User.ID)
	require.Equal(t, user.RoleHost, resolved.Session.Role)
}

// TestRegister_duplicateEmail verifies that the same address cannot register
// twice, regardless of case.
func TestRegister_duplicateEmail(t *testing.T) {
	svc := newService(t)
	register(t, svc, "guest@example.com", "guest")

	_, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "GUEST@example.com",
		Password: "another secret",
		Role:     "guest",
	})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegister_shortPasswordRejected(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "guest@example.com",
		Password: "short",
		Role:     "guest",
	})
	require.ErrorIs(t, err, authsvc.ErrPasswordTooShort)
}

func TestRegister_unknownRoleRejected(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "guest@example.com",
		Password: "long enough secret",
		Role:     "admin",
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// TestLogin_wrongPassword verifies that a bad password and an unknown email
// return the same opaque error.
func TestLogin_wrongPassword(t *testing.T) {
	svc := newService(t)
	register(t, svc, "guest@example.com", "guest")

	_, err := svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "guest@example.com",
		Password: "not the password",
	})
	require.Equal(t, authsvc.ErrInvalidCredentials, err)

	_, err = svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})
	require.Equal(t, authsvc.ErrInvalidCredentials, err)
}

func TestLogin_roundTrip(t *testing.T) {
	svc := newService(t)
	registered := register(t, svc, "guest@example.com", "guest")

	res, err := svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "guest@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, res.User.ID)
	require.NotEqual(t, registered.Token, res.Token, "each login issues its own session")
}

// TestLogout_invalidatesToken verifies that a logged-out token no longer
// resolves while other sessions of the same user survive.
func TestLogout_invalidatesToken(t *testing.T) {
	svc := newService(t)
	first := register(t, svc, "guest@example.com", "guest")
	second, err := svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "guest@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), first.Token))

	_, err = svc.ResolveToken(context.Background(), first.Token)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	_, err = svc.ResolveToken(context.Background(), second.Token)
	require.NoError(t, err)
}

// TestResolveToken_expiredSessionReaped verifies that an expired session is
// rejected and deleted on first use.
func TestResolveToken_expiredSessionReaped(t *testing.T) {
	svc := newService(t)
	svc.SessionTTL = time.Nanosecond
	res := register(t, svc, "guest@example.com", "guest")

	time.Sleep(time.Millisecond)
	_, err := svc.ResolveToken(context.Background(), res.Token)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}
