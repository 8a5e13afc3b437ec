package usecase

import (
	"context"
	"testing"

	"eventmate/internal/data/entity"
	"eventmate/internal/dto/request"
	"eventmate/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(f *fixture) *Service {
	return NewService(f.repo, &utils.Config{
		JWT:        utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Pagination: utils.PaginationConfig{DefaultLimit: 10, MaxLimit: 50},
	}, zap.NewNop())
}

// register creates a user and returns its id and a fresh token
func register(t *testing.T, svc *Service, username string) (string, string) {
	t.Helper()
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, &request.RegisterRequest{Username: username, Password: "pw-" + username})
	require.NoError(t, err)

	tok, err := svc.Auth.Login(ctx, &request.LoginRequest{Username: username, Password: "pw-" + username})
	require.NoError(t, err)

	return user.ID, tok.Token
}

func TestAuthRegisterAndLogin(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, entity.RoleUser, user.Role)

	stored, err := f.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.PasswordHash)

	tok, err := svc.Auth.Login(ctx, &request.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.NotEmpty(t, tok.Token)

	claims, err := svc.Auth.Authenticate(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestAuthRegisterDuplicate(t *testing.T) {
	svc := newTestService(newFixture())
	ctx := context.Background()

	_, err := svc.Auth.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "one"})
	require.NoError(t, err)

	_, err = svc.Auth.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "two"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newTestService(newFixture())

	_, err := svc.Auth.Register(context.Background(), &request.RegisterRequest{Username: "alice"})
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

func TestAuthLoginFailuresLookAlike(t *testing.T) {
	svc := newTestService(newFixture())
	ctx := context.Background()
	register(t, svc, "alice")

	_, wrongPassword := svc.Auth.Login(ctx, &request.LoginRequest{Username: "alice", Password: "nope"})
	_, unknownUser := svc.Auth.Login(ctx, &request.LoginRequest{Username: "bob", Password: "nope"})

	require.ErrorIs(t, wrongPassword, ErrUnauthorized)
	require.ErrorIs(t, unknownUser, ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthLogoutRevokesToken(t *testing.T) {
	svc := newTestService(newFixture())
	ctx := context.Background()
	_, token := register(t, svc, "alice")

	claims, err := svc.Auth.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Auth.Logout(ctx, claims))

	_, err = svc.Auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthAuthenticateRejectsGarbage(t *testing.T) {
	svc := newTestService(newFixture())

	_, err := svc.Auth.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthEnsureAdmin(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	ctx := context.Background()

	require.NoError(t, svc.Auth.EnsureAdmin(ctx, "", ""))
	assert.Empty(t, f.users.users)

	require.NoError(t, svc.Auth.EnsureAdmin(ctx, "root", "toor"))
	admin, err := f.users.FindByUsername(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	isAdmin, err := svc.Auth.IsAdmin(ctx, admin.ID.Hex())
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// second run is a no-op
	require.NoError(t, svc.Auth.EnsureAdmin(ctx, "root", "toor"))
	assert.Len(t, f.users.users, 1)
}

func TestAuthEnsureAdminKeepsExistingUser(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	ctx := context.Background()
	userID, _ := register(t, svc, "root")

	require.NoError(t, svc.Auth.EnsureAdmin(ctx, "root", "toor"))

	isAdmin, err := svc.Auth.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestAuthIsAdminUnknownUser(t *testing.T) {
	svc := newTestService(newFixture())

	_, err := svc.Auth.IsAdmin(context.Background(), "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Auth.IsAdmin(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
