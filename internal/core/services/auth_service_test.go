package services

import (
	"context"
	"testing"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/config"
	"crossroads-renthub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authFixture struct {
	db       *gorm.DB
	service  *AuthService
	notifier *fakeNotifier
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	service := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		repositories.NewPasswordResetRepository(db),
		notifier,
		cfg,
	)
	return &authFixture{db: db, service: service, notifier: notifier}
}

func registerInput(username string) *RegisterInput {
	return &RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery",
	}
}

func TestRegisterDefaultsToTenant(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.Register(context.Background(), registerInput("mwende"), false)
	require.NoError(t, err)

	assert.Equal(t, string(domain.RoleTenant), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegisterManagerRequiresManager(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	in := registerInput("boss")
	in.Role = string(domain.RoleManager)
	_, err := f.service.Register(ctx, in, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.service.Register(ctx, in, true)
	require.NoError(t, err)
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerInput("imani"), false)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, registerInput("imani"), false)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	weak := registerInput("weakling")
	weak.Password = "short"
	_, err = f.service.Register(ctx, weak, false)
	assert.ErrorIs(t, err, ErrWeakPassword)

	bad := registerInput("royalty")
	bad.Role = "king"
	_, err = f.service.Register(ctx, bad, false)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerInput("zawadi"), false)
	require.NoError(t, err)

	resp, err := f.service.Login(ctx, &LoginInput{Username: "zawadi", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.Equal(t, "zawadi", resp.User.Username)

	_, err = f.service.Login(ctx, &LoginInput{Username: "zawadi", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.service.Login(ctx, &LoginInput{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerInput("halima"), false)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err = f.service.Login(ctx, &LoginInput{Username: "halima", Password: "correct-horse-battery"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.service.Register(ctx, registerInput("salim"), false)
	require.NoError(t, err)

	second, err := f.service.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.RefreshToken)

	// The old token was rotated out and cannot be replayed
	_, err = f.service.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.service.RefreshToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerInput("bakari"), false)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, resp.RefreshToken))

	_, err = f.service.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestChangePasswordRevokesAllSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerInput("rehema"), false)
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, resp.User.ID, "wrong", "another-long-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, f.service.ChangePassword(ctx, resp.User.ID, "correct-horse-battery", "another-long-password"))

	_, err = f.service.Login(ctx, &LoginInput{Username: "rehema", Password: "another-long-password"})
	require.NoError(t, err)

	_, err = f.service.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerInput("pendo"), false)
	require.NoError(t, err)

	require.NoError(t, f.service.RequestPasswordReset(ctx, "pendo@example.com"))
	require.Len(t, f.notifier.sentEmails(), 1)

	var reset models.PasswordReset
	require.NoError(t, f.db.First(&reset).Error)

	err = f.service.ResetPassword(ctx, reset.Link, reset.Code+1, "brand-new-password")
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	require.NoError(t, f.service.ResetPassword(ctx, reset.Link, reset.Code, "brand-new-password"))

	_, err = f.service.Login(ctx, &LoginInput{Username: "pendo", Password: "brand-new-password"})
	require.NoError(t, err)

	// The reset record is single-use
	err = f.service.ResetPassword(ctx, reset.Link, reset.Code, "yet-another-password")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestPasswordResetUnknownEmailHidden(t *testing.T) {
	f := newAuthFixture(t)

	// No account enumeration: unknown email still reports success
	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.notifier.sentEmails())
}
