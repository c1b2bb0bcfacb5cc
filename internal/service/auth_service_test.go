package service

import (
	"context"
	"testing"
	"time"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		nil,
		mailer.NewLogMailer(),
		"test-secret",
		time.Hour,
		30*time.Minute,
	)
}

func TestRegisterCreatesUserProfileAndRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestAuthService(db)

	first := "Jane"
	res, err := svc.Register(ctx, dto.RegisterRequest{
		Username:  "jane",
		Email:     "jane@example.com",
		Password:  "secret-password",
		Bio:       "hello",
		FirstName: &first,
	}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, "jane", res.User.Username)
	assert.False(t, res.User.IsStaff)

	user, err := repository.NewUserRepository(db).FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	require.NotNil(t, user.Profile)
	require.NotNil(t, user.Profile.FirstName)
	assert.Equal(t, "Jane", *user.Profile.FirstName)

	require.NotNil(t, user.Rating)
	assert.Equal(t, 0, user.Rating.Score)

	var profiles int64
	require.NoError(t, db.Model(&model.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestRegisterRejectsDuplicateEmailAndUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestAuthService(db)

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "first",
		Email:    "taken@example.com",
		Password: "secret-password",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "second",
		Email:    "taken@example.com",
		Password: "secret-password",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "first",
		Email:    "other@example.com",
		Password: "secret-password",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestAuthService(db)

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "login",
		Email:    "login@example.com",
		Password: "secret-password",
	}, nil)
	require.NoError(t, err)

	res, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "login@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	assert.Error(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})
	assert.Error(t, err)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestAuthService(db)

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "inactive",
		Email:    "inactive@example.com",
		Password: "secret-password",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.User{}).
		Where("email = ?", "inactive@example.com").
		Update("is_active", false).Error)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "inactive@example.com",
		Password: "secret-password",
	})
	assert.Error(t, err)
}

func TestCreateSuperuserRequiresBothFlags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestAuthService(db)

	input := dto.RegisterRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secret-password",
	}

	_, err := svc.CreateSuperuser(ctx, input, false, true)
	assert.Error(t, err)

	_, err = svc.CreateSuperuser(ctx, input, true, false)
	assert.Error(t, err)

	user, err := svc.CreateSuperuser(ctx, input, true, true)
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsActive)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestAuthService(db)

	res, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "changer",
		Email:    "changer@example.com",
		Password: "old-password",
	}, nil)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, res.User.ID, dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "new-password",
	})
	assert.Error(t, err)

	err = svc.ChangePassword(ctx, res.User.ID, dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "changer@example.com", Password: "new-password"})
	assert.NoError(t, err)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	svc := NewAuthService(userRepo, nil, mailer.NewLogMailer(), "test-secret", time.Hour, 30*time.Minute)

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "resetter",
		Email:    "resetter@example.com",
		Password: "old-password",
	}, nil)
	require.NoError(t, err)

	// Unknown addresses get the same silent answer.
	assert.NoError(t, svc.RequestPasswordReset(ctx, "unknown@example.com"))

	// A login token must not pass as a reset token.
	login, err := svc.Login(ctx, dto.LoginRequest{Email: "resetter@example.com", Password: "old-password"})
	require.NoError(t, err)
	err = svc.ConfirmPasswordReset(ctx, dto.ConfirmResetRequest{
		Token:       login.AccessToken,
		NewPassword: "new-password",
	})
	assert.Error(t, err)
}
