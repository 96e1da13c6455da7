package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/security"
)

func newAuthFixture() (*MockUserRepo, AuthService) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	return userRepo, NewAuthService(userRepo, tokens)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "rider@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "Rider@Example.com", "long enough pw", "Mara", "Keller", "", domain.UserRoleCustomer)
		assert.NoError(t, err)
		assert.Equal(t, "rider@example.com", user.Email)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.True(t, user.CheckPassword("long enough pw"))
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, _, err := svc.Signup(ctx, "rider@example.com", "short", "", "", "", domain.UserRoleCustomer)
		assert.Error(t, err)
	})

	t.Run("AdminSignupRefused", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, _, err := svc.Signup(ctx, "boss@example.com", "long enough pw", "", "", "", domain.UserRoleAdmin)
		assert.Error(t, err)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "rider@example.com").Return(&domain.User{ID: 1}, nil)

		_, _, _, err := svc.Signup(ctx, "rider@example.com", "long enough pw", "", "", "", domain.UserRoleCustomer)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	activeUser := func() *domain.User {
		u := domain.NewUser("rider@example.com", "Mara", "Keller", "", domain.UserRoleCustomer)
		u.ID = 1
		_ = u.SetPassword("long enough pw")
		return u
	}

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		u := activeUser()
		userRepo.On("GetByEmail", ctx, "rider@example.com").Return(u, nil)
		userRepo.On("Update", ctx, u).Return(nil)

		access, refresh, err := svc.Login(ctx, "Rider@example.com", "long enough pw")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotNil(t, u.LastLogin)
	})

	t.Run("SameErrorForUnknownEmailAndWrongPassword", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "rider@example.com").Return(activeUser(), nil)

		_, _, errUnknown := svc.Login(ctx, "ghost@example.com", "whatever pw")
		_, _, errWrong := svc.Login(ctx, "rider@example.com", "wrong password")
		assert.Error(t, errUnknown)
		assert.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		u := activeUser()
		u.IsActive = false
		userRepo.On("GetByEmail", ctx, "rider@example.com").Return(u, nil)

		_, _, err := svc.Login(ctx, "rider@example.com", "long enough pw")
		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)
		u := domain.NewUser("rider@example.com", "", "", "", domain.UserRoleCustomer)
		u.ID = 1
		userRepo.On("GetByID", ctx, int32(1)).Return(u, nil)

		refresh, err := tokens.GenerateRefreshToken(1, "rider@example.com")
		assert.NoError(t, err)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		access, err := tokens.GenerateAccessToken(1, "rider@example.com", "customer")
		assert.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}
