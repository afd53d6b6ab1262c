package service

import (
	"context"
	"testing"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newStubStore()
	svc := NewAuthService(&stubFactory{store: store})

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "maker@printmob.test",
		Password:  "correct horse",
		FirstName: "Sam",
		LastName:  "Aldrin",
		UserType:  "printer",
	})
	require.NoError(t, err)

	user := store.users[resp.Id]
	require.NotNil(t, user)
	assert.Equal(t, entity.UserTypePrinter, user.UserType)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", *user.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "maker@printmob.test",
			Password: "another pass",
			UserType: "buyer",
		})
		require.Error(t, err)
		assert.Equal(t, "email already registered", apperrors.MessageOf(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "maker@printmob.test",
			Password: "wrong horse",
		})
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", apperrors.MessageOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@printmob.test",
			Password: "correct horse",
		})
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", apperrors.MessageOf(err))
	})

	t.Run("valid login issues a signed token", func(t *testing.T) {
		login, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "maker@printmob.test",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, resp.Id, login.UserId)
		assert.Equal(t, "printer", login.UserType)

		token, err := jwt.Parse(login.Token, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, resp.Id.String(), claims["user_id"])
		assert.Equal(t, "printer", claims["user_type"])
	})
}
