package service

import (
	"context"
	"encoding/json"
	"testing"

	"fabrisys-backend/internal/apperr"
	"fabrisys-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserStoresHashedPassword(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.CreateUser(context.Background(), &CreateUserRequest{
		Username:    "sara",
		Password:    "s3cret-pass",
		DisplayName: "Sara",
		Role:        model.RoleUser,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong"))

	// The hash never leaks through JSON.
	payload, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), user.PasswordHash)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, &CreateUserRequest{
		Username:    "sara",
		Password:    "s3cret-pass",
		DisplayName: "Sara",
		Role:        model.RoleUser,
	})
	require.NoError(t, err)

	_, err = env.users.CreateUser(ctx, &CreateUserRequest{
		Username:    "sara",
		Password:    "other-pass",
		DisplayName: "Other Sara",
		Role:        model.RoleAdmin,
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateUserWithoutPasswordKeepsHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.CreateUser(ctx, &CreateUserRequest{
		Username:    "sara",
		Password:    "s3cret-pass",
		DisplayName: "Sara",
		Role:        model.RoleUser,
	})
	require.NoError(t, err)

	updated, err := env.users.UpdateUser(ctx, user.ID, &UpdateUserRequest{
		DisplayName: "Sara M.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sara M.", updated.DisplayName)
	assert.True(t, updated.CheckPassword("s3cret-pass"))

	newPass := "brand-new-pass"
	updated, err = env.users.UpdateUser(ctx, user.ID, &UpdateUserRequest{
		DisplayName: "Sara M.",
		Password:    &newPass,
	})
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword(newPass))
}

func TestSetUserStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.CreateUser(ctx, &CreateUserRequest{
		Username:    "sara",
		Password:    "s3cret-pass",
		DisplayName: "Sara",
		Role:        model.RoleUser,
	})
	require.NoError(t, err)

	require.NoError(t, env.users.SetUserStatus(ctx, user.ID, model.UserBlocked))

	got, err := env.users.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserBlocked, got.Status)
	assert.Equal(t, "Sara", got.DisplayName)

	err = env.users.SetUserStatus(ctx, user.ID, "suspended")
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateUserValidatesInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CreateUser(context.Background(), &CreateUserRequest{
		Username:    "ab", // too short
		Password:    "s3cret-pass",
		DisplayName: "AB",
		Role:        model.RoleUser,
	})
	assert.True(t, apperr.IsValidation(err))
}
