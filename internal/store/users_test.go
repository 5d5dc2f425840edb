package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmspro/wms/internal/db"
	"github.com/wmspro/wms/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "omar", "hash", "Omar", model.RoleSupervisor, "ICU 28", nil)
	require.NoError(t, err)
	assert.Equal(t, "omar", user.Username)
	assert.Equal(t, model.RoleSupervisor, user.Role)
	assert.Equal(t, "ICU 28", user.Region)

	byName, err := GetUserByUsername(ctx, database, "omar")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	missing, err := GetUserByUsername(ctx, database, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreateUser(context.Background(), database, "omar", "hash", "Omar", "janitor", "", nil)
	require.Error(t, err)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateUser(ctx, database, "omar", "hash", "Omar", model.RoleSupervisor, "", nil)
	require.NoError(t, err)

	_, err = CreateUser(ctx, database, "omar", "hash", "Other Omar", model.RoleStorekeeper, "", nil)
	require.Error(t, err)
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "omar", "old", "Omar", model.RoleSupervisor, "", nil)
	require.NoError(t, err)

	require.NoError(t, UpdateUserPassword(ctx, database, user.ID, "new"))

	after, err := GetUser(ctx, database, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", after.PasswordHash)
}

func TestUpdateUserProfile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "omar", "hash", "Omar", model.RoleSupervisor, "ICU 28", nil)
	require.NoError(t, err)

	require.NoError(t, UpdateUserProfile(ctx, database, user.ID, "Omar K.", "O.R"))

	after, err := GetUser(ctx, database, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Omar K.", after.Name)
	assert.Equal(t, "O.R", after.Region)
	// Credentials and role are untouched.
	assert.Equal(t, "omar", after.Username)
	assert.Equal(t, model.RoleSupervisor, after.Role)
	assert.Equal(t, "hash", after.PasswordHash)
}

func TestListUsers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateUser(ctx, database, "omar", "h", "Omar", model.RoleSupervisor, "", nil)
	require.NoError(t, err)
	_, err = CreateUser(ctx, database, "karim", "h", "Karim", model.RoleStorekeeper, "", nil)
	require.NoError(t, err)

	users, err := ListUsers(ctx, database)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
