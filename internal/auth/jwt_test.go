package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmspro/wms/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{
		ID:       7,
		Username: "omar",
		Name:     "Omar",
		Role:     model.RoleSupervisor,
		Region:   "ICU 28",
	}

	token, err := GenerateToken("secret", user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "omar", claims.Username)
	assert.Equal(t, "Omar", claims.Name)
	assert.Equal(t, model.RoleSupervisor, claims.Role)
	assert.Equal(t, "ICU 28", claims.Region)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	user := &model.User{ID: 1, Username: "omar", Role: model.RoleManager}

	token, err := GenerateToken("secret", user)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	require.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	require.Error(t, err)
}

func TestTokensHaveUniqueIDs(t *testing.T) {
	user := &model.User{ID: 1, Username: "omar", Role: model.RoleManager}

	a, err := GenerateToken("secret", user)
	require.NoError(t, err)
	b, err := GenerateToken("secret", user)
	require.NoError(t, err)

	ca, _ := ValidateToken("secret", a)
	cb, _ := ValidateToken("secret", b)
	assert.NotEqual(t, ca.ID, cb.ID)
}
