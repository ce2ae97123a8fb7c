package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_CarriesIdentity(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(Identity{
		EmployeeID:   "emp-1",
		DepartmentID: "engineering",
		RoleID:       "manager",
	})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	for claim, want := range map[string]string{
		"employee_id":   "emp-1",
		"department_id": "engineering",
		"role_id":       "manager",
		"type":          TokenTypeAccess,
	} {
		got, ok := decoded.Get(claim)
		require.True(t, ok, claim)
		assert.Equal(t, want, got, claim)
	}
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	token, expiresIn, err := svc.GenerateSSEToken("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	employeeID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)

	access, _, err := svc.GenerateAccessToken(Identity{EmployeeID: "emp-1"})
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err, "access tokens are not accepted on the stream")

	other := NewJWTService("another-secret", time.Hour)
	_, err = other.ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestExpiredAccessTokenIsRejected(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", -time.Hour)

	token, _, err := svc.GenerateAccessToken(Identity{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	assert.Error(t, err)
}
