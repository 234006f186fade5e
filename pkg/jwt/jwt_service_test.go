package jwt

import (
	"Maitri-Dhatri-Backend/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret", time.Hour)

	token, err := svc.GenerateTokenUser("9a0c3f1e-7f43-4d55-b3b4-0c6a1b9e2f10", domain.RoleCollector)
	require.NoError(t, err)

	userID, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "9a0c3f1e-7f43-4d55-b3b4-0c6a1b9e2f10", userID)
	assert.Equal(t, domain.RoleCollector, role)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret", -time.Minute)

	token, err := svc.GenerateTokenUser("user", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenSignedWithOtherKey(t *testing.T) {
	issuer := NewJWTServiceWithKey("key-a", time.Hour)
	verifier := NewJWTServiceWithKey("key-b", time.Hour)

	token, err := issuer.GenerateTokenUser("user", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = verifier.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret", time.Hour)

	_, _, err := svc.GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
