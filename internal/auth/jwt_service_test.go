package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"feedbackhub/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	user := &model.User{ID: 42, Username: "alice", Email: "alice@example.com", Avatar: "/uploads/42-1.png"}
	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "/uploads/42-1.png", claims.Avatar)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	tokenID, token, err := svc.GenerateRefreshToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, tokenID, claims.ID)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	access, err := svc.GenerateAccessToken(&model.User{ID: 42})
	assert.NoError(t, err)
	_, refresh, err := svc.GenerateRefreshToken(42)
	assert.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	other := NewJWTService("different-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken(&model.User{ID: 42})
	assert.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(&model.User{ID: 42})
	assert.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken("")
	assert.Error(t, err)
}
