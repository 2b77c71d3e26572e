package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legiscore/internal/model"
)

func TestLoginIssuesValidToken(t *testing.T) {
	users := newFakeUserRepo(&model.User{ID: "u1", Username: "ana", Password: "score123", Role: model.RoleScorer})
	svc := NewAuthService(users)

	resp, err := svc.Login(context.Background(), "ana", "score123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, model.RoleScorer, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUserRepo(&model.User{ID: "u1", Username: "ana", Password: "score123", Role: model.RoleScorer})
	svc := NewAuthService(users)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "score123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
