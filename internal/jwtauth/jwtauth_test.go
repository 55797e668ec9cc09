package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	token, err := svc.GenerateUserToken("jane@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, RoleUser, claims.Role)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Zero(t, claims.Badge)
}

func TestPoliceTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	token, err := svc.GeneratePoliceToken(4410, true)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, RolePolice, claims.Role)
	require.Equal(t, 4410, claims.Badge)
	require.True(t, claims.Admin)
}

func TestValidateRejectsForeignKey(t *testing.T) {
	issued := NewService("key-one", time.Hour)
	validating := NewService("key-two", time.Hour)

	token, err := issued.GenerateUserToken("jane@example.com")
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewService("test-signing-key", -time.Minute)

	token, err := svc.GenerateUserToken("jane@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorContains(t, err, "expired")
}
