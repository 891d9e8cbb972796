// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

/*
TestPasswordHash verifies a bcrypt round trip.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}

/*
TestGenerateSecureToken returns distinct hex tokens of the expected length.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken is deterministic and hides the input.
*/
func TestHashToken(t *testing.T) {
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, "abc", sec.HashToken("abc"))
	assert.Len(t, sec.HashToken("abc"), 64)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleWriter))
	assert.True(t, sec.RoleWriter.AtLeast(sec.RoleWriter))
	assert.False(t, sec.RoleWriter.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").Valid())
	assert.False(t, sec.UserRole("guest").AtLeast(sec.UserRole("other")))
}

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip verifies a freshly signed token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "inkwell.app")

	token, err := service.GenerateAccessToken("user-1", "ada", string(sec.RoleWriter), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "writer", claims.Role)
	assert.Equal(t, "inkwell.app", claims.Issuer)
}

/*
TestTokenService_Rejects expired, foreign and tampered tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "inkwell.app")

	expired, err := service.GenerateAccessToken("user-1", "ada", "writer", -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	foreign, err := newTokenService(t, "inkwell.app").GenerateAccessToken("user-1", "ada", "writer", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	otherIssuer, err := newTokenService(t, "elsewhere").GenerateAccessToken("user-1", "ada", "writer", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(otherIssuer)
	assert.Error(t, err)

	valid, err := service.GenerateAccessToken("user-1", "ada", "writer", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(strings.TrimSuffix(valid, valid[len(valid)-4:]) + "AAAA")
	assert.Error(t, err)
}
