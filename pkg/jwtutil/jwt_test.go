package jwtutil

import (
	"testing"

	"quicksupply/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("u-1", "buyer@example.com", "sokha", "buyer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "sokha", claims.Username)
	assert.Equal(t, "buyer", claims.Role)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	token, err := GenerateToken("u-1", "x@y.kh", "x", "supplier")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestUninitializedConfig(t *testing.T) {
	old := jwtConfig
	defer func() { jwtConfig = old }()
	jwtConfig = nil

	_, err := GenerateToken("u-1", "x@y.kh", "x", "buyer")
	assert.Error(t, err)
	_, err = ValidateToken("whatever")
	assert.Error(t, err)
}
