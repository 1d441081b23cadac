package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(secret, "counter-1", RoleOperator, "freshfruits-test", 60)
	require.NoError(t, err)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "counter-1", claims.Subject)
	assert.Equal(t, RoleOperator, claims.Role)
	assert.Equal(t, "freshfruits-test", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate(secret, "counter-1", RoleOperator, "", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := generateAt(time.Now().Add(-2*time.Hour), secret, "counter-1", RoleOperator, "", 60)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "x", RoleOperator, "", 1)
	assert.Error(t, err)
	_, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
