package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelorenc/tienda-api/pkg/token"
)

const testSecret = "secreto-de-tests-1234"

func TestIssueAndVerify(t *testing.T) {
	tok, err := token.Issue(testSecret, "a@x.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	email, err := token.Verify(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestVerify_TokenExpirado(t *testing.T) {
	// TTL negativo: el token nace vencido.
	tok, err := token.Issue(testSecret, "a@x.com", -time.Minute)
	require.NoError(t, err)

	_, err = token.Verify(testSecret, tok)
	assert.ErrorIs(t, err, token.ErrExpired,
		"un token más viejo que su TTL siempre se rechaza")
}

func TestVerify_SecretIncorrecto(t *testing.T) {
	tok, err := token.Issue(testSecret, "a@x.com", time.Hour)
	require.NoError(t, err)

	_, err = token.Verify("otro-secret-distinto", tok)
	assert.ErrorIs(t, err, token.ErrInvalid,
		"firma con otro secret debe invalidar el token")
}

func TestVerify_TokenMalformado(t *testing.T) {
	_, err := token.Verify(testSecret, "no.es.un-jwt")
	assert.ErrorIs(t, err, token.ErrInvalid)
}

func TestIssue_SecretVacio(t *testing.T) {
	_, err := token.Issue("", "a@x.com", time.Hour)
	assert.Error(t, err)
}
