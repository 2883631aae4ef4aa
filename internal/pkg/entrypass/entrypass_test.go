package entrypass

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	signer := NewSigner("test-pass-secret", "clubsphere.test")

	token, err := signer.Sign(42, 7, 1001)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.EventID)
	assert.Equal(t, int64(1001), claims.RegistrationID)
	assert.NotEmpty(t, claims.ID, "each pass should carry a unique jti")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewSigner("secret-a", "clubsphere.test")
	other := NewSigner("secret-b", "clubsphere.test")

	token, err := signer.Sign(1, 2, 3)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewSigner("secret", "clubsphere.test")

	_, err := signer.Verify("not-a-token")
	assert.Error(t, err)

	_, err = signer.Verify("")
	assert.Error(t, err)
}

func TestPassesAreUniquePerIssue(t *testing.T) {
	signer := NewSigner("secret", "clubsphere.test")

	first, err := signer.Sign(1, 2, 3)
	require.NoError(t, err)
	second, err := signer.Sign(1, 2, 3)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "jti should make identical registrations produce distinct passes")
}

func TestQRCodePNG(t *testing.T) {
	signer := NewSigner("secret", "clubsphere.test")
	token, err := signer.Sign(5, 6, 7)
	require.NoError(t, err)

	png, err := QRCodePNG(token)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output should be a PNG image")
}
