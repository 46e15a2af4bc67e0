package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)

	token, expires, err := signer.Generate("contract-1", "minutas/Minuta_Joao_Dermatologia.pdf")
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	contractID, relPath, _, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "contract-1", contractID)
	assert.Equal(t, "minutas/Minuta_Joao_Dermatologia.pdf", relPath)
}

func TestSignedURLRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)

	token, _, err := signer.Generate("contract-1", "minutas/a.pdf")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token + "x")
	assert.Error(t, err)

	other := NewSignedURLSigner("other-secret", time.Hour)
	_, _, _, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSignedURLExpiry(t *testing.T) {
	signer := NewSignedURLSigner("secret", -time.Minute)
	signer.ttl = -time.Minute

	token, _, err := signer.Generate("contract-1", "minutas/a.pdf")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token)
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Joao_da_Silva", SanitizeName("João da Silva"))
	assert.Equal(t, "Pos_Dermatologia", SanitizeName("Pós (Dermatologia)"))
	assert.Equal(t, "a_b", SanitizeName("  a//b  "))
}

func TestDraftAndSignedPath(t *testing.T) {
	draft := DraftPath("minutas", "João da Silva", "Dermatologia Clínica")
	assert.Equal(t, "minutas/Minuta_Joao_da_Silva_Dermatologia_Clinica.pdf", draft)
	assert.Equal(t, "minutas/Minuta_Joao_da_Silva_Dermatologia_Clinica_assinado.pdf", SignedPath(draft))
}
