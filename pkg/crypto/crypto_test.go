package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SharedKeySymmetry(t *testing.T) {
	alice, err := GenerateKeyPair()
	require.NoError(t, err)
	bob, err := GenerateKeyPair()
	require.NoError(t, err)

	fromAlice := DeriveSharedKey(alice.Secret, bob.Public)
	fromBob := DeriveSharedKey(bob.Secret, alice.Public)

	assert.Equal(t, fromAlice, fromBob)
}

func Test_EncryptDecryptRoundTrip(t *testing.T) {
	alice, _ := GenerateKeyPair()
	bob, _ := GenerateKeyPair()
	shared := DeriveSharedKey(alice.Secret, bob.Public)

	plaintexts := [][]byte{
		[]byte("secret"),
		[]byte(""),
		[]byte("a longer message with spaces, punctuation and unicode: привет 👋"),
	}

	for _, p := range plaintexts {
		nonce, ct, err := Encrypt(shared, p)
		require.NoError(t, err)

		// ciphertext never contains the plaintext
		if len(p) > 0 {
			assert.NotContains(t, string(ct), string(p))
		}

		// peer decrypts with the key derived from the opposite direction
		peerShared := DeriveSharedKey(bob.Secret, alice.Public)
		got, ok := Decrypt(peerShared, nonce, ct)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func Test_DecryptWrongKeyFails(t *testing.T) {
	alice, _ := GenerateKeyPair()
	bob, _ := GenerateKeyPair()
	mallory, _ := GenerateKeyPair()

	shared := DeriveSharedKey(alice.Secret, bob.Public)
	nonce, ct, err := Encrypt(shared, []byte("secret"))
	require.NoError(t, err)

	wrong := DeriveSharedKey(mallory.Secret, bob.Public)
	got, ok := Decrypt(wrong, nonce, ct)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func Test_DecryptTamperedCiphertextFails(t *testing.T) {
	alice, _ := GenerateKeyPair()
	bob, _ := GenerateKeyPair()
	shared := DeriveSharedKey(alice.Secret, bob.Public)

	nonce, ct, err := Encrypt(shared, []byte("secret"))
	require.NoError(t, err)

	ct[0] ^= 0xff
	_, ok := Decrypt(shared, nonce, ct)
	assert.False(t, ok)

	// truncation is a failure too, not a short plaintext
	_, ok = Decrypt(shared, nonce, ct[:4])
	assert.False(t, ok)
}

func Test_NonceFreshPerCall(t *testing.T) {
	alice, _ := GenerateKeyPair()
	bob, _ := GenerateKeyPair()
	shared := DeriveSharedKey(alice.Secret, bob.Public)

	n1, _, err := Encrypt(shared, []byte("same plaintext"))
	require.NoError(t, err)
	n2, _, err := Encrypt(shared, []byte("same plaintext"))
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
}
