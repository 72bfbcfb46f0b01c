// Package crypto implements the end-to-end encryption scheme used by
// marketplace chat clients. The server never calls Encrypt or Decrypt on
// user messages; it carries {nonce, ciphertext} opaquely. The package
// lives here so Go clients and the test suite share one implementation.
package crypto

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	KeySize   = 32
	NonceSize = 24
)

// KeyPair is a Curve25519 pair. The secret half stays on the client and
// is never sent anywhere; the public half is uploaded to the user's
// profile for peer discovery.
type KeyPair struct {
	Public *[KeySize]byte
	Secret *[KeySize]byte
}

func GenerateKeyPair() (*KeyPair, error) {
	pub, sec, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "crypto.GenerateKeyPair")
	}
	return &KeyPair{Public: pub, Secret: sec}, nil
}

// DeriveSharedKey computes the symmetric key for a peer. Both sides of a
// conversation derive the same key: DeriveSharedKey(secA, pubB) ==
// DeriveSharedKey(secB, pubA).
func DeriveSharedKey(mySecret, theirPublic *[KeySize]byte) *[KeySize]byte {
	shared := new([KeySize]byte)
	box.Precompute(shared, theirPublic, mySecret)
	return shared
}

// Encrypt seals plaintext under sharedKey with a fresh random nonce.
// Nonce reuse under one key breaks confidentiality, so the nonce is
// drawn from crypto/rand on every call and returned alongside the
// ciphertext for the peer.
func Encrypt(sharedKey *[KeySize]byte, plaintext []byte) (nonce [NonceSize]byte, ciphertext []byte, err error) {
	if _, err = io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nonce, nil, errors.Wrap(err, "crypto.Encrypt.nonce")
	}
	ciphertext = secretbox.Seal(nil, plaintext, &nonce, sharedKey)
	return nonce, ciphertext, nil
}

// Decrypt opens a sealed message. ok is false on a wrong key, a tampered
// ciphertext or truncated input; callers render an "unavailable" state
// instead of crashing, so failure is a value here rather than an error.
func Decrypt(sharedKey *[KeySize]byte, nonce [NonceSize]byte, ciphertext []byte) (plaintext []byte, ok bool) {
	return secretbox.Open(nil, ciphertext, &nonce, sharedKey)
}
