package sigs

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// PublicKey is an ed25519 public key that can act as a signer identity on
// the ledger.
type PublicKey ed25519.PublicKey

// Condition returns the condition this key fulfills when it signs.
func (p PublicKey) Condition() tokenswap.Condition {
	return tokenswap.NewCondition("sigs", "ed25519", p)
}

// Address returns the on-ledger address of this key.
func (p PublicKey) Address() tokenswap.Address {
	return p.Condition().Address()
}

// Validate returns an error if the key is not the proper size.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key size: %d", len(p))
	}
	return nil
}

// PrivateKey is an ed25519 private key. It is only ever used off-ledger,
// to sign the transaction that carries an instruction.
type PrivateKey ed25519.PrivateKey

// GenPrivateKey creates a new random private key.
func GenPrivateKey() PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return PrivateKey(priv)
}

// PublicKey returns the corresponding public key.
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// Sign signs the given message.
func (p PrivateKey) Sign(msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p), msg)
}

// Verify checks the signature of the given message against this key.
func (p PublicKey) Verify(msg, sig []byte) bool {
	if p.Validate() != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), msg, sig)
}
