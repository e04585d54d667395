package swaptest

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x/sigs"
)

// NewKey returns a fresh random signing key.
func NewKey() sigs.PrivateKey {
	return sigs.GenPrivateKey()
}

// NewCondition returns the condition of a fresh random signing key.
func NewCondition() tokenswap.Condition {
	return NewKey().PublicKey().Condition()
}
