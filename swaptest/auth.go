package swaptest

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can
// use either the Signer or Signers (or both) attributes; each time all
// signers, regardless of the attribute, are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when a single signer is enough.
	Signer tokenswap.Condition

	// Signers represents an authentication of multiple signers.
	Signers []tokenswap.Condition
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetConditions(tokenswap.Context) []tokenswap.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}
