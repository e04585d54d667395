// Package x contains interfaces shared by program extensions, most
// importantly the Authenticator abstraction that decouples handlers from
// the source of authorization (transaction signatures or program-derived
// conditions).
package x

import (
	"github.com/iov-one/tokenswap"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system, rather than
// hard-coding one for all extensions.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled in this context.
	GetConditions(tokenswap.Context) []tokenswap.Condition
	// HasAddress checks if any fulfilled condition or signer matches
	// this address.
	HasAddress(tokenswap.Context, tokenswap.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	var res []tokenswap.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition fulfilled, if any, otherwise
// nil.
func MainSigner(ctx tokenswap.Context, auth Authenticator) tokenswap.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are also
// fulfilled in the context.
func HasAllAddresses(ctx tokenswap.Context, auth Authenticator, required []tokenswap.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
