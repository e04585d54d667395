package sigs

import (
	"context"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// WithSigners returns a context carrying the addresses that signed the
// enclosing ledger transaction. Only the dispatch layer should add
// signers; handlers must treat the set as read-only.
func WithSigners(ctx tokenswap.Context, signers []tokenswap.Address) tokenswap.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate implements x.Authenticator and provides authentication
// based on the ledger-verified transaction signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns nil. Signers are known by address only; the
// public keys behind them never reach the program.
func (a Authenticate) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	return nil
}

// HasAddress returns true if the given address signed the current
// transaction.
func (a Authenticate) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	// (val, ok) form to return nil instead of panic if unset
	signers, _ := ctx.Value(contextKeySigners).([]tokenswap.Address)
	for _, s := range signers {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
