package escrow

import (
	"context"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x"
)

type contextKey int // local to the escrow module

const (
	contextKeyDerived contextKey = iota
)

// withDerived is private, as only this module's handlers may act with a
// derivation capability. The condition authorizes exactly one address,
// for the scope of one handler invocation.
func withDerived(ctx tokenswap.Context, cond tokenswap.Condition) tokenswap.Context {
	return context.WithValue(ctx, contextKeyDerived, cond)
}

// Authenticate implements x.Authenticator and approves the derived
// condition a handler placed in the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the derived condition in the current context.
// May be nil.
func (a Authenticate) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyDerived).(tokenswap.Condition)
	if val == nil {
		return nil
	}
	return []tokenswap.Condition{val}
}

// HasAddress returns true if the derived condition in the current
// context resolves to the given address.
func (a Authenticate) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	val, _ := ctx.Value(contextKeyDerived).(tokenswap.Condition)
	return val != nil && val.Address().Equals(addr)
}
