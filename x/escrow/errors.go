package escrow

import (
	"github.com/iov-one/tokenswap/errors"
)

// Error codes 1010-1020 are reserved for this package.
var (
	// ErrForgedAddress is returned when a supplied account does not
	// match the address derived from the claimed seeds.
	ErrForgedAddress = errors.Register(1010, "address does not derive from seeds")

	// ErrMintMismatch is returned when a supplied mint differs from the
	// one recorded in the escrow.
	ErrMintMismatch = errors.Register(1011, "mint does not match escrow")

	// ErrVaultAuthority is returned when the vault is not controlled by
	// the escrow's derived address.
	ErrVaultAuthority = errors.Register(1012, "vault not controlled by escrow")

	// ErrAlreadyInitialized is returned when Make finds a previously
	// begun escrow in the supplied account slot.
	ErrAlreadyInitialized = errors.Register(1013, "escrow already initialized")
)
