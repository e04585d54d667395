package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest"
)

func TestDerive(t *testing.T) {
	program := swaptest.NewCondition().Address()
	maker := swaptest.NewCondition().Address()

	addr, err := Derive(program, maker, 7)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())

	// derivation is deterministic
	again, err := Derive(program, maker, 7)
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	// any seed change moves the address
	other, err := Derive(program, maker, 8)
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))

	other, err = Derive(program, swaptest.NewCondition().Address(), 7)
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))

	// a signing key can never land on a derived address, the
	// namespaces are disjoint
	assert.False(t, addr.Equals(swaptest.NewCondition().Address()))
}

func TestDeriveRejectsMalformedSeeds(t *testing.T) {
	program := swaptest.NewCondition().Address()

	_, err := Derive(program, tokenswap.Address{0x01, 0x02}, 0)
	require.Truef(t, errors.ErrInput.Is(err), "want input error, got %+v", err)

	_, err = Derive(nil, program, 0)
	require.Truef(t, errors.ErrInput.Is(err), "want input error, got %+v", err)
}

func TestEscrowSerialization(t *testing.T) {
	e := Escrow{
		Maker:  swaptest.NewCondition().Address(),
		MintX:  swaptest.NewCondition().Address(),
		MintY:  swaptest.NewCondition().Address(),
		Amount: 1<<40 + 5,
		Bump:   254,
	}
	raw, err := e.Marshal()
	require.NoError(t, err)
	assert.Len(t, raw, Size())

	var got Escrow
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, e, got)

	// wrong size payloads must not decode
	require.Error(t, got.Unmarshal(raw[:len(raw)-1]))
	require.Error(t, got.Unmarshal(append(raw, 0)))
	require.Error(t, got.Unmarshal(nil))
}
