package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/x/ledger"
)

func TestTransfer(t *testing.T) {
	alice := swaptest.NewCondition()
	bob := swaptest.NewCondition()
	tokenID := swaptest.NewCondition().Address()

	mint := swaptest.NewCondition().Address()
	src := swaptest.NewCondition().Address()
	dst := swaptest.NewCondition().Address()

	cases := map[string]struct {
		signer  tokenswap.Condition
		amount  uint64
		wantErr *errors.Error
	}{
		"authority moves funds": {
			signer: alice,
			amount: 60,
		},
		"whole balance can move": {
			signer: alice,
			amount: 100,
		},
		"zero amount is a noop but allowed": {
			signer: alice,
			amount: 0,
		},
		"wrong signer": {
			signer:  bob,
			wantErr: errors.ErrUnauthorized,
		},
		"insufficient balance": {
			signer:  alice,
			amount:  101,
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			auth := &swaptest.Auth{Signer: tc.signer}
			ctrl := NewController(auth, tokenID)

			require.NoError(t, ctrl.NewMint(db, mint, 6))
			require.NoError(t, ctrl.NewAccount(db, src, mint, alice.Address(), 100))
			require.NoError(t, ctrl.NewAccount(db, dst, mint, bob.Address(), 0))

			err := ctrl.Transfer(nil, db, src, dst, tc.amount)
			if tc.wantErr != nil {
				require.Truef(t, tc.wantErr.Is(err), "want %v, got %+v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)

			senderBalance, err := ctrl.Balance(db, src)
			require.NoError(t, err)
			assert.Equal(t, 100-tc.amount, senderBalance)

			recipientBalance, err := ctrl.Balance(db, dst)
			require.NoError(t, err)
			assert.Equal(t, tc.amount, recipientBalance)
		})
	}
}

func TestTransferRejectsMintMismatch(t *testing.T) {
	alice := swaptest.NewCondition()
	tokenID := swaptest.NewCondition().Address()

	db := store.MemStore()
	auth := &swaptest.Auth{Signer: alice}
	ctrl := NewController(auth, tokenID)

	mintX := swaptest.NewCondition().Address()
	mintY := swaptest.NewCondition().Address()
	src := swaptest.NewCondition().Address()
	dst := swaptest.NewCondition().Address()

	require.NoError(t, ctrl.NewMint(db, mintX, 6))
	require.NoError(t, ctrl.NewMint(db, mintY, 6))
	require.NoError(t, ctrl.NewAccount(db, src, mintX, alice.Address(), 100))
	require.NoError(t, ctrl.NewAccount(db, dst, mintY, alice.Address(), 0))

	err := ctrl.Transfer(nil, db, src, dst, 10)
	require.Truef(t, errors.ErrType.Is(err), "want type error, got %+v", err)
}

func TestCloseAccount(t *testing.T) {
	alice := swaptest.NewCondition()
	tokenID := swaptest.NewCondition().Address()

	db := store.MemStore()
	auth := &swaptest.Auth{Signer: alice}
	ctrl := NewController(auth, tokenID)

	mint := swaptest.NewCondition().Address()
	src := swaptest.NewCondition().Address()
	dst := swaptest.NewCondition().Address()
	sweepTo := swaptest.NewCondition().Address()

	require.NoError(t, ctrl.NewMint(db, mint, 6))
	require.NoError(t, ctrl.NewAccount(db, src, mint, alice.Address(), 25))
	require.NoError(t, ctrl.NewAccount(db, dst, mint, alice.Address(), 0))

	bucket := ledger.NewBucket()
	require.NoError(t, bucket.Save(db, sweepTo, &ledger.Account{
		Owner:   tokenID,
		Reserve: 1,
	}))

	// cannot close while funds remain
	err := ctrl.CloseAccount(nil, db, src, sweepTo)
	require.Truef(t, errors.ErrState.Is(err), "want state error, got %+v", err)

	require.NoError(t, ctrl.Transfer(nil, db, src, dst, 25))
	require.NoError(t, ctrl.CloseAccount(nil, db, src, sweepTo))

	// the ledger record is gone
	gone, err := bucket.Get(db, src)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// its reserve was swept
	swept, err := bucket.Get(db, sweepTo)
	require.NoError(t, err)
	assert.Equal(t, ledger.RentMinimum(AccountSize())+1, swept.Reserve)

	// a second close fails, nothing is left to close
	err = ctrl.CloseAccount(nil, db, src, sweepTo)
	require.Truef(t, errors.ErrNotFound.Is(err), "want not found, got %+v", err)
}

func TestIsMint(t *testing.T) {
	tokenID := swaptest.NewCondition().Address()
	db := store.MemStore()
	ctrl := NewController(&swaptest.Auth{}, tokenID)

	mint := swaptest.NewCondition().Address()
	require.NoError(t, ctrl.NewMint(db, mint, 9))

	ok, err := ctrl.IsMint(db, mint)
	require.NoError(t, err)
	assert.True(t, ok)

	// a missing account is not a mint
	ok, err = ctrl.IsMint(db, swaptest.NewCondition().Address())
	require.NoError(t, err)
	assert.False(t, ok)

	// a foreign-owned account is not a mint
	foreign := swaptest.NewCondition().Address()
	bucket := ledger.NewBucket()
	require.NoError(t, bucket.Save(db, foreign, &ledger.Account{
		Owner:   swaptest.NewCondition().Address(),
		Reserve: 1,
		Data:    make([]byte, MintSize),
	}))
	ok, err = ctrl.IsMint(db, foreign)
	require.NoError(t, err)
	assert.False(t, ok)
}
