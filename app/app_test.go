package app

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/x/escrow"
	"github.com/iov-one/tokenswap/x/ledger"
)

const (
	bump    byte   = 251
	amountX uint64 = 100
	amountY uint64 = 50
)

// world is a running application with a provisioned trading state, the
// same shape a deployment would see after genesis.
type world struct {
	app *Application
	db  tokenswap.CacheableKVStore
	cfg Config

	maker tokenswap.Condition
	taker tokenswap.Condition

	mintX tokenswap.Address
	mintY tokenswap.Address

	makerSrcX tokenswap.Address
	makerDstY tokenswap.Address
	takerSrcY tokenswap.Address
	takerDstX tokenswap.Address

	vault tokenswap.Address
	slot  tokenswap.Address
}

func newWorld(t *testing.T) *world {
	t.Helper()

	w := &world{
		db: store.MemStore(),
		cfg: Config{
			ProgramID:      swaptest.NewCondition().Address(),
			TokenProgramID: swaptest.NewCondition().Address(),
		},
		maker: swaptest.NewCondition(),
		taker: swaptest.NewCondition(),

		mintX: swaptest.NewCondition().Address(),
		mintY: swaptest.NewCondition().Address(),

		makerSrcX: swaptest.NewCondition().Address(),
		makerDstY: swaptest.NewCondition().Address(),
		takerSrcY: swaptest.NewCondition().Address(),
		takerDstX: swaptest.NewCondition().Address(),

		vault: swaptest.NewCondition().Address(),
	}

	app, err := NewApplication(w.cfg, w.db, nil)
	require.NoError(t, err)
	w.app = app

	slot, err := escrow.Derive(w.cfg.ProgramID, w.maker.Address(), bump)
	require.NoError(t, err)
	w.slot = slot

	tokens := app.Tokens()
	require.NoError(t, tokens.NewMint(w.db, w.mintX, 6))
	require.NoError(t, tokens.NewMint(w.db, w.mintY, 6))
	require.NoError(t, tokens.NewAccount(w.db, w.makerSrcX, w.mintX, w.maker.Address(), amountX))
	require.NoError(t, tokens.NewAccount(w.db, w.makerDstY, w.mintY, w.maker.Address(), 0))
	require.NoError(t, tokens.NewAccount(w.db, w.takerSrcY, w.mintY, w.taker.Address(), amountY))
	require.NoError(t, tokens.NewAccount(w.db, w.takerDstX, w.mintX, w.taker.Address(), 0))
	require.NoError(t, tokens.NewAccount(w.db, w.vault, w.mintX, w.slot, 0))

	require.NoError(t, ledger.NewBucket().Save(w.db, w.maker.Address(), &ledger.Account{
		Owner:   swaptest.NewCondition().Address(),
		Reserve: 10 * ledger.RentMinimum(escrow.Size()),
	}))
	return w
}

func (w *world) makeRaw() []byte {
	raw := make([]byte, 1+17)
	raw[0] = byte(escrow.OpMake)
	raw[1] = bump
	binary.LittleEndian.PutUint64(raw[2:], amountY)
	binary.LittleEndian.PutUint64(raw[10:], amountX)
	return raw
}

func (w *world) makeAccounts() []tokenswap.AccountMeta {
	return []tokenswap.AccountMeta{
		{Address: w.maker.Address(), Signer: true},
		{Address: w.mintX},
		{Address: w.mintY},
		{Address: w.makerSrcX, Writable: true},
		{Address: w.vault, Writable: true},
		{Address: w.slot, Writable: true},
		{Address: swaptest.NewCondition().Address()}, // system program
		{Address: w.cfg.TokenProgramID},
	}
}

func (w *world) takeAccounts() []tokenswap.AccountMeta {
	return []tokenswap.AccountMeta{
		{Address: w.taker.Address(), Signer: true},
		{Address: w.maker.Address(), Writable: true},
		{Address: w.mintX},
		{Address: w.mintY},
		{Address: w.takerDstX, Writable: true},
		{Address: w.takerSrcY, Writable: true},
		{Address: w.makerDstY, Writable: true},
		{Address: w.vault, Writable: true},
		{Address: w.slot, Writable: true},
		{Address: w.cfg.TokenProgramID},
		{Address: swaptest.NewCondition().Address()}, // system program
	}
}

func (w *world) refundAccounts() []tokenswap.AccountMeta {
	return []tokenswap.AccountMeta{
		{Address: w.maker.Address(), Signer: true},
		{Address: w.mintX},
		{Address: w.makerSrcX, Writable: true},
		{Address: w.slot, Writable: true},
		{Address: w.vault, Writable: true},
		{Address: w.cfg.TokenProgramID},
		{Address: swaptest.NewCondition().Address()}, // system program
	}
}

func (w *world) balance(t *testing.T, addr tokenswap.Address) uint64 {
	t.Helper()
	balance, err := w.app.Tokens().Balance(w.db, addr)
	require.NoError(t, err)
	return balance
}

func TestFullSwap(t *testing.T) {
	w := newWorld(t)

	// Check does not persist anything
	checkRes, err := w.app.Check(w.makeAccounts(), w.makeRaw())
	require.NoError(t, err)
	assert.True(t, checkRes.GasAllocated > 0)
	assert.Equal(t, amountX, w.balance(t, w.makerSrcX))

	res, err := w.app.Deliver(w.makeAccounts(), w.makeRaw())
	require.NoError(t, err)
	assert.Equal(t, []byte(w.slot), res.Data)
	assert.Equal(t, amountX, w.balance(t, w.vault))
	assert.Equal(t, uint64(0), w.balance(t, w.makerSrcX))

	_, err = w.app.Deliver(w.takeAccounts(), []byte{byte(escrow.OpTake)})
	require.NoError(t, err)

	// both parties got what the offer promised
	assert.Equal(t, amountX, w.balance(t, w.takerDstX))
	assert.Equal(t, amountY, w.balance(t, w.makerDstY))
	assert.Equal(t, uint64(0), w.balance(t, w.takerSrcY))

	// custody is fully torn down
	gone, err := ledger.NewBucket().Get(w.db, w.slot)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// settling again finds nothing
	_, err = w.app.Deliver(w.takeAccounts(), []byte{byte(escrow.OpTake)})
	require.Truef(t, errors.ErrNotFound.Is(err), "want not found, got %+v", err)
}

func TestRefundRoundTrip(t *testing.T) {
	w := newWorld(t)

	_, err := w.app.Deliver(w.makeAccounts(), w.makeRaw())
	require.NoError(t, err)

	_, err = w.app.Deliver(w.refundAccounts(), []byte{byte(escrow.OpRefund)})
	require.NoError(t, err)

	// the maker ends where they started
	assert.Equal(t, amountX, w.balance(t, w.makerSrcX))
	gone, err := ledger.NewBucket().Get(w.db, w.slot)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// a taker arriving after the refund finds nothing
	_, err = w.app.Deliver(w.takeAccounts(), []byte{byte(escrow.OpTake)})
	require.Truef(t, errors.ErrNotFound.Is(err), "want not found, got %+v", err)
}

func TestFailedInstructionLeavesNoTrace(t *testing.T) {
	w := newWorld(t)

	_, err := w.app.Deliver(w.makeAccounts(), w.makeRaw())
	require.NoError(t, err)

	// swap the taker's receiving account for one of the wrong mint.
	// The taker's payment leg succeeds, the vault release fails, and
	// the whole instruction must roll back.
	accounts := w.takeAccounts()
	accounts[4].Address = w.takerSrcY
	_, err = w.app.Deliver(accounts, []byte{byte(escrow.OpTake)})
	require.Error(t, err)

	assert.Equal(t, amountY, w.balance(t, w.takerSrcY))
	assert.Equal(t, uint64(0), w.balance(t, w.makerDstY))
	assert.Equal(t, amountX, w.balance(t, w.vault))

	// the escrow is still live and can settle correctly
	_, err = w.app.Deliver(w.takeAccounts(), []byte{byte(escrow.OpTake)})
	require.NoError(t, err)
	assert.Equal(t, amountX, w.balance(t, w.takerDstX))
}

func TestUnroutableInstructions(t *testing.T) {
	w := newWorld(t)

	_, err := w.app.Deliver(w.makeAccounts(), nil)
	require.Truef(t, errors.ErrInput.Is(err), "want input error, got %+v", err)

	_, err = w.app.Deliver(w.makeAccounts(), []byte{99})
	require.Truef(t, errors.ErrInput.Is(err), "want input error, got %+v", err)

	_, err = w.app.Check(w.makeAccounts(), []byte{99})
	require.Truef(t, errors.ErrInput.Is(err), "want input error, got %+v", err)
}
