package escrow

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/ledger"
	"github.com/iov-one/tokenswap/x/token"
)

// gas costs
const (
	makeCost   int64 = 300
	takeCost   int64 = 0
	refundCost int64 = 0
)

// RegisterRoutes will instantiate and register all handlers in this
// package. The program address is the deployed identity of this escrow
// program; it scopes every derived address.
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, program tokenswap.Address, tokens token.Controller) {
	r.Handle(OpMake, MakeHandler{auth: auth, program: program, tokens: tokens})
	r.Handle(OpTake, TakeHandler{auth: auth, program: program, tokens: tokens})
	r.Handle(OpRefund, RefundHandler{auth: auth, program: program, tokens: tokens})
}

// MakeHandler opens a new escrow offer and moves the offered tokens into
// custody.
type MakeHandler struct {
	auth    x.Authenticator
	program tokenswap.Address
	tokens  token.Controller
}

var _ tokenswap.Handler = MakeHandler{}

// Check just verifies the instruction is properly formed and returns the
// cost of executing it.
func (h MakeHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, ins); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: makeCost}, nil
}

// Deliver allocates the escrow record and deposits the offered tokens
// into the vault if all preconditions are met.
//
// A slot already holding a fully formed record is left untouched and
// reported as success, so a retried Make cannot double-debit the maker. A
// slot that was allocated but never populated is a previously begun
// creation and is rejected.
func (h MakeHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.DeliverResult, error) {
	msg, derived, err := h.validate(ctx, db, ins)
	if err != nil {
		return nil, err
	}

	maker := ins.Accounts[0].Address
	mintX := ins.Accounts[1].Address
	mintY := ins.Accounts[2].Address
	makerSrc := ins.Accounts[3].Address
	vault := ins.Accounts[4].Address
	slot := ins.Accounts[5].Address

	existing, err := ledger.NewBucket().Get(db, slot)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load escrow slot")
	}
	if existing != nil {
		if !existing.OwnedBy(h.program) {
			return nil, errors.Wrapf(ErrAlreadyInitialized, "slot %s", slot)
		}
		var rec Escrow
		if err := rec.Unmarshal(existing.Data); err == nil && rec.Maker.Equals(maker) {
			// A fully formed record of this maker. A retried Make
			// must not debit the deposit again.
			return &tokenswap.DeliverResult{Data: slot, Log: "escrow already active"}, nil
		}
		// Allocated but never populated. Adopting it silently would
		// hide a broken creation.
		return nil, errors.Wrapf(ErrAlreadyInitialized, "slot %s", slot)
	}

	space := Size()
	reserve := ledger.RentMinimum(space)
	if err := ledger.CreateAccount(db, maker, slot, reserve, space, h.program, derived); err != nil {
		return nil, errors.Wrap(err, "cannot allocate escrow record")
	}

	rec := Escrow{
		Maker:  maker,
		MintX:  mintX,
		MintY:  mintY,
		Amount: msg.AmountY,
		Bump:   msg.Bump,
	}
	data, err := rec.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if err := ledger.SetData(db, slot, h.program, data); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	// Deposit into the vault, authorized by the maker directly.
	if err := h.tokens.Transfer(ctx, db, makerSrc, vault, msg.AmountX); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	return &tokenswap.DeliverResult{Data: slot}, nil
}

// validate does all common pre-processing between Check and Deliver. All
// integrity checks run here, before any mutation.
func (h MakeHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*MakeMsg, tokenswap.Condition, error) {
	if err := ins.RequireAccounts(makeNumAccounts); err != nil {
		return nil, nil, err
	}
	msg, err := parseMakeMsg(ins.Data)
	if err != nil {
		return nil, nil, err
	}

	maker := ins.Accounts[0]
	mintX := ins.Accounts[1].Address
	mintY := ins.Accounts[2].Address
	vault := ins.Accounts[4].Address
	slot := ins.Accounts[5].Address

	// The maker must authorize this: they fund the record and lose the
	// deposit.
	if !h.auth.HasAddress(ctx, maker.Address) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker")
	}

	derived, err := Derive(h.program, maker.Address, msg.Bump)
	if err != nil {
		return nil, nil, err
	}
	if !derived.Equals(slot) {
		return nil, nil, errors.Wrapf(ErrForgedAddress, "escrow %s", slot)
	}

	for _, mint := range []tokenswap.Address{mintX, mintY} {
		ok, err := h.tokens.IsMint(db, mint)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, errors.Wrapf(errors.ErrType, "mint %s", mint)
		}
	}

	// Custody must already be wired to the escrow before it goes live.
	vaultAcct, err := h.tokens.GetAccount(db, vault)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault")
	}
	if !vaultAcct.Authority.Equals(derived) {
		return nil, nil, errors.Wrapf(ErrVaultAuthority, "vault %s", vault)
	}
	if !vaultAcct.Mint.Equals(mintX) {
		return nil, nil, errors.Wrapf(ErrMintMismatch, "vault holds %s", vaultAcct.Mint)
	}

	return msg, Condition(h.program, maker.Address, msg.Bump), nil
}

// TakeHandler executes the atomic two-leg swap and tears down custody.
type TakeHandler struct {
	auth    x.Authenticator
	program tokenswap.Address
	tokens  token.Controller
}

var _ tokenswap.Handler = TakeHandler{}

// Check just verifies the instruction is properly formed and returns the
// cost of executing it.
func (h TakeHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, ins); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: takeCost}, nil
}

// Deliver settles the trade: the taker pays the demanded amount directly
// to the maker, receives the whole vault in return, and both the vault
// and the record are closed with their reserves swept to the maker.
func (h TakeHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.DeliverResult, error) {
	rec, balance, err := h.validate(ctx, db, ins)
	if err != nil {
		return nil, err
	}

	maker := ins.Accounts[1].Address
	takerDstX := ins.Accounts[4].Address
	takerSrcY := ins.Accounts[5].Address
	makerDstY := ins.Accounts[6].Address
	vault := ins.Accounts[7].Address
	slot := ins.Accounts[8].Address

	// Leg 1: the taker pays the maker, authorized by their own
	// signature.
	if err := h.tokens.Transfer(ctx, db, takerSrcY, makerDstY, rec.Amount); err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}

	// Leg 2: the program signs with the derived condition to release
	// the whole vault to the taker.
	derivedCtx := withDerived(ctx, Condition(h.program, maker, rec.Bump))
	if err := h.tokens.Transfer(derivedCtx, db, vault, takerDstX, balance); err != nil {
		return nil, errors.Wrap(err, "release vault")
	}

	if err := h.tokens.CloseAccount(derivedCtx, db, vault, maker); err != nil {
		return nil, errors.Wrap(err, "close vault")
	}
	if err := ledger.CloseAndSweep(db, slot, maker); err != nil {
		return nil, errors.Wrap(err, "close escrow")
	}
	return &tokenswap.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver. It
// returns the record and the vault balance to release, so nothing can
// fail a shape check after the taker's payment leg has run.
func (h TakeHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*Escrow, uint64, error) {
	if err := ins.RequireAccounts(takeNumAccounts); err != nil {
		return nil, 0, err
	}

	taker := ins.Accounts[0]
	maker := ins.Accounts[1].Address
	mintX := ins.Accounts[2].Address
	mintY := ins.Accounts[3].Address
	vault := ins.Accounts[7].Address
	slot := ins.Accounts[8].Address

	if !h.auth.HasAddress(ctx, taker.Address) {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "taker")
	}

	rec, err := loadEscrow(db, h.program, slot)
	if err != nil {
		return nil, 0, err
	}
	// Reserves are swept to the maker, so the supplied account must be
	// the recorded one.
	if !rec.Maker.Equals(maker) {
		return nil, 0, errors.Wrapf(errors.ErrInput, "maker %s is not the recorded maker", maker)
	}
	if !rec.MintX.Equals(mintX) {
		return nil, 0, errors.Wrapf(ErrMintMismatch, "mint x %s", mintX)
	}
	if !rec.MintY.Equals(mintY) {
		return nil, 0, errors.Wrapf(ErrMintMismatch, "mint y %s", mintY)
	}

	// Recompute the address from the claimed seeds. A record copied
	// into a foreign account cannot pass this.
	derived, err := Derive(h.program, maker, rec.Bump)
	if err != nil {
		return nil, 0, err
	}
	if !derived.Equals(slot) {
		return nil, 0, errors.Wrapf(ErrForgedAddress, "escrow %s", slot)
	}

	vaultAcct, err := h.tokens.GetAccount(db, vault)
	if err != nil {
		return nil, 0, errors.Wrap(err, "vault")
	}
	if !vaultAcct.Mint.Equals(rec.MintX) {
		return nil, 0, errors.Wrapf(ErrMintMismatch, "vault holds %s", vaultAcct.Mint)
	}
	if !vaultAcct.Authority.Equals(slot) {
		return nil, 0, errors.Wrapf(ErrVaultAuthority, "vault %s", vault)
	}

	return rec, vaultAcct.Balance, nil
}

// RefundHandler returns custody to the maker and tears down the escrow.
type RefundHandler struct {
	auth    x.Authenticator
	program tokenswap.Address
	tokens  token.Controller
}

var _ tokenswap.Handler = RefundHandler{}

// Check just verifies the instruction is properly formed and returns the
// cost of executing it.
func (h RefundHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, ins); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: refundCost}, nil
}

// Deliver moves the whole vault balance back to the maker and closes both
// the vault and the record, sweeping all reserves to the maker.
func (h RefundHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.DeliverResult, error) {
	rec, err := h.validate(ctx, db, ins)
	if err != nil {
		return nil, err
	}

	maker := ins.Accounts[0].Address
	makerDstX := ins.Accounts[2].Address
	slot := ins.Accounts[3].Address
	vault := ins.Accounts[4].Address

	derivedCtx := withDerived(ctx, Condition(h.program, maker, rec.Bump))
	balance, err := h.tokens.Balance(db, vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if err := h.tokens.Transfer(derivedCtx, db, vault, makerDstX, balance); err != nil {
		return nil, errors.Wrap(err, "refund")
	}

	if err := h.tokens.CloseAccount(derivedCtx, db, vault, maker); err != nil {
		return nil, errors.Wrap(err, "close vault")
	}
	if err := ledger.CloseAndSweep(db, slot, maker); err != nil {
		return nil, errors.Wrap(err, "close escrow")
	}
	return &tokenswap.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*Escrow, error) {
	if err := ins.RequireAccounts(refundNumAccounts); err != nil {
		return nil, err
	}

	maker := ins.Accounts[0]
	mintX := ins.Accounts[1].Address
	slot := ins.Accounts[3].Address
	vault := ins.Accounts[4].Address

	if !h.auth.HasAddress(ctx, maker.Address) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker")
	}

	rec, err := loadEscrow(db, h.program, slot)
	if err != nil {
		return nil, err
	}
	// Only the recorded maker may reclaim the deposit.
	if !rec.Maker.Equals(maker.Address) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the maker")
	}
	if !rec.MintX.Equals(mintX) {
		return nil, errors.Wrapf(ErrMintMismatch, "mint %s", mintX)
	}

	vaultAcct, err := h.tokens.GetAccount(db, vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if !vaultAcct.Authority.Equals(slot) {
		return nil, errors.Wrapf(ErrVaultAuthority, "vault %s", vault)
	}

	return rec, nil
}

// loadEscrow reads an active escrow record owned by this program. A
// closed escrow no longer resolves to an account, so settling twice fails
// here.
func loadEscrow(db tokenswap.KVStore, program, addr tokenswap.Address) (*Escrow, error) {
	acct, err := ledger.NewBucket().Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load escrow")
	}
	if acct == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	if !acct.OwnedBy(program) {
		return nil, errors.Wrapf(errors.ErrState, "escrow %s has foreign owner", addr)
	}
	var rec Escrow
	if err := rec.Unmarshal(acct.Data); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	return &rec, nil
}
