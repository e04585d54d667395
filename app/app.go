package app

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/escrow"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/token"
)

// Config carries the deployment identities the program is invoked with.
type Config struct {
	// ProgramID is the address this program is deployed under. All
	// escrow addresses derive from it.
	ProgramID tokenswap.Address
	// TokenProgramID is the address of the token program whose
	// accounts this program moves funds between.
	TokenProgramID tokenswap.Address
}

// Validate ensures both identities are set.
func (c Config) Validate() error {
	if err := c.ProgramID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	if err := c.TokenProgramID.Validate(); err != nil {
		return errors.Wrap(err, "token program id")
	}
	return nil
}

// Application is the runnable program: a router over the escrow
// handlers, bound to a backing store. Every instruction executes against
// a fresh cache that is only written back on success.
type Application struct {
	store  tokenswap.CacheableKVStore
	router *Router
	tokens token.Controller
	logger log.Logger
}

// NewApplication sets up the full handler stack for the given deployment
// identities on top of the given store.
func NewApplication(cfg Config, db tokenswap.CacheableKVStore, logger log.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = tokenswap.DefaultLogger
	}

	// handlers accept both transaction signatures and the program's
	// own derived conditions
	auth := x.ChainAuth(sigs.Authenticate{}, escrow.Authenticate{})
	tokens := token.NewController(auth, cfg.TokenProgramID)

	router := NewRouter()
	escrow.RegisterRoutes(router, auth, cfg.ProgramID, tokens)

	return &Application{
		store:  db,
		router: router,
		tokens: tokens,
		logger: logger,
	}, nil
}

// Tokens exposes the token controller bound to this deployment, mostly
// for genesis setup and tests.
func (a *Application) Tokens() token.Controller {
	return a.tokens
}

// Check validates raw instruction bytes against the current state
// without persisting anything.
func (a *Application) Check(accounts []tokenswap.AccountMeta, raw []byte) (*tokenswap.CheckResult, error) {
	op, ins, err := tokenswap.ParseInstruction(accounts, raw)
	if err != nil {
		return nil, err
	}
	h := a.router.Route(op)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrInput, "no handler for operation %d", op)
	}

	ctx := a.instructionContext("check", op, ins)
	cache := a.store.CacheWrap()
	defer cache.Discard()

	res, err := a.runCheck(ctx, cache, h, ins)
	if err != nil {
		tokenswap.GetLogger(ctx).With("err", err).Info("rejected")
		return nil, err
	}
	return res, nil
}

// Deliver executes raw instruction bytes. All writes of one instruction
// are applied together, or not at all.
func (a *Application) Deliver(accounts []tokenswap.AccountMeta, raw []byte) (*tokenswap.DeliverResult, error) {
	op, ins, err := tokenswap.ParseInstruction(accounts, raw)
	if err != nil {
		return nil, err
	}
	h := a.router.Route(op)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrInput, "no handler for operation %d", op)
	}

	ctx := a.instructionContext("deliver", op, ins)
	cache := a.store.CacheWrap()

	res, err := a.runDeliver(ctx, cache, h, ins)
	if err != nil {
		cache.Discard()
		tokenswap.GetLogger(ctx).With("err", err).Info("failed")
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot persist state")
	}
	return res, nil
}

// instructionContext prepares the per-invocation context: the logger and
// the ledger-verified signer set.
func (a *Application) instructionContext(call string, op tokenswap.Op, ins *tokenswap.Instruction) tokenswap.Context {
	ctx := tokenswap.WithLogger(context.Background(), a.logger)
	ctx = tokenswap.WithLogInfo(ctx, "call", call, "op", int(op))

	var signers []tokenswap.Address
	for _, acct := range ins.Accounts {
		if acct.Signer {
			signers = append(signers, acct.Address)
		}
	}
	return sigs.WithSigners(ctx, signers)
}

// runCheck invokes the handler, turning panics into errors so a broken
// handler cannot take down the program.
func (a *Application) runCheck(ctx tokenswap.Context, db tokenswap.KVStore, h tokenswap.Handler, ins *tokenswap.Instruction) (res *tokenswap.CheckResult, err error) {
	defer errors.Recover(&err)
	return h.Check(ctx, db, ins)
}

func (a *Application) runDeliver(ctx tokenswap.Context, db tokenswap.KVStore, h tokenswap.Handler, ins *tokenswap.Instruction) (res *tokenswap.DeliverResult, err error) {
	defer errors.Recover(&err)
	return h.Deliver(ctx, db, ins)
}
