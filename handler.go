package tokenswap

// Op is the one-byte operation tag that selects a handler. It is the
// first byte of every instruction payload.
type Op byte

// Handler processes one specific operation of the program, for example
// "open an escrow" or "execute the swap".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of an
// instruction. It is its own interface to allow better type control when
// composing handlers.
type Checker interface {
	Check(ctx Context, store KVStore, ins *Instruction) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute an instruction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, ins *Instruction) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	Handle(op Op, h Handler)
}

// CheckResult captures any non-error result of a Check call, so error
// returns stay reserved for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this
	// instruction to perform.
	GasAllocated int64
}

// DeliverResult captures any non-error result of a Deliver call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the address of a
	// created entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// GasUsed is the units of work this instruction performed.
	GasUsed int64
}
